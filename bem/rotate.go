package bem

import (
	"fmt"

	"github.com/soildyn/gobem/greens"
)

// frame is the local source-receiver frame at one quadrature point:
// cos/sin of the circumferential angle for 3D kernels, the radial sign
// for plane kernels.
type frame struct {
	cos, sin, sgn float64
}

// rotator maps kernel components from the local frame to a Cartesian
// nDof x nDof block per parameter set, folding the stress components
// with the quadrature-point normal into tractions. T0 rotates exactly
// like T.
type rotator func(f frame, nrm []float64, u, t, t0 *greens.Batch, U, T, T0 *kblock, wantT bool)

// chooseRotator pairs a mesh dimension with a kernel component layout.
func chooseRotator(dim, nUComp int) (rotator, error) {
	switch {
	case dim == 3 && nUComp == 5:
		return rotate3D, nil
	case dim == 2 && nUComp == 4:
		return rotateInPlane, nil
	case dim == 2 && nUComp == 1:
		return rotateOutOfPlane, nil
	case dim == 2 && nUComp == 9:
		return rotate25D, nil
	}
	return nil, fmt.Errorf("fundamental solution with %d displacement components does not fit a %dD mesh", nUComp, dim)
}

// rotate3D: 5 displacement and 10 stress components in the cylindrical
// frame of the source-receiver offset become a 3x3 Cartesian block.
// Displacement order [uxr, uxt, uxz, uzr, uzz]; stress order
// [sxrr, sxtt, sxzz, sxrt, sxrz, sxtz, szrr, sztt, szzz, szrz].
func rotate3D(f frame, nrm []float64, u, t, t0 *greens.Batch, U, T, T0 *kblock, wantT bool) {
	var (
		c, s       = f.cos, f.sin
		nx, ny, nz = nrm[0], nrm[1], nrm[2]
	)
	rotU := func(src, dst []float64) {
		u0, u1, u2, u3, u4 := src[0], src[1], src[2], src[3], src[4]
		dst[0] = u0*c*c - u1*s*s
		dst[1] = (u0 + u1) * s * c
		dst[2] = u3 * c
		dst[3] = (u0 + u1) * s * c
		dst[4] = u0*s*s - u1*c*c
		dst[5] = u3 * s
		dst[6] = u2 * c
		dst[7] = u2 * s
		dst[8] = u4
	}
	// traction for one load: cylindrical stress components rotated to
	// Cartesian and folded with the normal
	trac := func(srr, stt, szz, srt, srz, stz float64, dst []float64, j int) {
		var (
			sxx = c*c*srr - 2*s*c*srt + s*s*stt
			syy = s*s*srr + 2*s*c*srt + c*c*stt
			sxy = s*c*(srr-stt) + (c*c-s*s)*srt
			sxz = c*srz - s*stz
			syz = s*srz + c*stz
		)
		dst[j] = sxx*nx + sxy*ny + sxz*nz
		dst[3+j] = sxy*nx + syy*ny + syz*nz
		dst[6+j] = sxz*nx + syz*ny + szz*nz
	}
	rotT := func(src, dst []float64) {
		trac(src[0]*c, src[1]*c, src[2]*c, src[3]*s, src[4]*c, src[5]*s, dst, 0)
		trac(src[0]*s, src[1]*s, src[2]*s, -src[3]*c, src[4]*s, -src[5]*c, dst, 1)
		trac(src[6], src[7], src[8], 0, src[9], 0, dst, 2)
	}
	for iSet := 0; iSet < U.nSet; iSet++ {
		rotU(u.Re[iSet*5:], U.re[iSet*9:])
		if U.cmplx {
			rotU(u.Im[iSet*5:], U.im[iSet*9:])
		}
		if !wantT {
			continue
		}
		rotT(t.Re[iSet*10:], T.re[iSet*9:])
		if T.cmplx {
			rotT(t.Im[iSet*10:], T.im[iSet*9:])
		}
		rotT(t0.Re[iSet*10:], T0.re[iSet*9:])
		if T0.cmplx {
			rotT(t0.Im[iSet*10:], T0.im[iSet*9:])
		}
	}
}

// rotateInPlane: plane-strain components given for the positive-x side;
// components with an odd number of x indices flip with the radial sign.
// Displacement order [uxx, uxz, uzx, uzz]; stress order
// [sxxx, sxzz, sxxz, szxx, szzz, szxz].
func rotateInPlane(f frame, nrm []float64, u, t, t0 *greens.Batch, U, T, T0 *kblock, wantT bool) {
	var (
		g      = f.sgn
		nx, nz = nrm[0], nrm[2]
	)
	rotU := func(src, dst []float64) {
		dst[0] = src[0]
		dst[1] = g * src[1]
		dst[2] = g * src[2]
		dst[3] = src[3]
	}
	rotT := func(src, dst []float64) {
		var (
			sxxx = g * src[0]
			sxzz = g * src[1]
			sxxz = src[2]
			szxx = src[3]
			szzz = src[4]
			szxz = g * src[5]
		)
		dst[0] = sxxx*nx + sxxz*nz
		dst[1] = szxx*nx + szxz*nz
		dst[2] = sxxz*nx + sxzz*nz
		dst[3] = szxz*nx + szzz*nz
	}
	for iSet := 0; iSet < U.nSet; iSet++ {
		rotU(u.Re[iSet*4:], U.re[iSet*4:])
		if U.cmplx {
			rotU(u.Im[iSet*4:], U.im[iSet*4:])
		}
		if !wantT {
			continue
		}
		rotT(t.Re[iSet*6:], T.re[iSet*4:])
		if T.cmplx {
			rotT(t.Im[iSet*6:], T.im[iSet*4:])
		}
		rotT(t0.Re[iSet*6:], T0.re[iSet*4:])
		if T0.cmplx {
			rotT(t0.Im[iSet*6:], T0.im[iSet*4:])
		}
	}
}

// rotateOutOfPlane: the antiplane kernel is a 1x1 block; only syx flips
// with the radial sign.
func rotateOutOfPlane(f frame, nrm []float64, u, t, t0 *greens.Batch, U, T, T0 *kblock, wantT bool) {
	var (
		g      = f.sgn
		nx, nz = nrm[0], nrm[2]
	)
	for iSet := 0; iSet < U.nSet; iSet++ {
		U.re[iSet] = u.Re[iSet]
		if U.cmplx {
			U.im[iSet] = u.Im[iSet]
		}
		if !wantT {
			continue
		}
		T.re[iSet] = g*t.Re[iSet*2]*nx + t.Re[iSet*2+1]*nz
		if T.cmplx {
			T.im[iSet] = g*t.Im[iSet*2]*nx + t.Im[iSet*2+1]*nz
		}
		T0.re[iSet] = g*t0.Re[iSet*2]*nx + t0.Re[iSet*2+1]*nz
		if T0.cmplx {
			T0.im[iSet] = g*t0.Im[iSet*2]*nx + t0.Im[iSet*2+1]*nz
		}
	}
}

// rotate25D: longitudinally invariant kernels carry the full 9/18
// Cartesian component set for the positive-x side; odd-x components
// flip with the radial sign and the stresses fold with the normal.
// Stress order per load j in {x,y,z}: [sxx, syy, szz, sxy, sxz, syz].
func rotate25D(f frame, nrm []float64, u, t, t0 *greens.Batch, U, T, T0 *kblock, wantT bool) {
	var (
		g      = f.sgn
		nx, nz = nrm[0], nrm[2]
		// sign per displacement component [uij]: odd number of x indices
		uSgn = [9]float64{1, g, g, g, 1, 1, g, 1, 1}
		// sign per stress component, per load x,y,z
		tSgn = [18]float64{
			g, g, g, 1, 1, g,
			1, 1, 1, g, g, 1,
			1, 1, 1, g, g, 1,
		}
	)
	rotU := func(src, dst []float64) {
		for k := 0; k < 9; k++ {
			dst[k] = uSgn[k] * src[k]
		}
	}
	rotT := func(src, dst []float64) {
		for j := 0; j < 3; j++ {
			var (
				sxx = tSgn[6*j] * src[6*j]
				szz = tSgn[6*j+2] * src[6*j+2]
				sxy = tSgn[6*j+3] * src[6*j+3]
				sxz = tSgn[6*j+4] * src[6*j+4]
				syz = tSgn[6*j+5] * src[6*j+5]
			)
			dst[j] = sxx*nx + sxz*nz
			dst[3+j] = sxy*nx + syz*nz
			dst[6+j] = sxz*nx + szz*nz
		}
	}
	for iSet := 0; iSet < U.nSet; iSet++ {
		rotU(u.Re[iSet*9:], U.re[iSet*9:])
		if U.cmplx {
			rotU(u.Im[iSet*9:], U.im[iSet*9:])
		}
		if !wantT {
			continue
		}
		rotT(t.Re[iSet*18:], T.re[iSet*9:])
		if T.cmplx {
			rotT(t.Im[iSet*18:], T.im[iSet*9:])
		}
		rotT(t0.Re[iSet*18:], T0.re[iSet*9:])
		if T0.cmplx {
			rotT(t0.Im[iSet*18:], T0.im[iSet*9:])
		}
	}
}
