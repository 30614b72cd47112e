package greens

import (
	"fmt"
	"sort"
)

// GridData is a user-tabulated fundamental solution, sampled on a
// (zs, r, z) grid. Value arrays are laid out as
// idx = (((iZS*nR+iR)*nZ+iZ)*nComp+iComp)*nSet+iSet. Imaginary parts
// and the stress blocks are optional; absent imaginary arrays mark the
// block as real.
type GridData struct {
	ZS, R, Z []float64
	NSets    int
	UComp    int

	URe, UIm   []float64
	TRe, TIm   []float64
	T0Re, T0Im []float64
}

// Grid interpolates a tabulated kernel linearly in zs, r and z.
// Offsets outside the sampled range are clamped to the grid edge
// rather than reported; callers who need to detect out-of-range
// receivers must size the table to cover the mesh.
type Grid struct {
	d     GridData
	tComp int
}

func NewGrid(d GridData) (*Grid, error) {
	if _, err := ColDOF(d.UComp); err != nil {
		return nil, err
	}
	if d.NSets < 1 {
		return nil, fmt.Errorf("tabulated kernel must carry at least one parameter set, has %d", d.NSets)
	}
	for _, ax := range []struct {
		name string
		x    []float64
	}{{"zs", d.ZS}, {"r", d.R}, {"z", d.Z}} {
		if len(ax.x) == 0 {
			return nil, fmt.Errorf("input argument '%s' must not be empty", ax.name)
		}
		if !sort.Float64sAreSorted(ax.x) || hasDuplicates(ax.x) {
			return nil, fmt.Errorf("input argument '%s' must be monotonically increasing", ax.name)
		}
	}
	g := &Grid{d: d, tComp: TCompFor(d.UComp)}
	nVal := len(d.ZS) * len(d.R) * len(d.Z) * d.NSets
	if len(d.URe) != nVal*d.UComp {
		return nil, fmt.Errorf("displacement table has %d values, expected %d", len(d.URe), nVal*d.UComp)
	}
	if d.UIm != nil && len(d.UIm) != len(d.URe) {
		return nil, fmt.Errorf("displacement table imaginary part has %d values, expected %d", len(d.UIm), len(d.URe))
	}
	if d.TRe != nil {
		if len(d.TRe) != nVal*g.tComp {
			return nil, fmt.Errorf("stress table has %d values, expected %d", len(d.TRe), nVal*g.tComp)
		}
		if len(d.T0Re) != len(d.TRe) {
			return nil, fmt.Errorf("static stress table has %d values, expected %d", len(d.T0Re), len(d.TRe))
		}
		if d.TIm != nil && len(d.TIm) != len(d.TRe) {
			return nil, fmt.Errorf("stress table imaginary part has %d values, expected %d", len(d.TIm), len(d.TRe))
		}
		if d.T0Im != nil && len(d.T0Im) != len(d.T0Re) {
			return nil, fmt.Errorf("static stress table imaginary part has %d values, expected %d", len(d.T0Im), len(d.T0Re))
		}
	} else if d.TIm != nil || d.T0Im != nil {
		return nil, fmt.Errorf("stress table imaginary part supplied without its real part")
	}
	return g, nil
}

func hasDuplicates(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] == x[i-1] {
			return true
		}
	}
	return false
}

func (g *Grid) NSet() int        { return g.d.NSets }
func (g *Grid) UComponents() int { return g.d.UComp }
func (g *Grid) TComponents() int { return g.tComp }

func (g *Grid) Complexity() Complexity {
	return Complexity{
		UG:  g.d.UIm != nil,
		TG:  g.d.TIm != nil,
		TG0: g.d.T0Im != nil,
	}
}

// bracket locates the interpolation cell of v on axis x and the local
// weight of its upper sample; outside the range it clamps to the edge.
func bracket(x []float64, v float64) (i0 int, f float64) {
	n := len(x)
	if n == 1 || v <= x[0] {
		return 0, 0
	}
	if v >= x[n-1] {
		return n - 2, 1
	}
	i0 = sort.SearchFloat64s(x, v)
	if x[i0] > v {
		i0--
	}
	if i0 > n-2 {
		i0 = n - 2
	}
	f = (v - x[i0]) / (x[i0+1] - x[i0])
	return
}

func (g *Grid) Evaluate(zs, r, z float64, wantT bool, u, t, t0 *Batch) error {
	if wantT && g.d.TRe == nil {
		return fmt.Errorf("tabulated kernel carries no stress data")
	}
	var (
		is, fs = bracket(g.d.ZS, zs)
		ir, fr = bracket(g.d.R, r)
		iz, fz = bracket(g.d.Z, z)
	)
	g.interp(g.d.URe, g.d.UIm, g.d.UComp, is, ir, iz, fs, fr, fz, u)
	if wantT {
		g.interp(g.d.TRe, g.d.TIm, g.tComp, is, ir, iz, fs, fr, fz, t)
		g.interp(g.d.T0Re, g.d.T0Im, g.tComp, is, ir, iz, fs, fr, fz, t0)
	}
	return nil
}

// interp performs trilinear interpolation of one value block into dst.
func (g *Grid) interp(re, im []float64, nComp, is, ir, iz int, fs, fr, fz float64, dst *Batch) {
	var (
		nR, nZ = len(g.d.R), len(g.d.Z)
		nSet   = g.d.NSets
		stride = nComp * nSet
	)
	base := func(i, j, k int) int { return ((i*nR+j)*nZ + k) * stride }
	corner := func(di, dj, dk int) (int, float64) {
		var (
			i, fi = is, 1 - fs
			j, fj = ir, 1 - fr
			k, fk = iz, 1 - fz
		)
		if di == 1 {
			fi = fs
			if len(g.d.ZS) > 1 {
				i++
			}
		}
		if dj == 1 {
			fj = fr
			if nR > 1 {
				j++
			}
		}
		if dk == 1 {
			fk = fz
			if nZ > 1 {
				k++
			}
		}
		return base(i, j, k), fi * fj * fk
	}
	for i := range dst.Re {
		dst.Re[i] = 0
		dst.Im[i] = 0
	}
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				off, w := corner(di, dj, dk)
				if w == 0 {
					continue
				}
				for n := 0; n < stride; n++ {
					// table is comp-major per point, batch is comp fastest
					ic, iset := n/nSet, n%nSet
					dst.Re[iset*nComp+ic] += w * re[off+n]
					if im != nil {
						dst.Im[iset*nComp+ic] += w * im[off+n]
					}
				}
			}
		}
	}
}
