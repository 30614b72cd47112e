// Package greens evaluates elastodynamic fundamental solutions
// (Green's functions) between a source point and a receiver, in the
// local frame of the source-receiver offset. Displacement components
// per receiver offset, by problem class:
//
//	1 comp  (antiplane):  [uyy]
//	4 comps (in-plane):   [uxx, uxz, uzx, uzz]
//	5 comps (3D):         [uxr, uxt, uxz, uzr, uzz]
//	9 comps (2.5D):       [uij] row-major, i,j in {x,y,z}
//
// and the matching stress component counts 2, 6, 10 and 18:
//
//	2:  [syx, syz]
//	6:  [sxxx, sxzz, sxxz, szxx, szzz, szxz]
//	10: [sxrr, sxtt, sxzz, sxrt, sxrz, sxtz, szrr, sztt, szzz, szrz]
//	18: per load j in {x,y,z}: [sxx, syy, szz, sxy, sxz, syz]
//
// In-plane and 2.5D components are given for a receiver on the
// positive-x side; components with an odd number of x indices flip
// sign on the other side (the frame rotation applies the flip).
package greens

import "fmt"

// Complexity reports which kernel blocks carry imaginary parts.
type Complexity struct {
	UG, TG, TG0 bool
}

// Batch holds one kernel evaluation for all frequency/parameter sets:
// component fastest, set slower, Re[iSet*nComp+iComp].
type Batch struct {
	NComp, NSet int
	Re, Im      []float64
}

func NewBatch(nComp, nSet int) *Batch {
	return &Batch{
		NComp: nComp,
		NSet:  nSet,
		Re:    make([]float64, nComp*nSet),
		Im:    make([]float64, nComp*nSet),
	}
}

// Provider is one fundamental solution. Evaluate fills u with the
// displacement components and, when wantT, t and t0 with the stress
// components and their static counterparts, for a source at depth zs
// and a receiver offset (r, z) in the local frame.
type Provider interface {
	NSet() int
	UComponents() int
	TComponents() int
	Complexity() Complexity
	Evaluate(zs, r, z float64, wantT bool, u, t, t0 *Batch) error
}

// ColDOF maps the displacement component count to the degrees of
// freedom per collocation point.
func ColDOF(nUComp int) (int, error) {
	switch nUComp {
	case 1:
		return 1, nil
	case 4:
		return 2, nil
	case 5, 9:
		return 3, nil
	}
	return 0, fmt.Errorf("unsupported number of displacement components: %d", nUComp)
}

// TCompFor is the stress component count matching a displacement
// component count.
func TCompFor(nUComp int) int {
	switch nUComp {
	case 1:
		return 2
	case 4:
		return 6
	case 5:
		return 10
	case 9:
		return 18
	}
	return 0
}

// Validate checks that a provider's component counts form one of the
// supported problem classes.
func Validate(g Provider) error {
	if _, err := ColDOF(g.UComponents()); err != nil {
		return err
	}
	if g.TComponents() != TCompFor(g.UComponents()) {
		return fmt.Errorf("inconsistent kernel component counts: %d displacement, %d stress",
			g.UComponents(), g.TComponents())
	}
	if g.NSet() < 1 {
		return fmt.Errorf("kernel must carry at least one parameter set, has %d", g.NSet())
	}
	return nil
}
