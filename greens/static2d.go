package greens

import (
	"fmt"
	"math"
)

// StaticInPlane is the 2D plane-strain static (Kelvin) solution.
// Components are given for a receiver on the positive-x side.
type StaticInPlane struct {
	E, Nu float64
	mu    float64
}

func NewStaticInPlane(e, nu float64) (*StaticInPlane, error) {
	if err := checkElastic(e, nu); err != nil {
		return nil, err
	}
	return &StaticInPlane{E: e, Nu: nu, mu: e / (2 * (1 + nu))}, nil
}

func (g *StaticInPlane) NSet() int              { return 1 }
func (g *StaticInPlane) UComponents() int       { return 4 }
func (g *StaticInPlane) TComponents() int       { return 6 }
func (g *StaticInPlane) Complexity() Complexity { return Complexity{} }

func (g *StaticInPlane) Evaluate(zs, r, z float64, wantT bool, u, t, t0 *Batch) error {
	R := math.Hypot(r, z)
	if R == 0 {
		return fmt.Errorf("fundamental solution evaluated at zero source-receiver distance")
	}
	var (
		nu     = g.Nu
		kappa  = 3 - 4*nu
		rx, zx = r / R, z / R
		cd     = 1 / (8 * math.Pi * g.mu * (1 - nu))
		lnR    = math.Log(R)
	)
	u.Re[0] = cd * (-kappa*lnR + rx*rx)
	u.Re[1] = cd * rx * zx
	u.Re[2] = cd * rx * zx
	u.Re[3] = cd * (-kappa*lnR + zx*zx)
	if !wantT {
		return nil
	}
	var (
		d  = 1 / (4 * math.Pi * (1 - nu) * R)
		m  = 1 - 2*nu
		tr = t.Re
	)
	tr[0] = -d * (m*rx + 2*rx*rx*rx)
	tr[1] = d*m*rx - 2*d*rx*zx*zx
	tr[2] = -d * (m*zx + 2*rx*rx*zx)
	tr[3] = d*m*zx - 2*d*zx*rx*rx
	tr[4] = -d * (m*zx + 2*zx*zx*zx)
	tr[5] = -d * (m*rx + 2*rx*zx*zx)
	copy(t0.Re, tr)
	return nil
}

// StaticOutOfPlane is the 2D antiplane static solution; only the shear
// modulus enters.
type StaticOutOfPlane struct {
	Mu float64
}

func NewStaticOutOfPlane(mu float64) (*StaticOutOfPlane, error) {
	if mu <= 0 {
		return nil, fmt.Errorf("shear modulus must be positive, is %v", mu)
	}
	return &StaticOutOfPlane{Mu: mu}, nil
}

func (g *StaticOutOfPlane) NSet() int              { return 1 }
func (g *StaticOutOfPlane) UComponents() int       { return 1 }
func (g *StaticOutOfPlane) TComponents() int       { return 2 }
func (g *StaticOutOfPlane) Complexity() Complexity { return Complexity{} }

func (g *StaticOutOfPlane) Evaluate(zs, r, z float64, wantT bool, u, t, t0 *Batch) error {
	R := math.Hypot(r, z)
	if R == 0 {
		return fmt.Errorf("fundamental solution evaluated at zero source-receiver distance")
	}
	u.Re[0] = -math.Log(R) / (2 * math.Pi * g.Mu)
	if !wantT {
		return nil
	}
	t.Re[0] = -r / (2 * math.Pi * R * R)
	t.Re[1] = -z / (2 * math.Pi * R * R)
	copy(t0.Re, t.Re)
	return nil
}
