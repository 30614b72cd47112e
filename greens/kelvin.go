package greens

import (
	"fmt"
	"math"
)

// Static3D is the 3D full-space static (Kelvin) solution for a
// homogeneous isotropic medium. Stresses equal their static limit, so
// t0 == t.
type Static3D struct {
	E, Nu float64
	mu    float64
}

func NewStatic3D(e, nu float64) (*Static3D, error) {
	if err := checkElastic(e, nu); err != nil {
		return nil, err
	}
	return &Static3D{E: e, Nu: nu, mu: e / (2 * (1 + nu))}, nil
}

func checkElastic(e, nu float64) error {
	if e <= 0 {
		return fmt.Errorf("Young's modulus must be positive, is %v", e)
	}
	if nu <= -1 || nu >= 0.5 {
		return fmt.Errorf("Poisson's ratio must lie in (-1, 0.5), is %v", nu)
	}
	return nil
}

func (g *Static3D) NSet() int              { return 1 }
func (g *Static3D) UComponents() int       { return 5 }
func (g *Static3D) TComponents() int       { return 10 }
func (g *Static3D) Complexity() Complexity { return Complexity{} }

func (g *Static3D) Evaluate(zs, r, z float64, wantT bool, u, t, t0 *Batch) error {
	R := math.Hypot(r, z)
	if R == 0 {
		return fmt.Errorf("fundamental solution evaluated at zero source-receiver distance")
	}
	var (
		nu     = g.Nu
		kappa  = 3 - 4*nu
		rr, zr = r / R, z / R
		cd     = 1 / (16 * math.Pi * g.mu * (1 - nu) * R)
	)
	u.Re[0] = cd * (kappa + rr*rr)
	u.Re[1] = -cd * kappa
	u.Re[2] = cd * rr * zr
	u.Re[3] = cd * rr * zr
	u.Re[4] = cd * (kappa + zr*zr)
	if !wantT {
		return nil
	}
	var (
		d  = 1 / (8 * math.Pi * (1 - nu) * R * R)
		m  = 1 - 2*nu
		tr = t.Re
	)
	tr[0] = -d * (m*rr + 3*rr*rr*rr)
	tr[1] = d * m * rr
	tr[2] = d*m*rr - 3*d*rr*zr*zr
	tr[3] = d * m * rr
	tr[4] = -d * (m*zr + 3*rr*rr*zr)
	tr[5] = d * m * zr
	tr[6] = d*m*zr - 3*d*zr*rr*rr
	tr[7] = d * m * zr
	tr[8] = -d * (m*zr + 3*zr*zr*zr)
	tr[9] = -d * (m*rr + 3*rr*zr*zr)
	copy(t0.Re, tr)
	return nil
}
