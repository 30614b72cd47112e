package mesh

import (
	"fmt"
	"math"

	"github.com/soildyn/gobem/utils"
)

// quadTables holds the per-type quadrature flyweight: the rule plus the
// geometry (N) and collocation (M) shape values and the geometry
// derivatives at every quadrature point.
type quadTables struct {
	rule     Rule
	N, M     utils.Matrix // n x nNodes, n x nColl
	dXi, dEt utils.Matrix // n x nNodes
}

func newQuadTables(et ElementType, singular bool) (t *quadTables, err error) {
	t = &quadTables{}
	if t.rule, err = ruleFor(et, singular); err != nil {
		return
	}
	var (
		n   = t.rule.Len()
		nn  = et.NNodes
		nc  = et.NColl()
		xi  = t.rule.Xi.Data()
		buf = make([]float64, nn)
	)
	t.N = utils.NewMatrix(n, nn)
	t.M = utils.NewMatrix(n, nc)
	t.dXi = utils.NewMatrix(n, nn)
	t.dEt = utils.NewMatrix(n, nn)
	nd, md := t.N.Data(), t.M.Data()
	for q := 0; q < n; q++ {
		x, e := xi[q], xi[n+q]
		shapeEval(et.ShapeN(), x, e, buf)
		copy(nd[q*nn:], buf[:nn])
		shapeEval(et.ShapeM(), x, e, buf[:nc])
		copy(md[q*nc:], buf[:nc])
		shapeDeriv(et.ShapeN(), x, e, t.dXi.Data()[q*nn:(q+1)*nn], t.dEt.Data()[q*nn:(q+1)*nn])
	}
	t.rule.Xi.SetReadOnly("rule.Xi")
	t.N.SetReadOnly("N")
	t.M.SetReadOnly("M")
	t.dXi.SetReadOnly("dXi")
	t.dEt.SetReadOnly("dEt")
	return
}

// eltGeom is the evaluated geometry of one element under one rule:
// quadrature point positions, unit normals (both n x 3) and Jacobians.
type eltGeom struct {
	pos, nrm utils.Matrix
	jac      utils.Vector
}

// Context is the immutable precomputed state shared by all assembly
// calls over one mesh: collocation table, regular/singular
// classification, per-type quadrature tables and per-element geometry.
type Context struct {
	m       *Mesh
	dim     int
	coll    []CollPoint
	eltColl []utils.Index
	regular [][]bool

	reg, sing         []*quadTables // by type index
	geomReg, geomSing []eltGeom     // by element index
}

// NewContext precomputes all tables for the mesh. The context is safe
// for concurrent use after construction.
func NewContext(m *Mesh) (c *Context, err error) {
	c = &Context{m: m, dim: m.Dim()}
	c.coll, c.eltColl = buildColl(m)
	if len(c.coll) == 0 {
		err = fmt.Errorf("mesh produces no collocation points")
		return nil, err
	}
	c.regular = classify(m, c.coll, c.eltColl)

	c.reg = make([]*quadTables, len(m.Types))
	c.sing = make([]*quadTables, len(m.Types))
	for it, et := range m.Types {
		if c.reg[it], err = newQuadTables(et, false); err != nil {
			return nil, err
		}
		if c.sing[it], err = newQuadTables(et, true); err != nil {
			return nil, err
		}
	}

	c.geomReg = make([]eltGeom, len(m.Elts))
	c.geomSing = make([]eltGeom, len(m.Elts))
	for ie, e := range m.Elts {
		et := m.Types[e.Type]
		if c.geomReg[ie], err = evalGeom(m, ie, et, c.reg[e.Type]); err != nil {
			return nil, err
		}
		if c.geomSing[ie], err = evalGeom(m, ie, et, c.sing[e.Type]); err != nil {
			return nil, err
		}
	}
	return
}

// evalGeom maps the rule points of one element to Cartesian positions
// and computes the unit normal and Jacobian at each.
func evalGeom(m *Mesh, iElt int, et ElementType, t *quadTables) (g eltGeom, err error) {
	var (
		X  = m.eltCoords(iElt) // 3 x nn
		Xt = X.Transpose()     // nn x 3
	)
	g.pos = t.N.Mul(Xt)
	t1 := t.dXi.Mul(Xt)
	var t2 utils.Matrix
	if et.Dim() == 2 {
		t2 = t.dEt.Mul(Xt)
	}
	n := t.rule.Len()
	g.nrm = utils.NewMatrix(n, 3)
	g.jac = utils.NewVector(n)
	var (
		nd = g.nrm.Data()
		jd = g.jac.Data()
		d1 = t1.Data()
	)
	for q := 0; q < n; q++ {
		var nx, ny, nz float64
		if et.Dim() == 1 {
			// line element in the xz-plane: normal is the tangent
			// rotated a quarter turn
			tx, tz := d1[3*q], d1[3*q+2]
			nx, ny, nz = tz, 0, -tx
		} else {
			d2 := t2.Data()
			ax, ay, az := d1[3*q], d1[3*q+1], d1[3*q+2]
			bx, by, bz := d2[3*q], d2[3*q+1], d2[3*q+2]
			nx = ay*bz - az*by
			ny = az*bx - ax*bz
			nz = ax*by - ay*bx
		}
		j := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if j <= 0 || math.IsNaN(j) {
			err = fmt.Errorf("degenerate element %d: zero Jacobian at quadrature point %d", m.Elts[iElt].ID, q)
			return
		}
		jd[q] = j
		nd[3*q], nd[3*q+1], nd[3*q+2] = nx/j, ny/j, nz/j
	}
	g.pos.SetReadOnly("pos")
	g.nrm.SetReadOnly("nrm")
	return
}

func (c *Context) Mesh() *Mesh { return c.m }

// Dim is the problem dimension, 2 or 3.
func (c *Context) Dim() int { return c.dim }

// NColl is the total number of collocation points.
func (c *Context) NColl() int { return len(c.coll) }

func (c *Context) Coll(i int) CollPoint { return c.coll[i] }

func (c *Context) NElt() int { return len(c.m.Elts) }

// EltColl returns the global collocation indices of element iElt.
func (c *Context) EltColl(iElt int) utils.Index { return c.eltColl[iElt] }

// IsRegular reports whether collocation point iColl integrates over
// element iElt with the regular rule.
func (c *Context) IsRegular(iElt, iColl int) bool { return c.regular[iElt][iColl] }

func (c *Context) EltType(iElt int) ElementType { return c.m.EltType(iElt) }

// Weights returns the quadrature weights of element iElt's rule.
func (c *Context) Weights(iElt int, singular bool) utils.Vector {
	return c.tables(iElt, singular).rule.W
}

// Interp returns the collocation interpolation values M (n x nColl) at
// the quadrature points of element iElt.
func (c *Context) Interp(iElt int, singular bool) utils.Matrix {
	return c.tables(iElt, singular).M
}

// Geometry returns quadrature point positions, unit normals (n x 3)
// and Jacobians of element iElt.
func (c *Context) Geometry(iElt int, singular bool) (pos, nrm utils.Matrix, jac utils.Vector) {
	g := c.geom(iElt, singular)
	return g.pos, g.nrm, g.jac
}

func (c *Context) tables(iElt int, singular bool) *quadTables {
	it := c.m.Elts[iElt].Type
	if singular {
		return c.sing[it]
	}
	return c.reg[it]
}

func (c *Context) geom(iElt int, singular bool) eltGeom {
	if singular {
		return c.geomSing[iElt]
	}
	return c.geomReg[iElt]
}
