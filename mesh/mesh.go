package mesh

import (
	"fmt"
	"math"

	"github.com/soildyn/gobem/utils"
)

type Node struct {
	ID int
	X  [3]float64
}

// Element references its type by catalog index and its nodes by index
// into the mesh node table.
type Element struct {
	ID    int
	Type  int
	Nodes utils.Index
}

// Mesh is the boundary discretization: nodes, the element type catalog
// and the elements. Plane problems use line elements in the xz-plane;
// 3D problems use surface elements.
type Mesh struct {
	Nodes []Node
	Types []ElementType
	Elts  []Element
}

// NewMesh validates the tables and returns the mesh. Line and surface
// elements cannot be mixed; plane meshes must lie in the xz-plane.
func NewMesh(nodes []Node, types []ElementType, elts []Element) (m *Mesh, err error) {
	if len(nodes) == 0 || len(elts) == 0 || len(types) == 0 {
		err = fmt.Errorf("empty mesh: %d nodes, %d types, %d elements", len(nodes), len(types), len(elts))
		return
	}
	dim := 0
	for ie, e := range elts {
		if e.Type < 0 || e.Type >= len(types) {
			err = fmt.Errorf("element %d references unknown type index %d", e.ID, e.Type)
			return
		}
		et := types[e.Type]
		if len(e.Nodes) != et.NNodes {
			err = fmt.Errorf("element %d has %d nodes, type %q needs %d", e.ID, len(e.Nodes), et.Name, et.NNodes)
			return
		}
		for j, in := range e.Nodes {
			if in < 0 || in >= len(nodes) {
				err = fmt.Errorf("element %d references unknown node index %d", e.ID, in)
				return
			}
			if e.Nodes[:j].Contains(in) {
				err = fmt.Errorf("element %d repeats node index %d", e.ID, in)
				return
			}
		}
		d := 1 + et.Dim()
		if ie == 0 {
			dim = d
		} else if d != dim {
			err = fmt.Errorf("mixed element dimensions: element %d is %dD in a %dD mesh", e.ID, d, dim)
			return
		}
	}
	if dim == 2 {
		for _, n := range nodes {
			if math.Abs(n.X[1]) > utils.NODETOL {
				err = fmt.Errorf("plane mesh node %d lies off the xz-plane (y = %v)", n.ID, n.X[1])
				return
			}
		}
	}
	m = &Mesh{Nodes: nodes, Types: types, Elts: elts}
	return
}

// Dim is the problem dimension, 2 or 3.
func (m *Mesh) Dim() int {
	return 1 + m.Types[m.Elts[0].Type].Dim()
}

// EltType returns the catalog entry of element iElt.
func (m *Mesh) EltType(iElt int) ElementType {
	return m.Types[m.Elts[iElt].Type]
}

// eltCoords collects the node coordinates of element iElt as a
// 3 x nNodes matrix.
func (m *Mesh) eltCoords(iElt int) (X utils.Matrix) {
	var (
		e  = m.Elts[iElt]
		nn = len(e.Nodes)
	)
	X = utils.NewMatrix(3, nn)
	xd := X.Data()
	for j, in := range e.Nodes {
		for k := 0; k < 3; k++ {
			xd[k*nn+j] = m.Nodes[in].X[k]
		}
	}
	return
}
