package mesh

import (
	"github.com/soildyn/gobem/utils"
)

// CollPoint is one collocation point: either a mesh node (nodal
// collocation) or the centroid of an element.
type CollPoint struct {
	Node int // mesh node index, or -1 for a centroid point
	Elt  int // element index for centroid points, or -1
	X    [3]float64
}

// buildColl constructs the collocation table: nodal points first in
// node order, then centroid points in element order. Coincident nodes
// (identical coordinates) form master/slave pairs; slaves generate no
// point of their own and resolve to the master's point.
func buildColl(m *Mesh) (coll []CollPoint, eltColl []utils.Index) {
	var (
		nNodes   = len(m.Nodes)
		nodal    = make([]bool, nNodes)
		nodeColl = make([]int, nNodes)
	)
	for i := range nodeColl {
		nodeColl[i] = -1
	}
	for _, e := range m.Elts {
		if m.Types[e.Type].Colloc == CollocNodal {
			for _, in := range e.Nodes {
				nodal[in] = true
			}
		}
	}
	// master of each nodal node: the lowest-index node at the same
	// coordinates
	byCoord := make(map[[3]float64]int)
	for in := 0; in < nNodes; in++ {
		if !nodal[in] {
			continue
		}
		x := m.Nodes[in].X
		if master, ok := byCoord[x]; ok {
			nodeColl[in] = nodeColl[master]
			continue
		}
		byCoord[x] = in
		nodeColl[in] = len(coll)
		coll = append(coll, CollPoint{Node: in, Elt: -1, X: x})
	}
	eltColl = make([]utils.Index, len(m.Elts))
	for ie, e := range m.Elts {
		et := m.Types[e.Type]
		if et.Colloc == CollocNodal {
			eltColl[ie] = utils.NewIndex(len(e.Nodes))
			for j, in := range e.Nodes {
				eltColl[ie][j] = nodeColl[in]
			}
			continue
		}
		// centroid point
		var (
			xi, eta = centroid(et.Parent)
			nn      = et.NNodes
			nv      = make([]float64, nn)
			x       [3]float64
		)
		shapeEval(et.ShapeN(), xi, eta, nv)
		for j, in := range e.Nodes {
			for k := 0; k < 3; k++ {
				x[k] += nv[j] * m.Nodes[in].X[k]
			}
		}
		eltColl[ie] = utils.Index{len(coll)}
		coll = append(coll, CollPoint{Node: -1, Elt: ie, X: x})
	}
	return
}

// classify marks, per element and collocation point, whether the pair
// integrates with the regular rule. A point is singular for an element
// when it is one of the element's own collocation points or lies
// exactly on one of its nodes.
func classify(m *Mesh, coll []CollPoint, eltColl []utils.Index) (regular [][]bool) {
	regular = make([][]bool, len(m.Elts))
	for ie, e := range m.Elts {
		reg := make([]bool, len(coll))
		for ic := range coll {
			reg[ic] = true
		}
		for _, ic := range eltColl[ie] {
			reg[ic] = false
		}
		for _, in := range e.Nodes {
			x := m.Nodes[in].X
			for ic, cp := range coll {
				if cp.X == x {
					reg[ic] = false
				}
			}
		}
		regular[ie] = reg
	}
	return
}
