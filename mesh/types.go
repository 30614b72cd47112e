package mesh

import (
	"fmt"
	"strings"
)

// Parent identifies the reference domain an element is mapped from.
type Parent uint8

const (
	ParentLine Parent = iota + 1 // xi in [-1,1]
	ParentTri                    // xi,eta >= 0, xi+eta <= 1
	ParentQuad                   // xi,eta in [-1,1]^2
)

func (p Parent) String() string {
	switch p {
	case ParentLine:
		return "line"
	case ParentTri:
		return "tri"
	case ParentQuad:
		return "quad"
	}
	return "unknown"
}

// Shape identifies an interpolation basis on a parent domain.
type Shape uint8

const (
	ShapeConst Shape = iota + 1
	ShapeLine2
	ShapeLine3
	ShapeTri3
	ShapeTri6
	ShapeQuad4
	ShapeQuad8
)

// Collocation selects where an element places its collocation points.
type Collocation uint8

const (
	CollocNodal    Collocation = iota + 1 // one point per element node
	CollocCentroid                        // a single point at the element centroid
)

// ElementType describes one entry of the element catalog: parent shape,
// node count, collocation kind and the quadrature orders used for
// regular and singular integration over elements of this type.
type ElementType struct {
	ID     int
	Name   string
	Parent Parent
	NNodes int
	Colloc Collocation

	// Regular rule: NGauss points per (sub)division. For triangles
	// NGauss is the total point count of the symmetric rule and NDiv
	// is ignored for the regular rule.
	NGauss, NDiv int
	// Singular rule: refined subdivision so that no quadrature point
	// lands on a collocation point.
	NGaussSing, NDivSing int
}

// TypeOption adjusts quadrature settings of a catalog entry.
type TypeOption func(*ElementType)

func WithRegularRule(nGauss, nDiv int) TypeOption {
	return func(et *ElementType) { et.NGauss, et.NDiv = nGauss, nDiv }
}

func WithSingularRule(nGauss, nDiv int) TypeOption {
	return func(et *ElementType) { et.NGaussSing, et.NDivSing = nGauss, nDiv }
}

// NewElementType builds a catalog entry from a shape name ("line2",
// "line3", "tri3", "tri6", "quad4", "quad8") and a collocation kind
// ("nodal" or "centroid").
func NewElementType(id int, shape, colloc string, opts ...TypeOption) (et ElementType, err error) {
	et = ElementType{ID: id, Name: strings.ToLower(shape)}
	switch et.Name {
	case "line2":
		et.Parent, et.NNodes = ParentLine, 2
	case "line3":
		et.Parent, et.NNodes = ParentLine, 3
	case "tri3":
		et.Parent, et.NNodes = ParentTri, 3
	case "tri6":
		et.Parent, et.NNodes = ParentTri, 6
	case "quad4":
		et.Parent, et.NNodes = ParentQuad, 4
	case "quad8":
		et.Parent, et.NNodes = ParentQuad, 8
	default:
		err = fmt.Errorf("unknown element shape %q", shape)
		return
	}
	switch strings.ToLower(colloc) {
	case "nodal", "":
		et.Colloc = CollocNodal
	case "centroid":
		et.Colloc = CollocCentroid
	default:
		err = fmt.Errorf("unknown collocation kind %q", colloc)
		return
	}
	if et.Parent == ParentTri {
		// The 6-point rule has no centroid point, so the subdivided
		// singular rule cannot coincide with a centroid collocation
		// point.
		et.NGauss, et.NDiv = 7, 1
		et.NGaussSing, et.NDivSing = 6, 3
	} else {
		et.NGauss, et.NDiv = 6, 1
		et.NGaussSing, et.NDivSing = 6, 4
	}
	for _, opt := range opts {
		opt(&et)
	}
	return
}

// Dim is the geometric dimension of the parent domain: 1 for line
// elements (plane problems), 2 for surface elements (3D problems).
func (et ElementType) Dim() int {
	if et.Parent == ParentLine {
		return 1
	}
	return 2
}

// ShapeN is the geometry interpolation basis.
func (et ElementType) ShapeN() Shape {
	switch et.Name {
	case "line2":
		return ShapeLine2
	case "line3":
		return ShapeLine3
	case "tri3":
		return ShapeTri3
	case "tri6":
		return ShapeTri6
	case "quad4":
		return ShapeQuad4
	case "quad8":
		return ShapeQuad8
	}
	panic("element type has no geometry basis: " + et.Name)
}

// ShapeM is the collocation interpolation basis; constant for
// centroid-collocated elements.
func (et ElementType) ShapeM() Shape {
	if et.Colloc == CollocCentroid {
		return ShapeConst
	}
	return et.ShapeN()
}

// NColl is the number of collocation points the element carries.
func (et ElementType) NColl() int {
	if et.Colloc == CollocCentroid {
		return 1
	}
	return et.NNodes
}
