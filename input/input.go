// Package input defines the YAML problem file read by the command line
// tool and its conversion into the mesh, kernel and selection types the
// assembly engine consumes.
package input

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/soildyn/gobem/bem"
	"github.com/soildyn/gobem/greens"
	"github.com/soildyn/gobem/mesh"
	"github.com/soildyn/gobem/utils"
)

// Problem is the full problem definition obtained from the YAML input
// file. Nodes are rows [id, x, y, z]; elements are rows
// [id, typeID, nodeID...]. Selection indices address collocation points
// and components, both zero based.
type Problem struct {
	Title    string      `yaml:"Title"`
	Nodes    [][]float64 `yaml:"Nodes"`
	Types    []TypeDef   `yaml:"Types"`
	Elements [][]int     `yaml:"Elements"`
	Green    GreenDef    `yaml:"Green"`
	WantU    bool        `yaml:"WantU"`
	WantT    bool        `yaml:"WantT"`
	Sel      *SelDef     `yaml:"Selection"`
}

// TypeDef is one element catalog entry. Quadrature fields are optional;
// zero keeps the catalog default for the shape.
type TypeDef struct {
	ID          int    `yaml:"ID"`
	Shape       string `yaml:"Shape"`
	Collocation string `yaml:"Collocation"`
	NGauss      int    `yaml:"NGauss"`
	NDiv        int    `yaml:"NDiv"`
	NGaussSing  int    `yaml:"NGaussSing"`
	NDivSing    int    `yaml:"NDivSing"`
}

// GreenDef selects the fundamental solution. Kind is one of "static3d",
// "static2d_inplane", "static2d_outofplane" or "grid"; the closed-form
// kinds read the elastic constants, "grid" reads the tabulated kernel.
type GreenDef struct {
	Kind string   `yaml:"Kind"`
	E    float64  `yaml:"E"`
	Nu   float64  `yaml:"Nu"`
	Mu   float64  `yaml:"Mu"`
	Grid *GridDef `yaml:"Grid"`
}

// GridDef is a tabulated kernel sampled on a (zs, r, z) grid, flattened
// the way greens.GridData expects.
type GridDef struct {
	ZS    []float64 `yaml:"ZS"`
	R     []float64 `yaml:"R"`
	Z     []float64 `yaml:"Z"`
	NSets int       `yaml:"NSets"`
	UComp int       `yaml:"UComp"`
	URe   []float64 `yaml:"URe"`
	UIm   []float64 `yaml:"UIm"`
	TRe   []float64 `yaml:"TRe"`
	TIm   []float64 `yaml:"TIm"`
	T0Re  []float64 `yaml:"T0Re"`
	T0Im  []float64 `yaml:"T0Im"`
}

// SelDef requests partial assembly: Quads holds MS*NS rows
// [rowColl, rowComp, colColl, colComp] in output order.
type SelDef struct {
	MS    int     `yaml:"MS"`
	NS    int     `yaml:"NS"`
	Quads [][]int `yaml:"Quads"`
}

func (p *Problem) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

func (p *Problem) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("[%d]\t\t\t= Nodes\n", len(p.Nodes))
	fmt.Printf("[%d]\t\t\t= Elements\n", len(p.Elements))
	for _, t := range p.Types {
		fmt.Printf("Type[%d] = %s/%s gauss %d/%d singular %d/%d\n",
			t.ID, t.Shape, t.Collocation, t.NGauss, t.NDiv, t.NGaussSing, t.NDivSing)
	}
	fmt.Printf("[%s]\t\t= Fundamental solution\n", p.Green.Kind)
	fmt.Printf("[U:%v T:%v]\t= Requested matrices\n", p.WantU, p.WantT)
	if p.Sel != nil {
		fmt.Printf("[%d x %d]\t\t= Selection\n", p.Sel.MS, p.Sel.NS)
	} else {
		fmt.Printf("[dense]\t\t\t= Selection\n")
	}
}

// Mesh converts the node, type and element tables, resolving node and
// type IDs to table indices.
func (p *Problem) Mesh() (*mesh.Mesh, error) {
	nodes := make([]mesh.Node, len(p.Nodes))
	nodeIdx := make(map[int]int, len(p.Nodes))
	for i, row := range p.Nodes {
		if len(row) != 4 {
			return nil, fmt.Errorf("node row %d has %d entries, want [id, x, y, z]", i, len(row))
		}
		id := int(row[0])
		if float64(id) != row[0] {
			return nil, fmt.Errorf("node row %d has non-integer id %v", i, row[0])
		}
		if _, dup := nodeIdx[id]; dup {
			return nil, fmt.Errorf("duplicate node id %d", id)
		}
		nodes[i] = mesh.Node{ID: id, X: [3]float64{row[1], row[2], row[3]}}
		nodeIdx[id] = i
	}

	types := make([]mesh.ElementType, len(p.Types))
	typeIdx := make(map[int]int, len(p.Types))
	for i, t := range p.Types {
		var opts []mesh.TypeOption
		if t.NGauss > 0 {
			opts = append(opts, mesh.WithRegularRule(t.NGauss, t.NDiv))
		}
		if t.NGaussSing > 0 {
			opts = append(opts, mesh.WithSingularRule(t.NGaussSing, t.NDivSing))
		}
		et, err := mesh.NewElementType(t.ID, t.Shape, t.Collocation, opts...)
		if err != nil {
			return nil, err
		}
		if _, dup := typeIdx[t.ID]; dup {
			return nil, fmt.Errorf("duplicate element type id %d", t.ID)
		}
		types[i] = et
		typeIdx[t.ID] = i
	}

	elts := make([]mesh.Element, len(p.Elements))
	for i, row := range p.Elements {
		if len(row) < 3 {
			return nil, fmt.Errorf("element row %d has %d entries, want [id, type, node...]", i, len(row))
		}
		it, ok := typeIdx[row[1]]
		if !ok {
			return nil, fmt.Errorf("element %d references unknown type id %d", row[0], row[1])
		}
		nn := utils.NewIndex(len(row) - 2)
		for j, id := range row[2:] {
			in, ok := nodeIdx[id]
			if !ok {
				return nil, fmt.Errorf("element %d references unknown node id %d", row[0], id)
			}
			nn[j] = in
		}
		elts[i] = mesh.Element{ID: row[0], Type: it, Nodes: nn}
	}
	return mesh.NewMesh(nodes, types, elts)
}

// Provider builds the fundamental solution named by Green.Kind.
func (p *Problem) Provider() (greens.Provider, error) {
	g := p.Green
	switch g.Kind {
	case "static3d":
		return greens.NewStatic3D(g.E, g.Nu)
	case "static2d_inplane":
		return greens.NewStaticInPlane(g.E, g.Nu)
	case "static2d_outofplane":
		return greens.NewStaticOutOfPlane(g.Mu)
	case "grid":
		if g.Grid == nil {
			return nil, fmt.Errorf("fundamental solution type 'grid' needs a Grid block")
		}
		d := g.Grid
		return greens.NewGrid(greens.GridData{
			ZS: d.ZS, R: d.R, Z: d.Z,
			NSets: d.NSets, UComp: d.UComp,
			URe: d.URe, UIm: d.UIm,
			TRe: d.TRe, TIm: d.TIm,
			T0Re: d.T0Re, T0Im: d.T0Im,
		})
	}
	return nil, fmt.Errorf("Unknown fundamental solution type '%s'.", g.Kind)
}

// Selection converts the selection block, nil when the problem requests
// dense assembly. nDof is the collocation point degree-of-freedom count
// of the kernel.
func (p *Problem) Selection(nDof int) (*bem.Selection, error) {
	if p.Sel == nil {
		return nil, nil
	}
	quads := make([]bem.Quad, len(p.Sel.Quads))
	for i, row := range p.Sel.Quads {
		if len(row) != 4 {
			return nil, fmt.Errorf("selection row %d has %d entries, want [rowColl, rowComp, colColl, colComp]", i, len(row))
		}
		quads[i] = bem.Quad{RowColl: row[0], RowComp: row[1], ColColl: row[2], ColComp: row[3]}
	}
	return bem.NewSelection(quads, p.Sel.MS, p.Sel.NS, nDof)
}
