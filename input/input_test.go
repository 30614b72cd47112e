package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soildyn/gobem/bem"
	"github.com/soildyn/gobem/mesh"
)

const squareYAML = `
Title: Unit square, two triangles
Nodes:
  - [1, 0, 0, 0]
  - [2, 1, 0, 0]
  - [3, 1, 1, 0]
  - [4, 0, 1, 0]
Types:
  - ID: 10
    Shape: tri3
    Collocation: nodal
Elements:
  - [1, 10, 1, 2, 3]
  - [2, 10, 1, 3, 4]
Green:
  Kind: static3d
  E: 1.0e7
  Nu: 0.25
WantU: true
WantT: true
`

func TestParseAndBuild(t *testing.T) {
	var p Problem
	require.NoError(t, p.Parse([]byte(squareYAML)))
	assert.Equal(t, "Unit square, two triangles", p.Title)
	assert.Len(t, p.Nodes, 4)
	assert.True(t, p.WantU)
	assert.Nil(t, p.Sel)

	m, err := p.Mesh()
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dim())
	assert.Equal(t, 10, m.EltType(0).ID)
	// Node IDs resolve to table indices.
	assert.Equal(t, []int{0, 2, 3}, []int(m.Elts[1].Nodes))

	g, err := p.Provider()
	require.NoError(t, err)
	assert.Equal(t, 5, g.UComponents())
	assert.Equal(t, 1, g.NSet())

	sel, err := p.Selection(3)
	require.NoError(t, err)
	assert.Nil(t, sel)
}

func TestQuadratureOverrides(t *testing.T) {
	var p Problem
	require.NoError(t, p.Parse([]byte(squareYAML)))
	p.Types[0].NGauss, p.Types[0].NDiv = 12, 1
	p.Types[0].NGaussSing, p.Types[0].NDivSing = 3, 5
	m, err := p.Mesh()
	require.NoError(t, err)
	et := m.EltType(0)
	assert.Equal(t, 12, et.NGauss)
	assert.Equal(t, 3, et.NGaussSing)
	assert.Equal(t, 5, et.NDivSing)
}

func TestMeshErrors(t *testing.T) {
	base := func() *Problem {
		var p Problem
		require.NoError(t, p.Parse([]byte(squareYAML)))
		return &p
	}

	p := base()
	p.Nodes = append(p.Nodes, []float64{1, 2, 2, 2})
	_, err := p.Mesh()
	assert.ErrorContains(t, err, "duplicate node id 1")

	p = base()
	p.Nodes[0][0] = 1.5
	_, err = p.Mesh()
	assert.ErrorContains(t, err, "non-integer id")

	p = base()
	p.Elements[0][1] = 99
	_, err = p.Mesh()
	assert.ErrorContains(t, err, "unknown type id 99")

	p = base()
	p.Elements[1][4] = 7
	_, err = p.Mesh()
	assert.ErrorContains(t, err, "unknown node id 7")

	p = base()
	p.Types[0].Shape = "hex8"
	_, err = p.Mesh()
	assert.ErrorContains(t, err, `unknown element shape "hex8"`)
}

func TestProviderKinds(t *testing.T) {
	mu := 2.0e6

	p := &Problem{Green: GreenDef{Kind: "static2d_outofplane", Mu: mu}}
	g, err := p.Provider()
	require.NoError(t, err)
	assert.Equal(t, 1, g.UComponents())

	p = &Problem{Green: GreenDef{Kind: "static2d_inplane", E: 1e7, Nu: 0.3}}
	g, err = p.Provider()
	require.NoError(t, err)
	assert.Equal(t, 4, g.UComponents())

	p = &Problem{Green: GreenDef{Kind: "grid", Grid: &GridDef{
		ZS: []float64{0}, R: []float64{0, 1}, Z: []float64{0},
		NSets: 1, UComp: 1,
		URe: []float64{0.5, 0.25},
	}}}
	g, err = p.Provider()
	require.NoError(t, err)
	assert.Equal(t, 1, g.UComponents())
	assert.False(t, g.Complexity().UG)

	p = &Problem{Green: GreenDef{Kind: "grid"}}
	_, err = p.Provider()
	assert.ErrorContains(t, err, "needs a Grid block")

	p = &Problem{Green: GreenDef{Kind: "kelvin"}}
	_, err = p.Provider()
	assert.ErrorContains(t, err, "Unknown fundamental solution type 'kelvin'.")
}

func TestSelectionConversion(t *testing.T) {
	p := &Problem{Sel: &SelDef{
		MS: 1, NS: 2,
		Quads: [][]int{{0, 0, 1, 2}, {0, 0, 2, 1}},
	}}
	sel, err := p.Selection(3)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.MS)
	assert.Equal(t, 2, sel.NS)
	assert.Equal(t, 2, sel.MaxColl())

	p.Sel.Quads[1] = []int{0, 0, 2}
	_, err = p.Selection(3)
	assert.ErrorContains(t, err, "selection row 1")
}

// End-to-end: the parsed problem assembles, and the static traction
// rows sum to zero.
func TestAssembleFromYAML(t *testing.T) {
	var p Problem
	require.NoError(t, p.Parse([]byte(squareYAML)))
	m, err := p.Mesh()
	require.NoError(t, err)
	ctx, err := mesh.NewContext(m)
	require.NoError(t, err)
	g, err := p.Provider()
	require.NoError(t, err)

	U, T, err := bem.Assemble(ctx, g, bem.Options{WantU: p.WantU, WantT: p.WantT})
	require.NoError(t, err)
	require.NotNil(t, U)
	require.NotNil(t, T)

	tMax := 0.0
	for _, v := range T.Re {
		tMax = math.Max(tMax, math.Abs(v))
	}
	require.Greater(t, tMax, 0.0)
	for row := 0; row < T.Rows; row++ {
		for d := 0; d < 3; d++ {
			sum := 0.0
			for cc := 0; cc < T.Cols/3; cc++ {
				re, _ := T.At(row, 3*cc+d, 0)
				sum += re
			}
			assert.InDelta(t, 0, sum, 1e-12*tMax, "row %d, direction %d", row, d)
		}
	}
}
