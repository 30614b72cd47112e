package greens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalAll(t *testing.T, g Provider, zs, r, z float64) (u, tt, t0 *Batch) {
	u = NewBatch(g.UComponents(), g.NSet())
	tt = NewBatch(g.TComponents(), g.NSet())
	t0 = NewBatch(g.TComponents(), g.NSet())
	require.NoError(t, g.Evaluate(zs, r, z, true, u, tt, t0))
	return
}

func TestStatic3D(t *testing.T) {
	g, err := NewStatic3D(1.e7, 0.25)
	require.NoError(t, err)
	require.NoError(t, Validate(g))

	u, tt, t0 := evalAll(t, g, 0, 1, 0)
	// reciprocity of the off-diagonal displacement components
	assert.Equal(t, u.Re[2], u.Re[3])
	// static stresses are their own static limit
	assert.Equal(t, tt.Re, t0.Re)
	// at z = 0 the axial cross terms vanish
	assert.Equal(t, 0., u.Re[2])

	// displacement decays as 1/R, stress as 1/R^2
	u2, tt2, _ := evalAll(t, g, 0, 2, 0)
	assert.InDelta(t, u.Re[0]/2, u2.Re[0], 1.e-18)
	assert.InDelta(t, tt.Re[0]/4, tt2.Re[0], 1.e-18)

	// evaluation at the source point fails
	err = g.Evaluate(0, 0, 0, true, u, tt, t0)
	assert.Error(t, err)

	// invalid constants are rejected
	_, err = NewStatic3D(-1, 0.25)
	assert.Error(t, err)
	_, err = NewStatic3D(1.e7, 0.5)
	assert.Error(t, err)
}

func TestStatic2D(t *testing.T) {
	{
		g, err := NewStaticInPlane(5.e6, 0.3)
		require.NoError(t, err)
		require.NoError(t, Validate(g))
		u, tt, t0 := evalAll(t, g, 0, 3, 4)
		assert.Equal(t, u.Re[1], u.Re[2])
		assert.Equal(t, tt.Re, t0.Re)
	}
	{
		g, err := NewStaticOutOfPlane(2.e6)
		require.NoError(t, err)
		require.NoError(t, Validate(g))
		u, tt, _ := evalAll(t, g, 0, 1, 0)
		// on the unit circle the log term vanishes
		assert.Equal(t, 0., u.Re[0])
		assert.InDelta(t, -1/(2*3.14159265358979), tt.Re[0], 1.e-12)
		_, err = NewStaticOutOfPlane(0)
		assert.Error(t, err)
	}
}

func TestGrid(t *testing.T) {
	// tabulate u = r + 10*z + 100*zs per component offset; linear data
	// must interpolate exactly
	var (
		zsAx = []float64{0, 1}
		rAx  = []float64{0, 1, 2}
		zAx  = []float64{-1, 0, 1}
		nVal = len(zsAx) * len(rAx) * len(zAx)
	)
	d := GridData{ZS: zsAx, R: rAx, Z: zAx, NSets: 1, UComp: 1}
	d.URe = make([]float64, nVal)
	d.TRe = make([]float64, 2*nVal)
	d.T0Re = make([]float64, 2*nVal)
	idx := 0
	for _, zs := range zsAx {
		for _, r := range rAx {
			for _, z := range zAx {
				d.URe[idx] = r + 10*z + 100*zs
				d.TRe[2*idx] = r
				d.TRe[2*idx+1] = z
				d.T0Re[2*idx] = 0.5 * r
				d.T0Re[2*idx+1] = 0.5 * z
				idx++
			}
		}
	}
	g, err := NewGrid(d)
	require.NoError(t, err)
	require.NoError(t, Validate(g))
	assert.Equal(t, Complexity{}, g.Complexity())

	u := NewBatch(1, 1)
	tt := NewBatch(2, 1)
	t0 := NewBatch(2, 1)
	require.NoError(t, g.Evaluate(0.5, 1.25, -0.5, true, u, tt, t0))
	assert.InDelta(t, 1.25-5+50, u.Re[0], 1.e-12)
	assert.InDelta(t, 1.25, tt.Re[0], 1.e-12)
	assert.InDelta(t, -0.25, t0.Re[1], 1.e-12)

	// offsets beyond the grid clamp to the edge
	require.NoError(t, g.Evaluate(0, 5, 0, false, u, nil, nil))
	assert.InDelta(t, 2., u.Re[0], 1.e-12)

	// non-monotonic axes are rejected
	bad := d
	bad.R = []float64{0, 2, 1}
	_, err = NewGrid(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'r' must be monotonically increasing")

	// an imaginary part flips the complexity flag
	withIm := d
	withIm.UIm = make([]float64, len(d.URe))
	g2, err := NewGrid(withIm)
	require.NoError(t, err)
	assert.True(t, g2.Complexity().UG)
	assert.False(t, g2.Complexity().TG)

	// imaginary stress tables must match their real part in length
	badIm := d
	badIm.TIm = []float64{1}
	_, err = NewGrid(badIm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stress table imaginary part has 1 values")

	badIm = d
	badIm.T0Im = []float64{1}
	_, err = NewGrid(badIm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "static stress table imaginary part")

	// an imaginary stress table without a real one makes no sense
	badIm = d
	badIm.TRe, badIm.T0Re = nil, nil
	badIm.TIm = make([]float64, 2*nVal)
	_, err = NewGrid(badIm)
	assert.Error(t, err)

	// full-length imaginary stress tables are accepted and flagged
	withIm = d
	withIm.TIm = make([]float64, len(d.TRe))
	withIm.T0Im = make([]float64, len(d.T0Re))
	g3, err := NewGrid(withIm)
	require.NoError(t, err)
	assert.True(t, g3.Complexity().TG)
	assert.True(t, g3.Complexity().TG0)
}
