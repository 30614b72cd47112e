package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussLegendre(t *testing.T) {
	// n-point rule integrates polynomials up to degree 2n-1 on [-1,1]
	for n := 1; n <= 10; n++ {
		x, w := GaussLegendre(n)
		require.Len(t, x, n)
		var sum float64
		for _, wi := range w {
			sum += wi
		}
		assert.InDelta(t, 2., sum, 1.e-13)
		// integral of x^2 is 2/3
		if n >= 2 {
			var s2 float64
			for i := range x {
				s2 += w[i] * x[i] * x[i]
			}
			assert.InDelta(t, 2./3., s2, 1.e-13)
		}
	}
}

func TestLineAndQuadRules(t *testing.T) {
	{
		r, err := NewLineRule(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 12, r.Len())
		assert.InDelta(t, 2., r.W.Sum(), 1.e-13)
		// integral of xi^3 over [-1,1] vanishes
		var s float64
		xd, wd := r.Xi.Data(), r.W.Data()
		for i := 0; i < r.Len(); i++ {
			s += wd[i] * xd[i] * xd[i] * xd[i]
		}
		assert.InDelta(t, 0., s, 1.e-13)
	}
	{
		r, err := NewQuadRule(3, 2)
		require.NoError(t, err)
		assert.Equal(t, 36, r.Len())
		assert.InDelta(t, 4., r.W.Sum(), 1.e-13)
	}
	{
		_, err := NewLineRule(0, 1)
		assert.Error(t, err)
	}
}

func TestTriRules(t *testing.T) {
	for _, n := range []int{1, 3, 4, 6, 7, 12, 13} {
		r, err := NewTriRule(n)
		require.NoError(t, err)
		require.Equal(t, n, r.Len())
		assert.InDelta(t, 0.5, r.W.Sum(), 1.e-13)
		// integral of xi over the unit triangle is 1/6
		if n >= 3 {
			var s float64
			xd, wd := r.Xi.Data(), r.W.Data()
			for i := 0; i < n; i++ {
				s += wd[i] * xd[i]
			}
			assert.InDelta(t, 1./6., s, 1.e-13)
		}
	}
	{
		_, err := NewTriRule(5)
		assert.Error(t, err)
	}
	// subdivided rule preserves the total weight and stays interior
	{
		r, err := NewTriRuleSubdivided(6, 3)
		require.NoError(t, err)
		assert.Equal(t, 6*9, r.Len())
		assert.InDelta(t, 0.5, r.W.Sum(), 1.e-13)
		xd := r.Xi.Data()
		n := r.Len()
		for i := 0; i < n; i++ {
			xi, eta := xd[i], xd[n+i]
			assert.Greater(t, xi, 0.)
			assert.Greater(t, eta, 0.)
			assert.Less(t, xi+eta, 1.)
		}
	}
}
