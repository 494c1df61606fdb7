package spatial

import (
	"math"
	"math/rand"
	"testing"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func covered(bounds []orb.Bound, p orb.Point) bool {
	for _, b := range bounds {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

func TestSearchBoundsCoverCap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	centers := []orb.Point{{9.99, 53.55}, {179.5, -10}, {-179.9, 65}, {0, 89.5}}
	for _, center := range centers {
		bounds := SearchBounds(center, 150)
		for i := 0; i < 500; i++ {
			p := orb.Point{center[0] + (rng.Float64()*2-1)*8, center[1] + (rng.Float64()*2-1)*3}
			if p[1] > 90 || p[1] < -90 {
				continue
			}
			if p[0] > 180 {
				p[0] -= 360
			} else if p[0] < -180 {
				p[0] += 360
			}
			if geo.Haversine(center, p) <= 150 {
				assert.True(t, covered(bounds, p), "%v not covered around %v", p, center)
			}
		}
	}
}

func TestSearchBoundsAntimeridian(t *testing.T) {
	bounds := SearchBounds(orb.Point{179.9, 0}, 50)
	require.Len(t, bounds, 2)
	assert.True(t, covered(bounds, orb.Point{-179.9, 0}))
	assert.False(t, covered(bounds, orb.Point{0, 0}))
}

func TestSearchBoundsHuge(t *testing.T) {
	bounds := SearchBounds(orb.Point{0, 0}, 3*math.Pi*geo.EarthRadiusKm)
	require.Len(t, bounds, 1)
	assert.True(t, bounds[0].Contains(orb.Point{180, -90}))
}

func TestIndex(t *testing.T) {
	ix := NewIndex()
	ix.InsertPoint(3, orb.Point{8, 54})
	ix.InsertPoint(1, orb.Point{8.5, 54})
	ix.InsertBound(2, orb.Bound{Min: orb.Point{0, 50}, Max: orb.Point{2, 51}})
	require.Equal(t, 3, ix.Size())

	nearest, ok := ix.Nearest(orb.Point{8.1, 54})
	require.True(t, ok)
	assert.Equal(t, 3, nearest)

	assert.Equal(t, []int{1, 3}, ix.WithinKm(orb.Point{8.25, 54}, 20))
	assert.Equal(t, []int{2}, ix.WithinKm(orb.Point{1, 50.5}, 1))
	assert.Empty(t, ix.WithinKm(orb.Point{-30, 0}, 100))

	_, ok = NewIndex().Nearest(orb.Point{0, 0})
	assert.False(t, ok)
}
