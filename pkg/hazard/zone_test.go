package hazard

import (
	"testing"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}}
}

func TestNewZone(t *testing.T) {
	t.Run("polygon", func(t *testing.T) {
		z, err := NewZone("inc-1", square(0, 0, 1, 1))
		require.NoError(t, err)
		assert.Len(t, z.Polygons, 1)
		assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, z.Bound())
	})
	t.Run("unclosed ring is closed", func(t *testing.T) {
		z, err := NewZone("inc-2", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}}})
		require.NoError(t, err)
		assert.Len(t, z.Polygons[0][0], 4)
	})

	t.Run("repeated vertex", func(t *testing.T) {
		z, err := NewZone("inc-3", orb.Polygon{{{0, 0}, {1, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}})
		require.NoError(t, err)
		assert.True(t, z.Contains(orb.Point{0.5, 0.5}))
	})

	invalid := map[string]orb.Geometry{
		"nil":         nil,
		"point":       orb.Point{1, 1},
		"empty multi": orb.MultiPolygon{},
		"no rings":    orb.Polygon{},
		"too short":   orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}},
		"flat":        orb.Polygon{{{0, 0}, {1, 0}, {2, 0}, {0, 0}}},
		"bowtie":      orb.Polygon{{{0, 0}, {3, 3}, {3, 0}, {0, 1}, {0, 0}}},
		"bowtie hole": orb.Polygon{square(0, 0, 4, 4)[0], {{1, 1}, {3, 3}, {3, 1}, {1, 3}, {1, 1}}},
	}
	for name, geometry := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := NewZone(name, geometry)
			assert.ErrorIs(t, err, domain.ErrDegenerateGeometry)
		})
	}
}

func TestZoneIntersections(t *testing.T) {
	withHole := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}
	z, err := NewZone("holed", withHole)
	require.NoError(t, err)
	zones := []*Zone{z}

	assert.True(t, z.Contains(orb.Point{2, 2}))
	assert.False(t, z.Contains(orb.Point{5, 5}), "inside the hole")

	tests := []struct {
		name string
		line orb.LineString
		want bool
	}{
		{"inside", orb.LineString{{1, 1}, {2, 2}}, true},
		{"crossing", orb.LineString{{-5, 1}, {15, 1}}, true},
		{"touching boundary", orb.LineString{{-1, 10}, {11, 10}}, true},
		{"in the hole", orb.LineString{{4.5, 4.5}, {5.5, 5.5}}, false},
		{"outside", orb.LineString{{11, 11}, {20, 20}}, false},
		{"corner clip", orb.LineString{{-1, 9}, {1, 11}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EdgeIntersects(tt.line, zones))
		})
	}

	assert.False(t, RouteIntersects(orb.LineString{{1, 1}}, zones))
	assert.True(t, RouteIntersects(orb.LineString{{-1, 1}, {1, 1}}, zones))
	assert.False(t, RouteIntersects(orb.LineString{{-1, 1}, {1, 1}}, nil))
}
