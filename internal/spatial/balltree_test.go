package spatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/site-analysis-service/internal/pkg/utils"
	"github.com/site-analysis-service/internal/spatial"
)

// testGrid builds a deterministic 20x20 point cloud around Barcelona, spaced
// roughly 300 m apart with a small reproducible jitter.
func testGrid() []spatial.Coordinate {
	const baseLat, baseLon = 41.3851, 2.1734
	const step = 0.003 // ~330 m of latitude

	coords := make([]spatial.Coordinate, 0, 400)
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			jitter := 0.0004 * math.Sin(float64(i*31+j*17))
			coords = append(coords, spatial.Coordinate{
				Lat: baseLat + float64(i)*step + jitter,
				Lon: baseLon + float64(j)*step - jitter,
			})
		}
	}
	return coords
}

// bruteForceRadius is the reference implementation the tree must agree with.
func bruteForceRadius(coords []spatial.Coordinate, lat, lon, radiusKm float64) []int {
	var out []int
	for i, c := range coords {
		if utils.HaversineDistance(lat, lon, c.Lat, c.Lon) <= radiusKm {
			out = append(out, i)
		}
	}
	return out
}

func TestBallTree_QueryRadius(t *testing.T) {
	coords := testGrid()
	tree := spatial.NewBallTree(coords, 0)
	require.Equal(t, len(coords), tree.Len())

	queries := []struct {
		name     string
		lat, lon float64
		radiusKm float64
	}{
		{"small radius inside grid", 41.40, 2.19, 0.5},
		{"medium radius inside grid", 41.41, 2.20, 1.5},
		{"radius covering everything", 41.41, 2.20, 50.0},
		{"query far away", 48.85, 2.35, 2.0},
		{"query on grid corner", 41.3851, 2.1734, 0.8},
	}

	for _, q := range queries {
		t.Run(q.name, func(t *testing.T) {
			got := tree.QueryRadius(q.lat, q.lon, utils.KmToRadians(q.radiusKm))
			want := bruteForceRadius(coords, q.lat, q.lon, q.radiusKm)
			assert.Equal(t, want, got)
		})
	}
}

func TestBallTree_KilometerRadianConversion(t *testing.T) {
	// Two points a known distance apart: one degree of latitude ≈ 111.19 km.
	coords := []spatial.Coordinate{
		{Lat: 40.0, Lon: -74.0},
		{Lat: 41.0, Lon: -74.0},
	}
	tree := spatial.NewBallTree(coords, 0)

	// A 100 km radius must not reach the second point, 120 km must. Passing
	// kilometers where radians are expected would make both assertions fail
	// loudly (a 100 rad "radius" covers the whole sphere).
	near := tree.QueryRadius(40.0, -74.0, utils.KmToRadians(100.0))
	assert.Equal(t, []int{0}, near)

	far := tree.QueryRadius(40.0, -74.0, utils.KmToRadians(120.0))
	assert.Equal(t, []int{0, 1}, far)
}

func TestBallTree_EmptyInput(t *testing.T) {
	tree := spatial.NewBallTree(nil, 0)
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.QueryRadius(40.0, -74.0, utils.KmToRadians(2.0)))
}

func TestBallTree_SinglePoint(t *testing.T) {
	tree := spatial.NewBallTree([]spatial.Coordinate{{Lat: 40.0, Lon: -74.0}}, 0)

	hit := tree.QueryRadius(40.0, -74.0, utils.KmToRadians(0.1))
	assert.Equal(t, []int{0}, hit)

	miss := tree.QueryRadius(41.0, -74.0, utils.KmToRadians(0.1))
	assert.Empty(t, miss)
}

func TestBallTree_DuplicateCoordinates(t *testing.T) {
	coords := []spatial.Coordinate{
		{Lat: 40.0, Lon: -74.0},
		{Lat: 40.0, Lon: -74.0},
		{Lat: 40.0, Lon: -74.0},
	}
	tree := spatial.NewBallTree(coords, 2)

	got := tree.QueryRadius(40.0, -74.0, utils.KmToRadians(0.01))
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestBallTree_DeterministicAcrossBuilds(t *testing.T) {
	coords := testGrid()
	a := spatial.NewBallTree(coords, 0)
	b := spatial.NewBallTree(coords, 0)

	r := utils.KmToRadians(1.0)
	assert.Equal(t, a.QueryRadius(41.40, 2.19, r), b.QueryRadius(41.40, 2.19, r))
}

func TestBallTree_SmallLeafSizeMatchesBruteForce(t *testing.T) {
	coords := testGrid()
	tree := spatial.NewBallTree(coords, 4)

	got := tree.QueryRadius(41.41, 2.20, utils.KmToRadians(1.2))
	want := bruteForceRadius(coords, 41.41, 2.20, 1.2)
	assert.Equal(t, want, got)
}
