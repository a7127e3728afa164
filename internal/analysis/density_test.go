package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/site-analysis-service/internal/analysis"
	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/spatial"
)

// buildTree indexes the given sites the same way the pipeline does.
func buildTree(sites []domain.Site) *spatial.BallTree {
	coords := make([]spatial.Coordinate, len(sites))
	for i, s := range sites {
		coords[i] = spatial.Coordinate{Lat: s.Lat, Lon: s.Lon}
	}
	return spatial.NewBallTree(coords, 0)
}

const kmPerDegreeLat = 111.0

func TestComputeDensity_ThreeSitesInLine(t *testing.T) {
	// The canonical correctness check: three sites 1 km apart in a line with
	// radius_km = 2.0. Outer sites see one neighbor within 2 km (the middle),
	// the middle site sees both.
	baseLat, baseLon := 40.0, -74.0
	sites := []domain.Site{
		{SiteID: "A", Lat: baseLat - 1.0/kmPerDegreeLat, Lon: baseLon, ClusterID: "1"},
		{SiteID: "B", Lat: baseLat, Lon: baseLon, ClusterID: "1"},
		{SiteID: "C", Lat: baseLat + 1.0/kmPerDegreeLat, Lon: baseLon, ClusterID: "1"},
	}

	res, err := analysis.ComputeDensity(buildTree(sites), sites, 2.0)
	require.NoError(t, err)

	area := math.Pi * 4.0
	assert.Equal(t, []int{1, 2, 1}, res.NeighborCounts)
	assert.InDelta(t, 1.0/area, res.Densities[0], 1e-9) // ≈ 0.0796
	assert.InDelta(t, 2.0/area, res.Densities[1], 1e-9) // ≈ 0.159
	assert.InDelta(t, 1.0/area, res.Densities[2], 1e-9)
}

func TestComputeDensity_NeverCountsSelf(t *testing.T) {
	t.Run("single site", func(t *testing.T) {
		sites := []domain.Site{{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"}}

		res, err := analysis.ComputeDensity(buildTree(sites), sites, 2.0)
		require.NoError(t, err)
		assert.Equal(t, 0, res.NeighborCounts[0])
		assert.Equal(t, 0.0, res.Densities[0])
	})

	t.Run("duplicate coordinates", func(t *testing.T) {
		// distance(self, self) = 0 is always inside the radius; the count
		// must still exclude the site itself.
		sites := []domain.Site{
			{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"},
			{SiteID: "B", Lat: 40.0, Lon: -74.0, ClusterID: "1"},
		}

		res, err := analysis.ComputeDensity(buildTree(sites), sites, 2.0)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 1}, res.NeighborCounts)
	})
}

func TestComputeDensity_IsolatedSites(t *testing.T) {
	sites := []domain.Site{
		{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"},
		{SiteID: "B", Lat: 50.0, Lon: -75.0, ClusterID: "1"},
		{SiteID: "C", Lat: 60.0, Lon: -76.0, ClusterID: "1"},
	}

	res, err := analysis.ComputeDensity(buildTree(sites), sites, 2.0)
	require.NoError(t, err)
	for i := range sites {
		assert.Equal(t, 0, res.NeighborCounts[i])
		assert.Equal(t, 0.0, res.Densities[i])
	}
}

func TestComputeDensity_InvalidRadius(t *testing.T) {
	sites := []domain.Site{{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"}}
	tree := buildTree(sites)

	for _, radius := range []float64{0, -1.5} {
		_, err := analysis.ComputeDensity(tree, sites, radius)
		assert.Error(t, err)
	}
}

func TestComputeDensity_Deterministic(t *testing.T) {
	sites := []domain.Site{
		{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"},
		{SiteID: "B", Lat: 40.005, Lon: -74.0, ClusterID: "1"},
		{SiteID: "C", Lat: 40.01, Lon: -74.003, ClusterID: "1"},
	}

	first, err := analysis.ComputeDensity(buildTree(sites), sites, 2.0)
	require.NoError(t, err)
	second, err := analysis.ComputeDensity(buildTree(sites), sites, 2.0)
	require.NoError(t, err)

	// Bitwise identical, not merely approximately equal.
	assert.Equal(t, first.Densities, second.Densities)
	assert.Equal(t, first.NeighborCounts, second.NeighborCounts)
}
