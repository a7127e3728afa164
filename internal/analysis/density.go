// Package analysis implements the site analysis pipeline: neighbor density,
// co-location grouping and area classification over an in-memory dataset.
package analysis

import (
	"math"

	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/pkg/errors"
	"github.com/site-analysis-service/internal/pkg/utils"
	"github.com/site-analysis-service/internal/spatial"
)

// DensityResult holds the per-site neighbor counts and densities, aligned
// with the input order.
type DensityResult struct {
	NeighborCounts []int
	Densities      []float64
}

// ComputeDensity counts, for every site, the neighbors within radiusKm and
// derives density in sites/km². The site itself is never counted, even though
// its distance to itself is zero. A site with no neighbors has density 0.0.
func ComputeDensity(tree *spatial.BallTree, sites []domain.Site, radiusKm float64) (*DensityResult, error) {
	if radiusKm <= 0 {
		return nil, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius_km": radiusKm,
		})
	}

	res := &DensityResult{
		NeighborCounts: make([]int, len(sites)),
		Densities:      make([]float64, len(sites)),
	}

	radiusRad := utils.KmToRadians(radiusKm)
	area := math.Pi * radiusKm * radiusKm

	for i, s := range sites {
		matches := tree.QueryRadius(s.Lat, s.Lon, radiusRad)

		count := 0
		for _, j := range matches {
			if j != i {
				count++
			}
		}

		res.NeighborCounts[i] = count
		res.Densities[i] = float64(count) / area
	}

	return res, nil
}
