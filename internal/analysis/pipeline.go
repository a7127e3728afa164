package analysis

import (
	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/spatial"
	"go.uber.org/zap"
)

// Result is the assembled pipeline output: one annotated row per input row,
// in input order, plus the per-class summary.
type Result struct {
	Sites   []domain.AnnotatedSite
	Summary domain.Summary
}

// Pipeline sequences the analysis stages over one validated dataset:
// build index -> density -> co-location groups -> classification -> merge.
//
// A Pipeline holds no per-run state; one instance may serve concurrent runs
// as long as each call gets its own dataset.
type Pipeline struct {
	logger *zap.Logger
}

func NewPipeline(logger *zap.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Run executes the full pipeline. Options are validated before any
// computation; a zero-row dataset short-circuits to an empty result with a
// zero-filled summary rather than erroring.
func (p *Pipeline) Run(sites []domain.Site, opts domain.AnalysisOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Sites: make([]domain.AnnotatedSite, len(sites))}
	if len(sites) == 0 {
		p.logger.Debug("Pipeline invoked with empty dataset")
		return result, nil
	}

	coords := make([]spatial.Coordinate, len(sites))
	for i, s := range sites {
		coords[i] = spatial.Coordinate{Lat: s.Lat, Lon: s.Lon}
	}
	tree := spatial.NewBallTree(coords, 0)

	density, err := ComputeDensity(tree, sites, opts.RadiusKm)
	if err != nil {
		return nil, err
	}

	// Grouping reuses the same index; its threshold is just a much smaller
	// query radius.
	groups, err := FindCoLocationGroups(tree, sites, opts.CoLocationThresholdM)
	if err != nil {
		return nil, err
	}

	classes, err := ClassifySites(sites, density.Densities, opts)
	if err != nil {
		return nil, err
	}

	for i, s := range sites {
		annotated := domain.AnnotatedSite{
			Site:          s,
			NeighborCount: density.NeighborCounts[i],
			Density:       density.Densities[i],
			GroupID:       groups.GroupIDs[i],
			GroupSize:     groups.GroupSizes[i],
			AreaClass:     classes[i],
		}
		result.Sites[i] = annotated
		result.Summary.Add(annotated.AreaClass)
	}

	p.logger.Debug("Pipeline completed",
		zap.Int("sites", len(sites)),
		zap.Float64("radius_km", opts.RadiusKm),
		zap.Float64("co_location_threshold_m", opts.CoLocationThresholdM),
		zap.String("classification_mode", string(opts.Mode)),
	)

	return result, nil
}
