package analysis

import (
	"math"
	"sort"

	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/pkg/errors"
)

// ClassifySites maps each site's density to an area class. In quantile mode
// the cut points are the 25th/50th/75th density percentiles computed within
// each cluster_id group, so every cluster gets a locally fair distribution
// whatever its absolute density scale. In threshold mode the configured
// global cut points apply uniformly.
//
// Classification is a pure function of density (and cluster membership in
// quantile mode); co-location grouping plays no part in it.
func ClassifySites(sites []domain.Site, densities []float64, opts domain.AnalysisOptions) ([]domain.AreaClass, error) {
	switch opts.Mode {
	case domain.ModeQuantile:
		return classifyQuantile(sites, densities), nil
	case domain.ModeThreshold:
		if !(opts.RuralThreshold < opts.SuburbanThreshold && opts.SuburbanThreshold < opts.UrbanThreshold) {
			return nil, errors.ErrInvalidClassThresholds.WithDetails(map[string]interface{}{
				"rural":    opts.RuralThreshold,
				"suburban": opts.SuburbanThreshold,
				"urban":    opts.UrbanThreshold,
			})
		}
		return classifyThreshold(densities, opts), nil
	default:
		return nil, errors.ErrInvalidClassificationMode.WithDetails(map[string]interface{}{
			"mode": string(opts.Mode),
		})
	}
}

// classifyQuantile partitions sites by cluster_id first, then classifies each
// cluster against its own percentiles. A single-member cluster has degenerate
// boundaries (Q25 = Q50 = Q75 = the one density), so its site lands in the
// "<= Q25" interval and is classified Rural.
func classifyQuantile(sites []domain.Site, densities []float64) []domain.AreaClass {
	classes := make([]domain.AreaClass, len(sites))

	clusters := make(map[string][]int)
	for i, s := range sites {
		clusters[s.ClusterID] = append(clusters[s.ClusterID], i)
	}

	for _, indices := range clusters {
		values := make([]float64, len(indices))
		for k, i := range indices {
			values[k] = densities[i]
		}
		sort.Float64s(values)

		q25 := percentile(values, 0.25)
		q50 := percentile(values, 0.50)
		q75 := percentile(values, 0.75)

		for _, i := range indices {
			classes[i] = classify(densities[i], q25, q50, q75)
		}
	}

	return classes
}

func classifyThreshold(densities []float64, opts domain.AnalysisOptions) []domain.AreaClass {
	classes := make([]domain.AreaClass, len(densities))
	for i, d := range densities {
		classes[i] = classify(d, opts.RuralThreshold, opts.SuburbanThreshold, opts.UrbanThreshold)
	}
	return classes
}

// classify places a density into one of the four half-open intervals
// (-inf, t1], (t1, t2], (t2, t3], (t3, +inf). The intervals are contiguous
// and exhaustive: every value gets exactly one class.
func classify(density, t1, t2, t3 float64) domain.AreaClass {
	switch {
	case density <= t1:
		return domain.AreaClassRural
	case density <= t2:
		return domain.AreaClassSuburban
	case density <= t3:
		return domain.AreaClassUrban
	default:
		return domain.AreaClassDense
	}
}

// percentile computes the q-th quantile of sorted values with linear
// interpolation between adjacent ranks.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
