package domain

import (
	"github.com/site-analysis-service/internal/pkg/errors"
)

// ClassificationMode selects the classifier strategy for one run.
type ClassificationMode string

const (
	ModeQuantile  ClassificationMode = "quantile"
	ModeThreshold ClassificationMode = "threshold"
)

// Default analysis parameters. Per-request options override them.
const (
	DefaultRadiusKm             = 2.0
	DefaultCoLocationThresholdM = 100.0
	DefaultRuralThreshold       = 10.0
	DefaultSuburbanThreshold    = 50.0
	DefaultUrbanThreshold       = 200.0
)

// AnalysisOptions is the explicit configuration value for one pipeline run.
// It is passed down the call chain instead of living in global state, so
// concurrent runs with different parameters cannot interfere.
type AnalysisOptions struct {
	// RadiusKm is the neighbor search radius for density, in kilometers.
	RadiusKm float64
	// CoLocationThresholdM is the grouping distance in meters. Typically much
	// smaller than RadiusKm.
	CoLocationThresholdM float64
	// Mode selects quantile (per-cluster percentiles) or threshold (fixed
	// global cut points) classification.
	Mode ClassificationMode
	// Threshold-mode cut points in sites/km². Ignored in quantile mode.
	RuralThreshold    float64
	SuburbanThreshold float64
	UrbanThreshold    float64
}

// DefaultAnalysisOptions returns the documented defaults.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		RadiusKm:             DefaultRadiusKm,
		CoLocationThresholdM: DefaultCoLocationThresholdM,
		Mode:                 ModeQuantile,
		RuralThreshold:       DefaultRuralThreshold,
		SuburbanThreshold:    DefaultSuburbanThreshold,
		UrbanThreshold:       DefaultUrbanThreshold,
	}
}

// Validate rejects a configuration before any computation starts.
func (o AnalysisOptions) Validate() error {
	if o.RadiusKm <= 0 {
		return errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius_km": o.RadiusKm,
		})
	}
	if o.CoLocationThresholdM <= 0 {
		return errors.ErrInvalidCoLocationThreshold.WithDetails(map[string]interface{}{
			"co_location_threshold_m": o.CoLocationThresholdM,
		})
	}
	switch o.Mode {
	case ModeQuantile:
	case ModeThreshold:
		if !(o.RuralThreshold < o.SuburbanThreshold && o.SuburbanThreshold < o.UrbanThreshold) {
			return errors.ErrInvalidClassThresholds.WithDetails(map[string]interface{}{
				"rural":    o.RuralThreshold,
				"suburban": o.SuburbanThreshold,
				"urban":    o.UrbanThreshold,
			})
		}
	default:
		return errors.ErrInvalidClassificationMode.WithDetails(map[string]interface{}{
			"mode": string(o.Mode),
		})
	}
	return nil
}
