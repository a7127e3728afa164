package dto

import "github.com/site-analysis-service/internal/domain"

// AnalyzeRequest carries the per-request analysis options parsed from query
// parameters.
type AnalyzeRequest struct {
	RadiusKm             float64 `json:"radius_km" validate:"gt=0"`
	CoLocationThresholdM float64 `json:"co_location_threshold_m" validate:"gt=0"`
	ClassificationMode   string  `json:"classification_mode" validate:"oneof=quantile threshold"`
	RuralThreshold       float64 `json:"rural_threshold"`
	SuburbanThreshold    float64 `json:"suburban_threshold"`
	UrbanThreshold       float64 `json:"urban_threshold"`
}

// ToOptions converts the request into domain options. Threshold ordering is
// checked by the domain layer, not here.
func (r AnalyzeRequest) ToOptions() domain.AnalysisOptions {
	return domain.AnalysisOptions{
		RadiusKm:             r.RadiusKm,
		CoLocationThresholdM: r.CoLocationThresholdM,
		Mode:                 domain.ClassificationMode(r.ClassificationMode),
		RuralThreshold:       r.RuralThreshold,
		SuburbanThreshold:    r.SuburbanThreshold,
		UrbanThreshold:       r.UrbanThreshold,
	}
}

// SiteResultDTO is one annotated site in the JSON response.
type SiteResultDTO struct {
	SiteID        string  `json:"site_id"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	ClusterID     string  `json:"cluster_id"`
	NeighborCount int     `json:"neighbor_count"`
	Density       float64 `json:"density"`
	GroupID       string  `json:"group_id"`
	GroupSize     int     `json:"group_size"`
	AreaClass     string  `json:"area_class"`
}

// SummaryDTO is the per-class site count.
type SummaryDTO struct {
	Rural    int `json:"Rural"`
	Suburban int `json:"Suburban"`
	Urban    int `json:"Urban"`
	Dense    int `json:"Dense"`
}

// AnalyzeResponse is the result of one analysis run.
type AnalyzeResponse struct {
	AnalysisID   string          `json:"analysis_id"`
	RowsAnalyzed int             `json:"rows_analyzed"`
	RowsDropped  int             `json:"rows_dropped"`
	Summary      SummaryDTO      `json:"summary"`
	Preview      []SiteResultDTO `json:"preview"`
	Messages     []string        `json:"messages,omitempty"`
	DownloadURL  string          `json:"download_url,omitempty"`
}

// ConvertSiteResult maps a domain annotated site to its DTO.
func ConvertSiteResult(s domain.AnnotatedSite) SiteResultDTO {
	return SiteResultDTO{
		SiteID:        s.SiteID,
		Lat:           s.Lat,
		Lon:           s.Lon,
		ClusterID:     s.ClusterID,
		NeighborCount: s.NeighborCount,
		Density:       s.Density,
		GroupID:       s.GroupID,
		GroupSize:     s.GroupSize,
		AreaClass:     string(s.AreaClass),
	}
}

// ConvertSummary maps the domain summary to its DTO.
func ConvertSummary(s domain.Summary) SummaryDTO {
	return SummaryDTO{
		Rural:    s.Rural,
		Suburban: s.Suburban,
		Urban:    s.Urban,
		Dense:    s.Dense,
	}
}
