package domain

// AreaClass is the categorical density classification of a site.
type AreaClass string

const (
	AreaClassRural    AreaClass = "Rural"
	AreaClassSuburban AreaClass = "Suburban"
	AreaClassUrban    AreaClass = "Urban"
	AreaClassDense    AreaClass = "Dense"
)

// AreaClasses lists all classes in ascending density order.
var AreaClasses = []AreaClass{AreaClassRural, AreaClassSuburban, AreaClassUrban, AreaClassDense}

// Site is one validated input row. Immutable once ingested: the pipeline only
// derives new fields, it never mutates a Site.
type Site struct {
	SiteID    string  `json:"site_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	ClusterID string  `json:"cluster_id"`
}

// AnnotatedSite is the per-site pipeline output: the original row plus every
// derived column. Exactly one AnnotatedSite exists per input Site.
type AnnotatedSite struct {
	Site
	NeighborCount int       `json:"neighbor_count"`
	Density       float64   `json:"density"`
	GroupID       string    `json:"group_id"`
	GroupSize     int       `json:"group_size"`
	AreaClass     AreaClass `json:"area_class"`
}

// Summary counts sites per area class. All four labels are always present in
// the serialized form, even when zero.
type Summary struct {
	Rural    int `json:"Rural"`
	Suburban int `json:"Suburban"`
	Urban    int `json:"Urban"`
	Dense    int `json:"Dense"`
}

// Add increments the counter for the given class.
func (s *Summary) Add(class AreaClass) {
	switch class {
	case AreaClassRural:
		s.Rural++
	case AreaClassSuburban:
		s.Suburban++
	case AreaClassUrban:
		s.Urban++
	case AreaClassDense:
		s.Dense++
	}
}

// Total returns the number of counted sites.
func (s *Summary) Total() int {
	return s.Rural + s.Suburban + s.Urban + s.Dense
}
