package ingest

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/site-analysis-service/internal/domain"
)

var annotatedHeader = []string{
	"site_id", "lat", "lon", "cluster_id",
	"neighbor_count", "density", "group_id", "group_size", "area_class",
}

// WriteAnnotatedCSV serializes annotated sites in input order. Floats use the
// shortest exact representation, so two runs over the same data produce
// byte-identical files.
func WriteAnnotatedCSV(sites []domain.AnnotatedSite) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(annotatedHeader); err != nil {
		return nil, err
	}

	for _, s := range sites {
		record := []string{
			s.SiteID,
			strconv.FormatFloat(s.Lat, 'g', -1, 64),
			strconv.FormatFloat(s.Lon, 'g', -1, 64),
			s.ClusterID,
			strconv.Itoa(s.NeighborCount),
			strconv.FormatFloat(s.Density, 'g', -1, 64),
			s.GroupID,
			strconv.Itoa(s.GroupSize),
			string(s.AreaClass),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
