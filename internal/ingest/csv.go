// Package ingest parses and structurally validates uploaded CSV datasets
// before they reach the analysis pipeline. The pipeline itself assumes
// pre-validated input; every data-shape problem is handled here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/pkg/errors"
	"github.com/site-analysis-service/internal/pkg/utils"
)

var requiredColumns = []string{"site_id", "lat", "lon", "cluster_id"}

// ParseResult carries the surviving rows plus human-readable messages about
// everything that was dropped. Zero surviving rows is not an error at this
// layer; the caller decides how to report it.
type ParseResult struct {
	Sites    []domain.Site
	Messages []string
	Dropped  int
}

// ReadSites parses CSV from r. The header may order columns freely and carry
// extra columns (ignored). Rows with missing values, non-numeric or
// out-of-range coordinates, or a duplicate site_id are dropped and counted;
// survivors keep their input order.
func ReadSites(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.ErrInvalidCSV.WithMessage("CSV file is empty")
	}
	if err != nil {
		return nil, errors.ErrInvalidCSV.WithDetails(map[string]interface{}{
			"cause": err.Error(),
		})
	}

	cols, missing := mapColumns(header)
	if len(missing) > 0 {
		return nil, errors.ErrMissingColumns.WithDetails(map[string]interface{}{
			"missing": missing,
		})
	}

	result := &ParseResult{}
	seen := make(map[string]bool)

	var missingValues, nonNumeric, outOfRange, duplicates int

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.ErrInvalidCSV.WithDetails(map[string]interface{}{
				"line":  line,
				"cause": err.Error(),
			})
		}

		site, reason := parseRow(record, cols)
		switch reason {
		case rowOK:
			if seen[site.SiteID] {
				duplicates++
				continue
			}
			seen[site.SiteID] = true
			result.Sites = append(result.Sites, site)
		case rowMissingValue:
			missingValues++
		case rowNonNumeric:
			nonNumeric++
		case rowOutOfRange:
			outOfRange++
		}
	}

	if missingValues > 0 {
		result.Messages = append(result.Messages,
			fmt.Sprintf("Dropped %d rows with missing values", missingValues))
	}
	if nonNumeric > 0 {
		result.Messages = append(result.Messages,
			fmt.Sprintf("Dropped %d rows with non-numeric coordinates", nonNumeric))
	}
	if outOfRange > 0 {
		result.Messages = append(result.Messages,
			fmt.Sprintf("Dropped %d rows with out-of-range coordinates", outOfRange))
	}
	if duplicates > 0 {
		result.Messages = append(result.Messages,
			fmt.Sprintf("Dropped %d rows with duplicate site_id", duplicates))
	}

	result.Dropped = missingValues + nonNumeric + outOfRange + duplicates
	if result.Dropped > 0 {
		result.Messages = append(result.Messages,
			fmt.Sprintf("Dropped %d invalid rows (from %d total)",
				result.Dropped, result.Dropped+len(result.Sites)))
	}

	return result, nil
}

type dropReason int

const (
	rowOK dropReason = iota
	rowMissingValue
	rowNonNumeric
	rowOutOfRange
)

type columnIndex struct {
	siteID, lat, lon, clusterID int
}

func mapColumns(header []string) (columnIndex, []string) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, missing
	}

	return columnIndex{
		siteID:    pos["site_id"],
		lat:       pos["lat"],
		lon:       pos["lon"],
		clusterID: pos["cluster_id"],
	}, nil
}

func parseRow(record []string, cols columnIndex) (domain.Site, dropReason) {
	max := cols.siteID
	for _, idx := range []int{cols.lat, cols.lon, cols.clusterID} {
		if idx > max {
			max = idx
		}
	}
	if len(record) <= max {
		return domain.Site{}, rowMissingValue
	}

	siteID := strings.TrimSpace(record[cols.siteID])
	clusterID := strings.TrimSpace(record[cols.clusterID])
	latStr := strings.TrimSpace(record[cols.lat])
	lonStr := strings.TrimSpace(record[cols.lon])

	if siteID == "" || clusterID == "" || latStr == "" || lonStr == "" {
		return domain.Site{}, rowMissingValue
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Site{}, rowNonNumeric
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Site{}, rowNonNumeric
	}

	if !utils.ValidateCoordinates(lat, lon) {
		return domain.Site{}, rowOutOfRange
	}

	return domain.Site{
		SiteID:    siteID,
		Lat:       lat,
		Lon:       lon,
		ClusterID: clusterID,
	}, rowOK
}
