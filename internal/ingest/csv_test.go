package ingest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/ingest"
)

func TestReadSites_Valid(t *testing.T) {
	input := `site_id,lat,lon,cluster_id
A,40.0,-74.0,1
B,41.0,-75.0,1
C,42.0,-76.0,2
`
	res, err := ingest.ReadSites(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Sites, 3)
	assert.Empty(t, res.Messages)
	assert.Zero(t, res.Dropped)
	assert.Equal(t, domain.Site{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"}, res.Sites[0])
	assert.Equal(t, "C", res.Sites[2].SiteID)
}

func TestReadSites_ColumnOrderAndExtras(t *testing.T) {
	input := `name,cluster_id,lon,lat,site_id
ignored,7,2.17,41.38,X
also ignored,7,2.18,41.39,Y
`
	res, err := ingest.ReadSites(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Sites, 2)
	assert.Equal(t, domain.Site{SiteID: "X", Lat: 41.38, Lon: 2.17, ClusterID: "7"}, res.Sites[0])
}

func TestReadSites_MissingColumns(t *testing.T) {
	input := `site_id,lat
A,40.0
`
	_, err := ingest.ReadSites(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING_COLUMNS")
}

func TestReadSites_EmptyFile(t *testing.T) {
	_, err := ingest.ReadSites(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadSites_DropsInvalidRows(t *testing.T) {
	input := `site_id,lat,lon,cluster_id
A,40.0,-74.0,1
B,,-75.0,1
C,not-a-number,-76.0,1
D,91.0,-74.0,1
E,-91.0,-74.0,1
F,40.0,181.0,1
A,40.5,-74.5,1
G,40.1,-74.1,2
`
	res, err := ingest.ReadSites(strings.NewReader(input))
	require.NoError(t, err)

	// Survivors keep input order.
	require.Len(t, res.Sites, 2)
	assert.Equal(t, "A", res.Sites[0].SiteID)
	assert.Equal(t, "G", res.Sites[1].SiteID)
	assert.Equal(t, 6, res.Dropped)

	joined := strings.Join(res.Messages, "\n")
	assert.Contains(t, joined, "missing values")
	assert.Contains(t, joined, "non-numeric")
	assert.Contains(t, joined, "out-of-range")
	assert.Contains(t, joined, "duplicate site_id")
}

func TestReadSites_AllRowsDropped(t *testing.T) {
	input := `site_id,lat,lon,cluster_id
A,99.0,-74.0,1
`
	res, err := ingest.ReadSites(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, res.Sites)
	assert.Equal(t, 1, res.Dropped)
}

func TestWriteAnnotatedCSV(t *testing.T) {
	sites := []domain.AnnotatedSite{
		{
			Site:          domain.Site{SiteID: "A", Lat: 40.0, Lon: -74.0, ClusterID: "1"},
			NeighborCount: 2,
			Density:       0.15915494309189535,
			GroupID:       "deadbeef",
			GroupSize:     3,
			AreaClass:     domain.AreaClassUrban,
		},
	}

	first, err := ingest.WriteAnnotatedCSV(sites)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(first)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "site_id,lat,lon,cluster_id,neighbor_count,density,group_id,group_size,area_class", lines[0])
	assert.Equal(t, "A,40,-74,1,2,0.15915494309189535,deadbeef,3,Urban", lines[1])

	// Byte-identical on re-serialization.
	second, err := ingest.WriteAnnotatedCSV(sites)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadWriteRoundTrip(t *testing.T) {
	sites := []domain.AnnotatedSite{
		{Site: domain.Site{SiteID: "A", Lat: 41.3851, Lon: 2.1734, ClusterID: "bcn"}, GroupID: "g", GroupSize: 1, AreaClass: domain.AreaClassRural},
		{Site: domain.Site{SiteID: "B", Lat: -33.8688, Lon: 151.2093, ClusterID: "syd"}, GroupID: "g2", GroupSize: 1, AreaClass: domain.AreaClassDense},
	}

	data, err := ingest.WriteAnnotatedCSV(sites)
	require.NoError(t, err)

	res, err := ingest.ReadSites(strings.NewReader(string(data)))
	require.NoError(t, err)

	require.Len(t, res.Sites, 2)
	assert.Equal(t, sites[0].Site, res.Sites[0])
	assert.Equal(t, sites[1].Site, res.Sites[1])
}
