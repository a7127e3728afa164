package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/pkg/errors"
	"github.com/site-analysis-service/internal/pkg/utils"
	"github.com/site-analysis-service/internal/spatial"
)

// groupIDDelimiter joins sorted member ids before hashing. Must never change:
// group ids are part of the output contract.
const groupIDDelimiter = "|"

// GroupingResult holds the per-site co-location assignment, aligned with the
// input order.
type GroupingResult struct {
	GroupIDs   []string
	GroupSizes []int
}

// FindCoLocationGroups partitions sites into connected components of the
// proximity graph: an edge joins two sites when their haversine distance is
// strictly below thresholdM meters. Candidate edges come from ball tree
// radius queries, so construction stays sub-quadratic; components are merged
// with iterative union-find, so component size never touches the call stack.
//
// A group's id is the SHA-256 of its sorted member site_ids. The id depends
// only on the member set: shuffling the input rows or visiting members in a
// different order cannot change it.
func FindCoLocationGroups(tree *spatial.BallTree, sites []domain.Site, thresholdM float64) (*GroupingResult, error) {
	if thresholdM <= 0 {
		return nil, errors.ErrInvalidCoLocationThreshold.WithDetails(map[string]interface{}{
			"co_location_threshold_m": thresholdM,
		})
	}

	n := len(sites)
	res := &GroupingResult{
		GroupIDs:   make([]string, n),
		GroupSizes: make([]int, n),
	}
	if n == 0 {
		return res, nil
	}

	uf := newUnionFind(n)

	thresholdKm := thresholdM / 1000.0
	thresholdRad := utils.KmToRadians(thresholdKm)

	for i, s := range sites {
		for _, j := range tree.QueryRadius(s.Lat, s.Lon, thresholdRad) {
			if j <= i {
				continue // self, or already seen from the other side
			}
			// The tree query is inclusive; the co-location contract is a
			// strict less-than, so re-check the exact distance.
			d := utils.HaversineDistance(s.Lat, s.Lon, sites[j].Lat, sites[j].Lon)
			if d*1000.0 < thresholdM {
				uf.union(i, j)
			}
		}
	}

	members := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		members[root] = append(members[root], i)
	}

	for _, component := range members {
		ids := make([]string, len(component))
		for k, i := range component {
			ids[k] = sites[i].SiteID
		}
		sort.Strings(ids)

		groupID := hashGroupID(ids)
		for _, i := range component {
			res.GroupIDs[i] = groupID
			res.GroupSizes[i] = len(component)
		}
	}

	return res, nil
}

// hashGroupID derives the stable group identity from the canonically sorted
// member ids.
func hashGroupID(sortedIDs []string) string {
	sum := sha256.Sum256([]byte(strings.Join(sortedIDs, groupIDDelimiter)))
	return hex.EncodeToString(sum[:])
}

// unionFind is a disjoint-set forest with union by size and path halving.
// Everything is iterative: merging a 100k-member chain must not recurse.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
