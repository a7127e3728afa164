// Package spatial provides the in-process spatial index used by the analysis
// pipeline: a ball tree over geographic points with a haversine metric.
//
// Axis-aligned structures (kd-trees, r-trees) split on raw coordinates and
// mis-handle great-circle distance near the poles and the antimeridian. The
// ball tree partitions by distance only, so it stays correct under the
// haversine metric everywhere on the sphere.
package spatial

import (
	"math"
	"sort"
)

// DefaultLeafSize bounds the number of points scanned linearly in one leaf.
const DefaultLeafSize = 32

// Coordinate is a geographic point in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// point is an indexed coordinate in radians.
type point struct {
	lat, lon float64
	idx      int32
}

// node is one ball in the tree. Leaf nodes cover pts[start:end] directly,
// internal nodes delegate to their children. Stored in a flat slice to keep
// the tree cache-friendly and allocation-light at 100k+ points.
type node struct {
	centerLat float64
	centerLon float64
	radius    float64 // max central angle from center to any covered point
	start     int32
	end       int32
	left      int32 // -1 for leaves
	right     int32
}

// BallTree answers radius queries over a static point set. Distances are
// central angles on the unit sphere (radians); callers convert kilometers
// with utils.KmToRadians. The tree is immutable after construction and safe
// for concurrent queries.
type BallTree struct {
	nodes    []node
	pts      []point
	leafSize int
}

// NewBallTree builds the index over coords (degrees) in O(N log N). A zero
// length input yields a valid empty tree.
func NewBallTree(coords []Coordinate, leafSize int) *BallTree {
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}

	t := &BallTree{
		pts:      make([]point, len(coords)),
		leafSize: leafSize,
	}
	for i, c := range coords {
		t.pts[i] = point{
			lat: c.Lat * math.Pi / 180.0,
			lon: c.Lon * math.Pi / 180.0,
			idx: int32(i),
		}
	}

	if len(t.pts) > 0 {
		t.nodes = make([]node, 0, 2*len(t.pts)/leafSize+1)
		t.build(0, int32(len(t.pts)))
	}

	return t
}

// Len returns the number of indexed points.
func (t *BallTree) Len() int {
	return len(t.pts)
}

// build constructs the subtree over pts[start:end) and returns its node index.
// Recursion depth is bounded by the median split (~log2 N levels).
func (t *BallTree) build(start, end int32) int32 {
	nodeIdx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{})

	n := t.boundingBall(start, end)
	n.start = start
	n.end = end
	n.left = -1
	n.right = -1

	if end-start > int32(t.leafSize) {
		t.splitRange(start, end)
		mid := (start + end) / 2
		n.left = t.build(start, mid)
		n.right = t.build(mid, end)
	}

	t.nodes[nodeIdx] = n
	return nodeIdx
}

// boundingBall computes the centroid and covering radius of pts[start:end).
// The centroid is the coordinate mean; any center gives a valid bound as long
// as the radius is measured against it.
func (t *BallTree) boundingBall(start, end int32) node {
	var sumLat, sumLon float64
	for i := start; i < end; i++ {
		sumLat += t.pts[i].lat
		sumLon += t.pts[i].lon
	}
	count := float64(end - start)
	n := node{
		centerLat: sumLat / count,
		centerLon: sumLon / count,
	}

	for i := start; i < end; i++ {
		d := centralAngle(n.centerLat, n.centerLon, t.pts[i].lat, t.pts[i].lon)
		if d > n.radius {
			n.radius = d
		}
	}
	return n
}

// splitRange orders pts[start:end) along the dimension with the widest spread
// so the median split produces balanced children.
func (t *BallTree) splitRange(start, end int32) {
	minLat, maxLat := t.pts[start].lat, t.pts[start].lat
	minLon, maxLon := t.pts[start].lon, t.pts[start].lon
	for i := start + 1; i < end; i++ {
		p := t.pts[i]
		minLat = math.Min(minLat, p.lat)
		maxLat = math.Max(maxLat, p.lat)
		minLon = math.Min(minLon, p.lon)
		maxLon = math.Max(maxLon, p.lon)
	}

	seg := t.pts[start:end]
	if maxLat-minLat >= maxLon-minLon {
		sort.Slice(seg, func(i, j int) bool {
			if seg[i].lat != seg[j].lat {
				return seg[i].lat < seg[j].lat
			}
			return seg[i].idx < seg[j].idx
		})
	} else {
		sort.Slice(seg, func(i, j int) bool {
			if seg[i].lon != seg[j].lon {
				return seg[i].lon < seg[j].lon
			}
			return seg[i].idx < seg[j].idx
		})
	}
}

// QueryRadius returns the original indices of all points whose haversine
// distance to (lat, lon) is at most radiusRad. The query point is given in
// degrees, the radius as a central angle in radians (utils.KmToRadians).
// Results are sorted ascending so the output is reproducible.
//
// Traversal uses an explicit stack: query depth never grows the call stack,
// whatever the input size.
func (t *BallTree) QueryRadius(lat, lon, radiusRad float64) []int {
	if len(t.nodes) == 0 {
		return nil
	}

	qLat := lat * math.Pi / 180.0
	qLon := lon * math.Pi / 180.0

	var result []int
	stack := make([]int32, 1, 64)
	stack[0] = 0

	for len(stack) > 0 {
		n := t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		d := centralAngle(qLat, qLon, n.centerLat, n.centerLon)
		if d-n.radius > radiusRad {
			continue // ball entirely outside the query radius
		}
		if d+n.radius <= radiusRad {
			// Ball entirely inside: take every covered point.
			for i := n.start; i < n.end; i++ {
				result = append(result, int(t.pts[i].idx))
			}
			continue
		}
		if n.left < 0 {
			for i := n.start; i < n.end; i++ {
				p := t.pts[i]
				if centralAngle(qLat, qLon, p.lat, p.lon) <= radiusRad {
					result = append(result, int(p.idx))
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}

	sort.Ints(result)
	return result
}

// centralAngle is the haversine distance between two radian coordinates on
// the unit sphere.
func centralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLon := math.Sin((lon2 - lon1) / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if a > 1 {
		a = 1
	}
	return 2 * math.Asin(math.Sqrt(a))
}
