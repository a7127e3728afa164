// Package docs Site Analysis Service API.
//
// Service for batch analysis of geographic site datasets. Accepts a CSV of
// sites (site_id, lat, lon, cluster_id) and computes, per site, the local
// neighbor density, a co-location group and a categorical area classification
// (Rural / Suburban / Urban / Dense).
//
// Capabilities:
// - CSV upload with structural validation and per-row drop reporting
// - Radius-based density over a haversine ball-tree index
// - Co-location grouping with stable content-derived group ids
// - Quantile (per cluster) or fixed-threshold classification
// - Download of the full annotated result while it remains cached
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- text/csv
//
// swagger:meta
package docs
