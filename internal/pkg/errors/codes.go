package errors

import "net/http"

// Configuration errors. All of them reject an analysis before any computation
// starts; retrying a deterministic failure is pointless, so none are transient.
var (
	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Density radius must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidCoLocationThreshold = New(
		"INVALID_CO_LOCATION_THRESHOLD",
		"Co-location threshold must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidClassificationMode = New(
		"INVALID_CLASSIFICATION_MODE",
		"Classification mode must be either 'quantile' or 'threshold'",
		http.StatusBadRequest,
	)

	ErrInvalidClassThresholds = New(
		"INVALID_CLASS_THRESHOLDS",
		"Classification thresholds must be strictly increasing",
		http.StatusBadRequest,
	)
)

// Data shape errors, raised by the ingest layer only. The analysis core
// assumes pre-validated input and never produces these itself.
var (
	ErrMissingColumns = New(
		"MISSING_COLUMNS",
		"CSV is missing required columns",
		http.StatusBadRequest,
	)

	ErrNoValidRows = New(
		"NO_VALID_ROWS",
		"No valid rows after validation",
		http.StatusBadRequest,
	)

	ErrInvalidCSV = New(
		"INVALID_CSV",
		"Uploaded file could not be parsed as CSV",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)
)

var (
	ErrResultNotFound = New(
		"RESULT_NOT_FOUND",
		"Analysis result not found or expired",
		http.StatusNotFound,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
