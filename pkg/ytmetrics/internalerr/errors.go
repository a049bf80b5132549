package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyInput    = errors.New("empty input")
	ErrNoDimensions  = errors.New("no dimension column")
	ErrNoMetrics     = errors.New("no metric data")
	ErrNoKeyColumns  = errors.New("key columns missing")
	ErrNoData        = errors.New("no data extracted")
	ErrInvalidConfig = errors.New("invalid configuration")
)
