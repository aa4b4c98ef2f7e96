package services

import "errors"

// ErrInvalidPeriod is the cause of a trend request for an unknown period.
var ErrInvalidPeriod = errors.New("invalid trend period")
