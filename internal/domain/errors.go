package domain

import (
	"errors"
	"fmt"
)

// ErrUndefinedMetric is returned when a derived metric has no defined value,
// such as efficiency over a year with zero harvested water. Callers render
// it as "not applicable" rather than propagating a division by zero.
var ErrUndefinedMetric = errors.New("metric is undefined: total harvested water is zero")

// InvalidParameterError reports a simulation input that failed validation.
// Field names the offending parameter in its wire form (e.g. "roof_area").
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}
