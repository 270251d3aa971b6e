package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ReasonNotANumber is the Reason set when input cannot be parsed as a
// number at all, as opposed to failing a range check.
const ReasonNotANumber = "not a valid number"

// ParseFloat parses one numeric field and enforces its minimum. Failures
// come back as *InvalidParameterError carrying the field name.
func ParseFloat(field, input string, minValue float64) (float64, error) {
	v, err := parseNumber(field, input)
	if err != nil {
		return 0, err
	}
	if v < minValue {
		return 0, &InvalidParameterError{Field: field, Value: v, Reason: fmt.Sprintf("must be at least %g", minValue)}
	}
	return v, nil
}

// ParsePositiveFloat parses a field that must be strictly positive.
func ParsePositiveFloat(field, input string) (float64, error) {
	v, err := parseNumber(field, input)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, &InvalidParameterError{Field: field, Value: v, Reason: "must be positive"}
	}
	return v, nil
}

// ParseUnitIntervalFloat parses a field bounded to [0, 1].
func ParseUnitIntervalFloat(field, input string) (float64, error) {
	v, err := parseNumber(field, input)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, &InvalidParameterError{Field: field, Value: v, Reason: "must be between 0 and 1"}
	}
	return v, nil
}

func parseNumber(field, input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, &InvalidParameterError{Field: field, Reason: ReasonNotANumber}
	}
	return v, nil
}
