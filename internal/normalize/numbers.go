package normalize

import (
	"fmt"
	"strconv"
)

// DataValidationError reports a cell value that could not be parsed.
type DataValidationError struct {
	Value  string
	Reason string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Value, e.Reason)
}

// isBlank reports the sentinel inputs that parse to a zero value.
func isBlank(s string) bool {
	return s == "" || s == "NA"
}

// ParseInt parses an integer cell. Empty and "NA" return 0.
func ParseInt(s string) (int, error) {
	s = RemoveQuotes(s)
	if isBlank(s) {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &DataValidationError{Value: s, Reason: "not an integer"}
	}
	return n, nil
}

// ParseFloat parses a decimal cell. Empty and "NA" return 0.
func ParseFloat(s string) (float64, error) {
	s = RemoveQuotes(s)
	if isBlank(s) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &DataValidationError{Value: s, Reason: "not a number"}
	}
	return f, nil
}
