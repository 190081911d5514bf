package normalize

import (
	"strings"
	"time"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// ParseDateTime parses "2006-01-02 15:04:05", its ISO form with T and Z
// markers, or a bare date (midnight). Empty input returns the zero time.
func ParseDateTime(s string) (time.Time, error) {
	s = RemoveQuotes(s)
	if s == "" {
		return time.Time{}, nil
	}
	cleaned := strings.NewReplacer("T", " ", "Z", "", "'", "").Replace(s)
	if len(s) == len(dateLayout) {
		if t, err := time.Parse(dateLayout, cleaned); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(dateTimeLayout, cleaned)
	if err != nil {
		return time.Time{}, &DataValidationError{Value: s, Reason: "not a date-time (want yyyy-mm-dd hh:mm:ss)"}
	}
	return t, nil
}
