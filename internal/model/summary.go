package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ColumnBinding is one header column and the schema field it matched.
type ColumnBinding struct {
	Position int
	Name     string
	Raw      string
	Field    *string // nil when the column matched nothing
}

// ValidationRecord captures the outcome of validating one file's header.
type ValidationRecord struct {
	ValidationID uuid.UUID
	RunID        uuid.UUID
	Kind         string
	SourceFile   string
	FileSHA256   string
	OK           bool
	Missing      []string
	Unused       []string
	Columns      []ColumnBinding
	ValidatedAt  time.Time
	Duration     time.Duration
}

// RunSummary captures every file checked by one simcheck run.
type RunSummary struct {
	RunID         uuid.UUID
	Records       []ValidationRecord
	Failures      []error
	DurationTotal time.Duration
}

// Failed returns the number of files with missing required columns.
func (s *RunSummary) Failed() int {
	return len(s.Failures)
}

// Err joins all validation failures, or returns nil.
func (s *RunSummary) Err() error {
	return errors.Join(s.Failures...)
}
