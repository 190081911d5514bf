package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/endosim/simcheck/internal/model"
)

// columnsTableColumns is the COPY column order for header_columns.
var columnsTableColumns = []string{"validation_id", "position", "column_name", "raw_text", "matched_field"}

// ColumnSource implements pgx.CopyFromSource over one validation's header columns.
type ColumnSource struct {
	validationID uuid.UUID
	cols         []model.ColumnBinding
	idx          int
}

// NewColumnSource creates a CopyFromSource for the given columns.
func NewColumnSource(validationID uuid.UUID, cols []model.ColumnBinding) *ColumnSource {
	return &ColumnSource{validationID: validationID, cols: cols, idx: -1}
}

// Next advances to the next column.
func (s *ColumnSource) Next() bool {
	s.idx++
	return s.idx < len(s.cols)
}

// Values returns the current column's values in COPY column order.
func (s *ColumnSource) Values() ([]any, error) {
	c := s.cols[s.idx]
	return []any{s.validationID, int32(c.Position), c.Name, c.Raw, c.Field}, nil
}

// Err always returns nil; the source is in memory.
func (s *ColumnSource) Err() error {
	return nil
}

// Compile-time check that ColumnSource satisfies the interface.
var _ pgx.CopyFromSource = (*ColumnSource)(nil)
