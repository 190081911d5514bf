package schema

import (
	"fmt"
	"strings"
)

// Kind identifies which input file a schema describes.
type Kind string

const (
	Patient       Kind = "patient"
	Surgeon       Kind = "surgeon"
	OperatingRoom Kind = "operating_room"
)

// Field declares one column, or one family of columns, expected in a file header.
type Field struct {
	Name     string `yaml:"name"` // base name, e.g. "patient_id" or "note_"
	Required bool   `yaml:"required"`
}

// Family reports whether the field names a repeatable column family.
// A family base name ends in "_" and is matched by that name plus a run of digits.
func (f Field) Family() bool {
	return strings.HasSuffix(f.Name, "_")
}

// Matches reports whether a cleaned column name belongs to this field.
// Matching is case-sensitive. A plain field matches its exact base name; a
// family matches the base name followed by one or more ASCII digits and
// nothing else, so the bare family root is not a column of its own.
func (f Field) Matches(column string) bool {
	if !f.Family() {
		return column == f.Name
	}
	suffix, ok := strings.CutPrefix(column, f.Name)
	if !ok || suffix == "" {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return false
		}
	}
	return true
}

// Schema is the ordered, immutable set of fields declared for one file kind.
// It is safe for concurrent use.
type Schema struct {
	kind   Kind
	fields []Field
}

// New builds a schema, rejecting empty or duplicate base names.
func New(kind Kind, fields ...Field) (*Schema, error) {
	if kind == "" {
		return nil, fmt.Errorf("schema kind is empty")
	}
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%s schema: field %d has an empty base name", kind, i+1)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%s schema: duplicate base name %q", kind, f.Name)
		}
		seen[f.Name] = true
	}
	own := make([]Field, len(fields))
	copy(own, fields)
	return &Schema{kind: kind, fields: own}, nil
}

// MustNew is like New but panics on an invalid declaration.
func MustNew(kind Kind, fields ...Field) *Schema {
	s, err := New(kind, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind returns the file kind this schema describes.
func (s *Schema) Kind() Kind {
	return s.kind
}

// Fields returns a copy of the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Required returns the base names of all required fields in declaration order.
func (s *Schema) Required() []string {
	var names []string
	for _, f := range s.fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Match returns the first declared field that the column belongs to.
func (s *Schema) Match(column string) (Field, bool) {
	for _, f := range s.fields {
		if f.Matches(column) {
			return f, true
		}
	}
	return Field{}, false
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}
