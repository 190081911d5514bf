package header

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/endosim/simcheck/internal/schema"
)

// Sink receives advisory warnings. Whether they are shown is up to the sink.
type Sink interface {
	Warn(msg string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(msg string)

func (f SinkFunc) Warn(msg string) { f(msg) }

// Discard drops every warning.
var Discard Sink = SinkFunc(func(string) {})

// MissingColumnsError reports required fields that no header column matched.
type MissingColumnsError struct {
	Source  string
	Kind    schema.Kind
	Missing []string // base names, in schema declaration order
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required %s columns: %s",
		e.Source, e.Kind, strings.Join(e.Missing, ", "))
}

// Outcome is the result of validating one header against one schema.
type Outcome struct {
	Source  string
	Kind    schema.Kind
	Columns []Token
	// Missing lists unmatched required base names. Non-empty means failure.
	Missing []string
	// Unused lists non-empty columns that match no field, in file order.
	// It is only computed when Missing is empty.
	Unused []Token

	bound map[int]string
}

// OK reports whether every required field was found.
func (o *Outcome) OK() bool {
	return len(o.Missing) == 0
}

// Err returns a *MissingColumnsError for a failed outcome, or nil.
func (o *Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return &MissingColumnsError{
		Source:  o.Source,
		Kind:    o.Kind,
		Missing: append([]string(nil), o.Missing...),
	}
}

// FieldAt returns the base name bound to the column at pos, if any.
func (o *Outcome) FieldAt(pos int) (string, bool) {
	name, ok := o.bound[pos]
	return name, ok
}

// Index returns the positions of every column bound to the named field,
// in file order. Family fields may bind several columns.
func (o *Outcome) Index(baseName string) []int {
	var idx []int
	for _, c := range o.Columns {
		if name, ok := o.bound[c.Position]; ok && name == baseName {
			idx = append(idx, c.Position)
		}
	}
	return idx
}

// UnusedNames returns the cleaned names of the unused columns.
func (o *Outcome) UnusedNames() []string {
	return Names(o.Unused)
}

// Validator checks file headers against schemas and reports unused
// columns to its sink. It holds no per-call state.
type Validator struct {
	sink Sink
}

// NewValidator returns a Validator writing warnings to sink.
// A nil sink discards warnings.
func NewValidator(sink Sink) *Validator {
	if sink == nil {
		sink = Discard
	}
	return &Validator{sink: sink}
}

// Validate reconciles columns against s. Required fields are checked first;
// only when all are present are unused columns detected and reported.
func (v *Validator) Validate(source string, s *schema.Schema, columns []Token) *Outcome {
	o := &Outcome{Source: source, Kind: s.Kind(), Columns: columns}

	o.Missing = missingRequired(s, columns)
	if !o.OK() {
		return o
	}

	o.bound = make(map[int]string, len(columns))
	for _, c := range columns {
		f, ok := s.Match(c.Name)
		if ok {
			o.bound[c.Position] = f.Name
			continue
		}
		if c.Name != "" {
			o.Unused = append(o.Unused, c)
		}
	}
	if len(o.Unused) > 0 {
		v.sink.Warn(fmt.Sprintf("%s: unused %s columns: %s",
			source, s.Kind(), strings.Join(o.UnusedNames(), ", ")))
	}
	return o
}

func missingRequired(s *schema.Schema, columns []Token) []string {
	var missing []string
	for _, f := range s.Fields() {
		if !f.Required {
			continue
		}
		found := false
		for _, c := range columns {
			if f.Matches(c.Name) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// ValidateReader reads the first line of r and validates it against s.
// An empty input yields no columns rather than an error.
func (v *Validator) ValidateReader(source string, r io.Reader, delim rune, s *schema.Schema) (*Outcome, error) {
	if err := checkDelimiter(delim); err != nil {
		return nil, err
	}
	line, ok, err := ReadLine(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	var columns []Token
	if ok {
		columns = Split(line, delim)
	}
	return v.Validate(source, s, columns), nil
}

// ValidateFile opens path, validates its header against s, and closes it.
// Parquet files are validated by their top-level column names and delim
// is ignored for them. The returned error covers I/O only; a header
// lacking required columns is reported through the Outcome.
func (v *Validator) ValidateFile(path string, delim rune, s *schema.Schema) (*Outcome, error) {
	if IsParquet(path) {
		names, err := ParquetColumns(path)
		if err != nil {
			return nil, err
		}
		return v.Validate(path, s, Tokens(names)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	return v.ValidateReader(path, f, delim, s)
}

// Check is ValidateFile for callers that treat missing columns as an error.
// It returns a *MissingColumnsError when required columns are absent.
func (v *Validator) Check(path string, delim rune, s *schema.Schema) (*Outcome, error) {
	o, err := v.ValidateFile(path, delim, s)
	if err != nil {
		return nil, err
	}
	return o, o.Err()
}

// IsParquet reports whether path names a Parquet file.
func IsParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

func checkDelimiter(delim rune) error {
	switch {
	case delim == 0, delim == utf8.RuneError:
		return fmt.Errorf("invalid delimiter %q", delim)
	case delim == '\n', delim == '\r':
		return fmt.Errorf("delimiter cannot be a line terminator")
	}
	return nil
}
