package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/endosim/simcheck/internal/config"
	"github.com/endosim/simcheck/internal/header"
	"github.com/endosim/simcheck/internal/model"
	"github.com/endosim/simcheck/internal/normalize"
	"github.com/endosim/simcheck/internal/schema"
)

// PhaseError wraps an error with the phase and file where it occurred.
type PhaseError struct {
	Phase string // "config", "read", "hash", "record" or "cancel"
	Path  string
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Phase, e.Path, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Recorder stores validation records.
type Recorder interface {
	Record(ctx context.Context, rec *model.ValidationRecord) error
}

// Run validates the header of every configured input. Missing required
// columns do not stop the run: they are collected in the summary, whose
// Err reports them. I/O, config and recorder failures abort with a
// *PhaseError. rec may be nil.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, sink header.Sink, rec Recorder) (*model.RunSummary, error) {
	start := time.Now()

	reg, err := cfg.Registry()
	if err != nil {
		return nil, &PhaseError{Phase: "config", Err: err}
	}

	summary := &model.RunSummary{RunID: uuid.New()}
	log = log.With().Str("run_id", summary.RunID.String()).Logger()
	v := header.NewValidator(sink)

	for _, in := range cfg.Targets() {
		if err := ctx.Err(); err != nil {
			return nil, &PhaseError{Phase: "cancel", Path: in.Path, Err: err}
		}

		r, err := checkOne(reg, v, in)
		if err != nil {
			return nil, err
		}
		r.RunID = summary.RunID

		ev := log.Info()
		if !r.OK {
			ev = log.Error().Strs("missing", r.Missing)
		}
		ev.Str("file", in.Path).
			Str("kind", in.Kind).
			Int("columns", len(r.Columns)).
			Strs("unused", r.Unused).
			Dur("duration", r.Duration).
			Msg("header checked")

		if !r.OK {
			summary.Failures = append(summary.Failures, &header.MissingColumnsError{
				Source:  r.SourceFile,
				Kind:    schema.Kind(r.Kind),
				Missing: r.Missing,
			})
		}

		if rec != nil {
			if err := rec.Record(ctx, r); err != nil {
				return nil, &PhaseError{Phase: "record", Path: in.Path, Err: err}
			}
		}
		summary.Records = append(summary.Records, *r)
	}

	summary.DurationTotal = time.Since(start)
	log.Info().
		Int("files", len(summary.Records)).
		Int("failed", summary.Failed()).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("header check complete")

	return summary, nil
}

func checkOne(reg *schema.Registry, v *header.Validator, in config.Input) (*model.ValidationRecord, error) {
	start := time.Now()

	s, err := reg.Get(schema.Kind(in.Kind))
	if err != nil {
		return nil, &PhaseError{Phase: "config", Path: in.Path, Err: err}
	}
	delim, err := config.ParseDelimiter(in.Delimiter, in.Path)
	if err != nil {
		return nil, &PhaseError{Phase: "config", Path: in.Path, Err: err}
	}

	o, err := v.ValidateFile(in.Path, delim, s)
	if err != nil {
		return nil, &PhaseError{Phase: "read", Path: in.Path, Err: err}
	}

	sha, err := normalize.FileHash(in.Path)
	if err != nil {
		return nil, &PhaseError{Phase: "hash", Path: in.Path, Err: err}
	}

	return &model.ValidationRecord{
		ValidationID: uuid.New(),
		Kind:         string(s.Kind()),
		SourceFile:   in.Path,
		FileSHA256:   sha,
		OK:           o.OK(),
		Missing:      o.Missing,
		Unused:       o.UnusedNames(),
		Columns:      Bindings(o),
		Duration:     time.Since(start),
	}, nil
}

// Bindings lists every header column of o with the field it matched.
// Columns of a failed outcome carry no field.
func Bindings(o *header.Outcome) []model.ColumnBinding {
	out := make([]model.ColumnBinding, len(o.Columns))
	for i, c := range o.Columns {
		out[i] = model.ColumnBinding{Position: c.Position, Name: c.Name, Raw: c.Raw}
		if f, ok := o.FieldAt(c.Position); ok {
			out[i].Field = &f
		}
	}
	return out
}

// IsValidationFailure reports whether err only carries missing-column failures.
func IsValidationFailure(err error) bool {
	var mce *header.MissingColumnsError
	return errors.As(err, &mce)
}
