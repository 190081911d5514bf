package logging

import "github.com/rs/zerolog"

// WarningSink writes advisory warnings to a zerolog.Logger. When disabled
// every warning is dropped. It is safe for concurrent use as long as the
// logger's writer is.
type WarningSink struct {
	log     zerolog.Logger
	enabled bool
	now     func() float64
}

// NewWarningSink returns a sink that logs at warn level when enabled.
// now, if non-nil, supplies the current model time attached to each warning.
func NewWarningSink(log zerolog.Logger, enabled bool, now func() float64) *WarningSink {
	return &WarningSink{log: log, enabled: enabled, now: now}
}

// Warn logs msg.
func (s *WarningSink) Warn(msg string) {
	if !s.enabled {
		return
	}
	ev := s.log.Warn()
	if s.now != nil {
		ev = ev.Float64("model_time", s.now())
	}
	ev.Msg(msg)
}
