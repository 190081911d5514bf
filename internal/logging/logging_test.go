package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarningSink_Enabled(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWarningSink(New(&buf, "json"), true, func() float64 { return 12.5 })
	sink.Warn("p.tsv: unused patient columns: ward")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "p.tsv: unused patient columns: ward", ev["message"])
	assert.Equal(t, 12.5, ev["model_time"])
}

func TestWarningSink_NoClock(t *testing.T) {
	var buf bytes.Buffer
	NewWarningSink(New(&buf, "json"), true, nil).Warn("hello")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	_, ok := ev["model_time"]
	assert.False(t, ok)
}

func TestWarningSink_Disabled(t *testing.T) {
	var buf bytes.Buffer
	NewWarningSink(New(&buf, "json"), false, nil).Warn("hidden")
	assert.Zero(t, buf.Len())
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text")
	log.Info().Msg("ready")
	assert.Contains(t, buf.String(), "ready")
	assert.False(t, json.Valid(buf.Bytes()))
}
