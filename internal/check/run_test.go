package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endosim/simcheck/internal/config"
	"github.com/endosim/simcheck/internal/header"
	"github.com/endosim/simcheck/internal/model"
	"github.com/endosim/simcheck/internal/schema"
)

type memRecorder struct {
	recs []model.ValidationRecord
	err  error
}

func (m *memRecorder) Record(_ context.Context, rec *model.ValidationRecord) error {
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, *rec)
	return nil
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_MixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Inputs: []config.Input{
		{Kind: "patient", Path: write(t, dir, "patients.tsv", "patient_id\tscheduled_datetime\tprocedure\tward\n")},
		{Kind: "surgeon", Path: write(t, dir, "surgeons.csv", "name,skills\n")},
		{Kind: "operating_room", Path: write(t, dir, "rooms.txt", "or_id|room_type\n"), Delimiter: "pipe"},
	}}

	var warnings []string
	sink := header.SinkFunc(func(msg string) { warnings = append(warnings, msg) })
	rec := &memRecorder{}

	summary, err := Run(context.Background(), zerolog.Nop(), cfg, sink, rec)
	require.NoError(t, err)
	require.Len(t, summary.Records, 3)
	assert.Equal(t, 1, summary.Failed())
	assert.Len(t, rec.recs, 3)

	p := summary.Records[0]
	assert.True(t, p.OK)
	assert.Equal(t, []string{"ward"}, p.Unused)
	assert.Len(t, p.FileSHA256, 64)
	assert.Equal(t, summary.RunID, p.RunID)
	require.Len(t, p.Columns, 4)
	assert.Equal(t, "patient_id", *p.Columns[0].Field)
	assert.Nil(t, p.Columns[3].Field)

	s := summary.Records[1]
	assert.False(t, s.OK)
	assert.Equal(t, []string{"surgeon_id"}, s.Missing)
	assert.Empty(t, s.Unused)

	assert.True(t, summary.Records[2].OK)
	assert.Len(t, warnings, 1)

	err = summary.Err()
	require.Error(t, err)
	assert.True(t, IsValidationFailure(err))
	var mce *header.MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"surgeon_id"}, mce.Missing)
}

func TestRun_AllPass(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Kind:     "operating_room",
		FilePath: write(t, dir, "rooms.csv", "or_id,room_type,turnover_time\n"),
	}
	summary, err := Run(context.Background(), zerolog.Nop(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Failed())
	assert.NoError(t, summary.Err())
}

func TestRun_DeclaredSchema(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Kind:     "ward",
		FilePath: write(t, dir, "wards.csv", "ward_id,bed_1,bed_2\n"),
		Schemas: map[string][]schema.Field{
			"ward": {{Name: "ward_id", Required: true}, {Name: "bed_"}},
		},
	}
	summary, err := Run(context.Background(), zerolog.Nop(), cfg, nil, nil)
	require.NoError(t, err)
	require.Len(t, summary.Records, 1)
	assert.True(t, summary.Records[0].OK)
	assert.Empty(t, summary.Records[0].Unused)
}

func TestRun_ReadErrorAborts(t *testing.T) {
	cfg := &config.Config{Kind: "patient", FilePath: filepath.Join(t.TempDir(), "missing.tsv")}
	_, err := Run(context.Background(), zerolog.Nop(), cfg, nil, nil)

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "read", pe.Phase)
	assert.False(t, IsValidationFailure(err))
}

func TestRun_UnknownKind(t *testing.T) {
	cfg := &config.Config{Kind: "ward", FilePath: write(t, t.TempDir(), "w.csv", "id\n")}
	_, err := Run(context.Background(), zerolog.Nop(), cfg, nil, nil)

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "config", pe.Phase)
}

func TestRun_RecorderErrorAborts(t *testing.T) {
	cfg := &config.Config{Kind: "operating_room", FilePath: write(t, t.TempDir(), "r.csv", "or_id\n")}
	boom := errors.New("db down")
	_, err := Run(context.Background(), zerolog.Nop(), cfg, nil, &memRecorder{err: boom})

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "record", pe.Phase)
	assert.ErrorIs(t, err, boom)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := &config.Config{Kind: "operating_room", FilePath: write(t, t.TempDir(), "r.csv", "or_id\n")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, zerolog.Nop(), cfg, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "cancel", pe.Phase)
	assert.Equal(t, cfg.FilePath, pe.Path)
}
