package db_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endosim/simcheck/internal/db"
	"github.com/endosim/simcheck/internal/model"
)

const (
	testPort     = 15433
	testDB       = "simcheck"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)
	pool, err := db.NewPool(context.Background(), dsn)
	if err != nil {
		_ = pg.Stop()
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	testPool = pool

	code := m.Run()

	pool.Close()
	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

func setup(t *testing.T) *db.Store {
	t.Helper()
	if testPool == nil {
		t.Skip("database tests disabled in -short mode")
	}
	ctx := context.Background()
	_, err := db.ApplyMigrations(ctx, testPool, zerolog.Nop())
	require.NoError(t, err)
	_, err = testPool.Exec(ctx, "TRUNCATE header_validations CASCADE")
	require.NoError(t, err)
	return db.NewStore(testPool)
}

func strPtr(s string) *string { return &s }

func TestApplyMigrations_Idempotent(t *testing.T) {
	setup(t)
	n, err := db.ApplyMigrations(context.Background(), testPool, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := setup(t)
	ctx := context.Background()
	runID := uuid.New()

	ok := &model.ValidationRecord{
		ValidationID: uuid.New(),
		RunID:        runID,
		Kind:         "patient",
		SourceFile:   "patients.tsv",
		FileSHA256:   "abc",
		OK:           true,
		Unused:       []string{"ward"},
		Columns: []model.ColumnBinding{
			{Position: 0, Name: "patient_id", Raw: "patient_id", Field: strPtr("patient_id")},
			{Position: 1, Name: "ward", Raw: `"ward"`},
		},
	}
	require.NoError(t, store.Record(ctx, ok))
	assert.False(t, ok.ValidatedAt.IsZero())

	failed := &model.ValidationRecord{
		ValidationID: uuid.New(),
		RunID:        runID,
		Kind:         "surgeon",
		SourceFile:   "surgeons.tsv",
		FileSHA256:   "def",
		Missing:      []string{"surgeon_id"},
	}
	require.NoError(t, store.Record(ctx, failed))

	all, err := store.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	patients, err := store.Recent(ctx, "patient", 10)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	got := patients[0]
	assert.Equal(t, ok.ValidationID, got.ValidationID)
	assert.Equal(t, runID, got.RunID)
	assert.True(t, got.OK)
	assert.Equal(t, []string{"ward"}, got.Unused)
	assert.Empty(t, got.Missing)

	surgeons, err := store.Recent(ctx, "surgeon", 10)
	require.NoError(t, err)
	require.Len(t, surgeons, 1)
	assert.False(t, surgeons[0].OK)
	assert.Equal(t, []string{"surgeon_id"}, surgeons[0].Missing)

	cols, err := store.Columns(ctx, ok.ValidationID)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "patient_id", *cols[0].Field)
	assert.Nil(t, cols[1].Field)
	assert.Equal(t, `"ward"`, cols[1].Raw)
}

func TestStore_RecentLimit(t *testing.T) {
	store := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record(ctx, &model.ValidationRecord{
			ValidationID: uuid.New(),
			RunID:        uuid.New(),
			Kind:         "operating_room",
			SourceFile:   "rooms.csv",
			OK:           true,
		}))
	}
	recs, err := store.Recent(ctx, "operating_room", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestColumnSource(t *testing.T) {
	id := uuid.New()
	src := db.NewColumnSource(id, []model.ColumnBinding{
		{Position: 0, Name: "or_id", Raw: "or_id", Field: strPtr("or_id")},
		{Position: 1, Name: "floor", Raw: " floor"},
	})

	var rows [][]any
	for src.Next() {
		v, err := src.Values()
		require.NoError(t, err)
		rows = append(rows, v)
	}
	require.NoError(t, src.Err())
	require.Len(t, rows, 2)
	assert.Equal(t, id, rows[0][0])
	assert.Equal(t, int32(1), rows[1][1])
	assert.Equal(t, " floor", rows[1][3])
	assert.Nil(t, rows[1][4])
}
