package journal

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/blake2b"
)

// testDSN points at the shared PostgreSQL container. Empty when Docker is
// unavailable or -short is set.
var testDSN string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Printf("postgres container unavailable, journal tests skipped: %v", err)
		os.Exit(m.Run())
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("getting container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatalf("getting container port: %v", err)
	}
	testDSN = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	if testDSN == "" {
		t.Skip("postgres not available")
	}
	ctx := context.Background()
	j, err := Open(ctx, testDSN)
	require.NoError(t, err)
	t.Cleanup(j.Close)

	_, err = j.pool.Exec(ctx, "TRUNCATE conversions")
	require.NoError(t, err)
	return j
}

func TestJournal_RecordAndLast(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	last, err := j.Last(ctx, "db/re/item_db.txt")
	require.NoError(t, err)
	assert.Nil(t, last)

	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, j.Record(ctx, Conversion{
		DocType:      "ITEM_DB",
		Version:      1,
		SourcePath:   "db/re/item_db.txt",
		DestPath:     "db/re/item_db.yml",
		SourceDigest: []byte{1, 2, 3},
		Entries:      100,
		Skipped:      2,
		ConvertedAt:  first,
	}))
	require.NoError(t, j.Record(ctx, Conversion{
		DocType:      "ITEM_DB",
		Version:      1,
		SourcePath:   "db/re/item_db.txt",
		DestPath:     "db/re/item_db.yml",
		SourceDigest: []byte{4, 5, 6},
		Entries:      101,
		Aborted:      true,
		ConvertedAt:  first.Add(time.Hour),
	}))
	require.NoError(t, j.Record(ctx, Conversion{
		DocType:      "PET_DB",
		Version:      1,
		SourcePath:   "db/re/pet_db.txt",
		DestPath:     "db/re/pet_db.yml",
		SourceDigest: []byte{7},
	}))

	last, err = j.Last(ctx, "db/re/item_db.txt")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, []byte{4, 5, 6}, last.SourceDigest)
	assert.Equal(t, 101, last.Entries)
	assert.True(t, last.Aborted)
	assert.Equal(t, uint32(1), last.Version)
	assert.True(t, last.ConvertedAt.Equal(first.Add(time.Hour)))

	pet, err := j.Last(ctx, "db/re/pet_db.txt")
	require.NoError(t, err)
	require.NotNil(t, pet)
	assert.False(t, pet.ConvertedAt.IsZero())
}

func TestDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item_db.txt")
	content := []byte("501,Red_Potion,Red Potion,0,50,,70,,,,,0xFFFFFFFF,63,2,,,,,,{},{},{}\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	got, err := Digest(path)
	require.NoError(t, err)
	want := blake2b.Sum256(content)
	assert.Equal(t, want[:], got)

	_, err = Digest(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestOpen_MigratesIntoOwnVersionTable(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	again, err := Open(ctx, testDSN)
	require.NoError(t, err, "reopening an up to date journal")
	again.Close()

	var version int64
	err = j.pool.QueryRow(ctx,
		"SELECT max(version_id) FROM "+versionTable+" WHERE is_applied").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestSlogGoose(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	slogGoose{}.Printf("OK   %s (%s)\n", "00001_conversions.sql", "1ms")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `step="OK   00001_conversions.sql (1ms)"`)
}
