// Package journal records completed conversions in PostgreSQL so reruns
// can tell whether a source table changed since it was last converted.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/blake2b"
)

// Journal wraps a pgx connection pool for conversion records.
type Journal struct {
	pool *pgxpool.Pool
}

// Conversion is one converted source file.
type Conversion struct {
	DocType      string
	Version      uint32
	SourcePath   string
	DestPath     string
	SourceDigest []byte
	Entries      int
	Skipped      int
	Aborted      bool
	ConvertedAt  time.Time
}

// Open connects to PostgreSQL, applies migrations and returns a Journal.
func Open(ctx context.Context, dsn string) (*Journal, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to journal: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging journal: %w", err)
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Journal{pool: pool}, nil
}

// Close closes the connection pool.
func (j *Journal) Close() {
	j.pool.Close()
}

// Record stores c. A zero ConvertedAt is stamped by the database.
func (j *Journal) Record(ctx context.Context, c Conversion) error {
	var at any
	if !c.ConvertedAt.IsZero() {
		at = c.ConvertedAt
	}
	_, err := j.pool.Exec(ctx,
		`INSERT INTO conversions
		   (doc_type, version, source_path, dest_path, source_digest, entries, skipped, aborted, converted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))`,
		c.DocType, int32(c.Version), c.SourcePath, c.DestPath, c.SourceDigest,
		c.Entries, c.Skipped, c.Aborted, at,
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", c.SourcePath, err)
	}
	return nil
}

// Last returns the most recent conversion of source.
// Returns nil, nil if source was never converted.
func (j *Journal) Last(ctx context.Context, source string) (*Conversion, error) {
	var (
		c       Conversion
		version int32
	)
	err := j.pool.QueryRow(ctx,
		`SELECT doc_type, version, source_path, dest_path, source_digest, entries, skipped, aborted, converted_at
		 FROM conversions WHERE source_path = $1
		 ORDER BY converted_at DESC, id DESC LIMIT 1`, source,
	).Scan(&c.DocType, &version, &c.SourcePath, &c.DestPath, &c.SourceDigest,
		&c.Entries, &c.Skipped, &c.Aborted, &c.ConvertedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last conversion of %s: %w", source, err)
	}
	c.Version = uint32(version)
	return &c, nil
}

// Digest returns the BLAKE2b-256 digest of the file at path.
func Digest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
