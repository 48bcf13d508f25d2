package journal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/csv2yaml/internal/journal/migrations"
)

// versionTable keeps the journal schema version apart from any other
// goose-managed schema in the same database.
const versionTable = "csv2yaml_journal_version"

// migrate brings the conversions schema up to date over pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(versionTable)
	goose.SetLogger(slogGoose{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("journal schema: %w", err)
	}

	before, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("journal schema version: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("upgrading journal schema from version %d: %w", before, err)
	}
	return nil
}

// slogGoose forwards goose progress lines to slog.
type slogGoose struct{}

func (slogGoose) Printf(format string, v ...any) {
	slog.Debug("journal migration", "step", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (slogGoose) Fatalf(format string, v ...any) {
	slog.Error("journal migration", "err", strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
