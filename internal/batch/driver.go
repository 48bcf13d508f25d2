package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/udisondev/csv2yaml/internal/config"
	"github.com/udisondev/csv2yaml/internal/convert"
	"github.com/udisondev/csv2yaml/internal/journal"
	"github.com/udisondev/csv2yaml/internal/prompt"
	"github.com/udisondev/csv2yaml/internal/yamldoc"
)

// ErrDestination marks a converted document that could not be written.
// It stops the whole run.
var ErrDestination = errors.New("cannot write destination")

// Recorder keeps a history of conversions.
type Recorder interface {
	Record(ctx context.Context, c journal.Conversion) error
	Last(ctx context.Context, source string) (*journal.Conversion, error)
}

// Summary totals one job.
type Summary struct {
	Job     string
	Files   int
	Entries int
	Skipped int
	Aborted int
	Elapsed time.Duration
}

// Driver runs jobs over the source roots of a config.
type Driver struct {
	cfg     config.Config
	conv    *convert.Converter
	confirm prompt.Confirmer
	journal Recorder
}

// NewDriver returns a Driver. rec may be nil to skip journaling.
func NewDriver(cfg config.Config, conv *convert.Converter, confirm prompt.Confirmer, rec Recorder) *Driver {
	return &Driver{cfg: cfg, conv: conv, confirm: confirm, journal: rec}
}

// Run converts every source file of jobs, in order. Per-file failures are
// logged and the run goes on; an ErrDestination failure ends it.
func (d *Driver) Run(ctx context.Context, jobs []Job) ([]Summary, error) {
	summaries := make([]Summary, 0, len(jobs))
	for _, j := range jobs {
		start := time.Now()
		sum := Summary{Job: j.Name}
		for _, root := range j.Roots(d.cfg) {
			if err := ctx.Err(); err != nil {
				return summaries, err
			}
			if err := d.convertFile(ctx, j, root, &sum); err != nil {
				sum.Elapsed = time.Since(start)
				return append(summaries, sum), err
			}
		}
		sum.Elapsed = time.Since(start)
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (d *Driver) convertFile(ctx context.Context, j Job, root string, sum *Summary) error {
	from := filepath.Join(root, j.Name+".txt")
	to := filepath.Join(root, j.Name+".yml")

	if !fileExists(from) {
		return nil
	}
	ok, err := d.confirm.Confirm("Found the file %q, which requires migration to yml.\nDo you want to convert it now? (Y/N)", from)
	if err != nil {
		return fmt.Errorf("confirming %s: %w", from, err)
	}
	if !ok {
		return nil
	}

	digest := d.checkUnchanged(ctx, from)

	if fileExists(to) {
		ok, err := d.confirm.Confirm("The file %q already exists.\nDo you want to replace it? (Y/N)", to)
		if err != nil {
			return fmt.Errorf("confirming %s: %w", to, err)
		}
		if !ok {
			return nil
		}
	}

	f, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}
	defer f.Close()

	w, err := yamldoc.NewWriter(f, yamldoc.Header{Type: j.Type, Version: j.Version})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestination, to, err)
	}

	res, convErr := j.Convert(d.conv, from, w)
	if w.Err() != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestination, to, w.Err())
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestination, to, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestination, to, err)
	}
	if convErr != nil {
		slog.Error("converting file", "file", from, "err", convErr)
		return nil
	}

	slog.Info("done reading entries", "file", from, "entries", res.Entries, "skipped", res.Skipped)
	sum.Files++
	sum.Entries += res.Entries
	sum.Skipped += res.Skipped
	if res.Aborted {
		sum.Aborted++
	}

	if d.journal != nil && digest != nil {
		err := d.journal.Record(ctx, journal.Conversion{
			DocType:      j.Type,
			Version:      j.Version,
			SourcePath:   from,
			DestPath:     to,
			SourceDigest: digest,
			Entries:      res.Entries,
			Skipped:      res.Skipped,
			Aborted:      res.Aborted,
		})
		if err != nil {
			slog.Warn("journal record failed", "file", from, "err", err)
		}
	}
	return nil
}

// checkUnchanged reports a source whose digest matches its last recorded
// conversion and returns the current digest. Journal failures are logged
// and yield a nil digest.
func (d *Driver) checkUnchanged(ctx context.Context, from string) []byte {
	if d.journal == nil {
		return nil
	}
	digest, err := journal.Digest(from)
	if err != nil {
		slog.Warn("hashing source failed", "file", from, "err", err)
		return nil
	}
	last, err := d.journal.Last(ctx, from)
	if err != nil {
		slog.Warn("journal lookup failed", "file", from, "err", err)
		return digest
	}
	if last != nil && bytes.Equal(last.SourceDigest, digest) {
		slog.Info("source unchanged since last conversion",
			"file", from,
			"converted", humanize.Time(last.ConvertedAt),
			"entries", last.Entries,
		)
	}
	return digest
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
