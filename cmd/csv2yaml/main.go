// Converter from the legacy comma-separated databases to YAML.
//
// Usage:
//
//	go run ./cmd/csv2yaml all                        # convert every table
//	go run ./cmd/csv2yaml item_db pet_db             # convert only the named tables
//	go run ./cmd/csv2yaml --list                     # list available tables
//	go run ./cmd/csv2yaml -db /srv/db -mode pre-re -y all
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/udisondev/csv2yaml/internal/batch"
	"github.com/udisondev/csv2yaml/internal/config"
	"github.com/udisondev/csv2yaml/internal/journal"
	"github.com/udisondev/csv2yaml/internal/prompt"
)

const ConfigPath = "config/csv2yaml.yaml"

type options struct {
	configPath string
	dbPath     string
	mode       string
	logLevel   string
	journalDSN string
	assumeYes  bool
	list       bool
	jobs       []string
	set        map[string]bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.list {
		printList(os.Stdout)
		return
	}
	if len(opts.jobs) == 0 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("csv2yaml", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "config file (default $CSV2YAML_CONFIG or "+ConfigPath+")")
	fs.StringVar(&opts.dbPath, "db", "", "database root directory")
	fs.StringVar(&opts.mode, "mode", "", "source layout: re or pre-re")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&opts.journalDSN, "journal-dsn", "", "PostgreSQL DSN of the conversion journal")
	fs.BoolVar(&opts.assumeYes, "y", false, "answer yes to every question")
	fs.BoolVar(&opts.list, "list", false, "list available tables")
	fs.Usage = func() {
		printUsage(fs.Output())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.jobs = fs.Args()
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.configPath == "" {
		opts.configPath = ConfigPath
		if p := os.Getenv("CSV2YAML_CONFIG"); p != "" {
			opts.configPath = p
		}
	}
	return opts, nil
}

// loadConfig reads the config file and applies explicitly set flags.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.set["db"] {
		cfg.DBPath = opts.dbPath
	}
	if opts.set["mode"] {
		cfg.Mode = opts.mode
	}
	if opts.set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}
	if opts.set["journal-dsn"] {
		cfg.Journal.DSN = opts.journalDSN
		cfg.Journal.Enabled = opts.journalDSN != ""
	}
	if opts.set["y"] {
		cfg.AssumeYes = opts.assumeYes
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, opts options) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lvl, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})))
	slog.Info("config loaded", "db", cfg.DBPath, "mode", cfg.Mode, "import", cfg.ImportDir, "journal", cfg.Journal.Active())

	jobs, err := batch.Select(opts.jobs)
	if err != nil {
		printList(os.Stderr)
		return err
	}

	start := time.Now()
	conv, err := batch.Prepare(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("preload done", "elapsed", time.Since(start).Round(time.Millisecond))

	var rec batch.Recorder
	if cfg.Journal.Active() {
		j, err := journal.Open(ctx, cfg.Journal.DSN)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer j.Close()
		rec = j
		slog.Info("journal connected")
	}

	confirm := prompt.NewConsole(os.Stdin, os.Stdout, cfg.AssumeYes)
	sums, err := batch.NewDriver(cfg, conv, confirm, rec).Run(ctx, jobs)
	printSummary(os.Stdout, sums, time.Since(start))
	if err != nil {
		return fmt.Errorf("converting: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, sums []batch.Summary, total time.Duration) {
	head := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	head.Fprintln(w, "[csv2yaml] summary")
	for _, s := range sums {
		fmt.Fprintf(w, "  %-18s %d file(s), %s entries", s.Job, s.Files, humanize.Comma(int64(s.Entries)))
		if s.Skipped > 0 {
			warn.Fprintf(w, ", %s skipped", humanize.Comma(int64(s.Skipped)))
		}
		if s.Aborted > 0 {
			warn.Fprintf(w, ", %d aborted", s.Aborted)
		}
		fmt.Fprintf(w, " (%s)\n", s.Elapsed.Round(time.Millisecond))
	}
	head.Fprintf(w, "[csv2yaml] all done (%s)\n", total.Round(time.Millisecond))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: csv2yaml [flags] <all | name1 name2 ...>")
	fmt.Fprintln(w, "       csv2yaml --list")
}

func printList(w io.Writer) {
	jobs := batch.Jobs()
	maxLen := 0
	for _, j := range jobs {
		if len(j.Name) > maxLen {
			maxLen = len(j.Name)
		}
	}

	fmt.Fprintln(w, "Available tables:")
	for _, j := range jobs {
		fmt.Fprintf(w, "  %-*s  %s\n", maxLen, j.Name, j.Desc)
	}
}
