// Package main provides the command-line job feed importer.
// Usage: jobfeed-import [-partner NAME] [-append] [-clear] [-list] [-output json] FILE
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"jobfeed/internal/app"
	"jobfeed/internal/domain/entity"
	"jobfeed/internal/infra/db"
	"jobfeed/internal/observability/logging"
	"jobfeed/internal/usecase/importer"
)

const usage = `Usage: jobfeed-import [-partner NAME] [-append] [-clear] [-list] [-output json] FILE

Imports a partner job feed (XML or JSON) and prints every stored job.
Without -partner the format is detected from the file content, then its name,
then its extension.

Examples:
  jobfeed-import feeds/regionsjob.xml
  jobfeed-import -partner jobteaser -append export.json
  jobfeed-import -list -output json
`

type options struct {
	partner  string
	append   bool
	clear    bool
	list     bool
	output   string
	partners string
	file     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, usage)
		return 1
	}

	logger := logging.NewTextLogger(stderr)
	slog.SetDefault(logger)

	if err := execute(ctx, logger, opts, stdout); err != nil {
		logger.Error("import command failed", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("jobfeed-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	fs.StringVar(&opts.partner, "partner", "", "Partner name forcing the parser (e.g. regionsjob, jobteaser)")
	fs.BoolVar(&opts.append, "append", false, "Merge into the stored jobs instead of replacing them")
	fs.BoolVar(&opts.clear, "clear", false, "Delete every stored job before importing")
	fs.BoolVar(&opts.list, "list", false, "Only list stored jobs (FILE is optional)")
	fs.StringVar(&opts.output, "output", "text", "Listing format: text or json")
	fs.StringVar(&opts.partners, "partners-config", os.Getenv("PARTNERS_CONFIG"), "YAML file of partner aliases")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch fs.NArg() {
	case 0:
		if !opts.list && !opts.clear {
			return options{}, errors.New("FILE is required")
		}
	case 1:
		opts.file = fs.Arg(0)
	default:
		return options{}, fmt.Errorf("expected one FILE, got %d arguments", fs.NArg())
	}
	if opts.output != "text" && opts.output != "json" {
		return options{}, fmt.Errorf("unknown output format %q", opts.output)
	}
	return opts, nil
}

func execute(ctx context.Context, logger *slog.Logger, opts options, stdout io.Writer) error {
	dbCfg, err := db.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	a, err := app.New(ctx, logger, app.Options{DB: dbCfg, PartnersConfig: opts.partners})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	text := opts.output == "text"
	if text {
		fmt.Fprintln(stdout, "Starting...")
	}

	if opts.clear {
		if err := a.Importer.ClearAllJobs(ctx); err != nil {
			return err
		}
		if text {
			fmt.Fprintln(stdout, "> all jobs cleared.")
		}
	}

	if opts.file != "" {
		mode := importer.ModeImport
		if opts.append {
			mode = importer.ModeAppend
		}
		n, err := a.Importer.Run(ctx, mode, opts.file, opts.partner)
		if err != nil {
			return err
		}
		if text {
			fmt.Fprintf(stdout, "> %d jobs imported.\n", n)
		}
	}

	if !text {
		return outputJSON(ctx, a, stdout)
	}

	jobs, err := a.Lister.List(ctx)
	if err != nil {
		return err
	}
	outputText(stdout, jobs)
	fmt.Fprintln(stdout, "Terminating...")
	return nil
}

// outputText prints one line per job, newest publication first.
func outputText(w io.Writer, jobs []entity.Job) {
	fmt.Fprintf(w, "> all jobs (%d):\n", len(jobs))
	for _, j := range jobs {
		fmt.Fprintf(w, " %d: %s - %s - %s\n", j.ID, j.Reference, j.Title, j.PublishedDate)
	}
}

// outputJSON prints the stored jobs as a JSON array.
func outputJSON(ctx context.Context, a *app.App, w io.Writer) error {
	rows, err := a.Lister.ListAsMaps(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("encode jobs: %w", err)
	}
	return nil
}
