package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/AgaevDavid/filescan/internal/filestat"
	"github.com/AgaevDavid/filescan/internal/logging"
	"github.com/AgaevDavid/filescan/internal/search"
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

//nolint:funlen // Linear setup, search and output.
func logic(ctx context.Context, options Options, s streams) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = options.LogLevel
	logCfg.FilePath = options.LogFile
	logCfg.Writer = s.err

	if options.Debug {
		logCfg.Level = "debug"
	}

	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	if options.Interactive || (options.Directory == "" && isTerminal(s.in)) {
		ok, err := newPrompter(s.in, s.out).run(&options)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if !ok {
			fmt.Fprintln(s.out, "Operation cancelled.")

			return nil
		}
	}

	if options.Directory == "" {
		options.Directory = "."
	}

	if options.Pattern == "" {
		options.Pattern = search.DefaultPattern
	}

	options.Directory = filepath.Clean(options.Directory)

	enableProgress := options.Output == "table" &&
		!options.Debug &&
		isTerminal(s.err)

	engine := search.New(search.WithLogger(logger))

	collector := filestat.NewCollector()
	engine.OnFileFound(collector.Observe)

	progress := newProgress(s.err, enableProgress, options.MaxFiles)
	engine.OnFileFound(progress.observe)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(s.err, "\033[?25l")
		defer fmt.Fprint(s.err, "\033[?25h")
	}

	start := time.Now()

	paths, err := engine.Search(ctx, search.Request{
		Directory:  options.Directory,
		Pattern:    options.Pattern,
		MaxResults: options.MaxFiles,
	})

	progress.clear()

	if err != nil {
		return err
	}

	stats, err := collector.Summarize(paths, options.TopN)
	if err != nil {
		return err
	}

	stats.Elapsed = time.Since(start)
	stats.Directory = options.Directory
	stats.Pattern = options.Pattern
	stats.MaxFiles = options.MaxFiles
	stats.LimitReached = progress.cancelled ||
		(options.MaxFiles > 0 && len(paths) >= options.MaxFiles)

	logger.Info("search completed",
		"directory", stats.Directory,
		"files", stats.FileCount,
		"bytes", stats.TotalBytes,
		"elapsed", stats.Elapsed)

	switch options.Output {
	case "json":
		return PrintJSON(stats, s.out)
	default:
		return PrintTable(stats, s.out)
	}
}
