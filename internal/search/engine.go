package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPattern matches every file name.
const DefaultPattern = "*"

// readBatch is the number of directory entries requested per ReadDir call.
const readBatch = 128

// Request describes a single search.
type Request struct {
	// Directory is the directory whose entries are searched.
	Directory string
	// Pattern is a path/filepath.Match pattern applied to entry names.
	// Empty means DefaultPattern.
	Pattern string
	// MaxResults caps the number of accepted files (0 = unlimited).
	MaxResults int
}

type subscription struct {
	id uint64
	fn Observer
}

// Engine searches directories and notifies observers about every matching
// file. The zero value is ready to use.
type Engine struct {
	mu        sync.Mutex
	observers []subscription
	nextID    uint64
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// OnFileFound registers fn to be called for every matching file, after the
// observers registered before it. The returned function unregisters fn.
func (e *Engine) OnFileFound(fn Observer) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.observers = append(e.observers, subscription{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		for i, sub := range e.observers {
			if sub.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)

				return
			}
		}
	}
}

func (e *Engine) log() *slog.Logger {
	if e.logger == nil {
		return slog.Default()
	}

	return e.logger
}

func (e *Engine) snapshot() []Observer {
	e.mu.Lock()
	defer e.mu.Unlock()

	fns := make([]Observer, 0, len(e.observers))
	for _, sub := range e.observers {
		if sub.fn != nil {
			fns = append(fns, sub.fn)
		}
	}

	return fns
}

// dispatch calls every observer with ev and reports whether any of them
// requested cancellation.
func dispatch(observers []Observer, ev *FoundEvent) bool {
	for _, fn := range observers {
		fn(ev)
	}

	return ev.Cancel
}

// Search lists req.Directory and returns the paths of the regular entries
// whose names match req.Pattern, in the order the operating system returns
// them. Directories are skipped and never descended into.
//
// Pattern syntax and matching rules are those of path/filepath.Match: '*'
// matches any run of non-separator characters, '?' a single one, and
// '[...]' a character class. Matching is case-sensitive wherever
// filepath.Match is.
//
// Every match is first announced to the observers registered at the time
// Search is called. If one of them sets Cancel the search stops and that file
// is left out. Otherwise the file is accepted, and the search stops once
// req.MaxResults files have been accepted.
//
// A missing directory yields an error matching ErrDirectoryNotFound. Failing
// to read the metadata of a single entry aborts the whole search with a
// *FilesystemError. The search also stops when ctx is done.
//
//nolint:funlen,gocognit // Single linear enumeration loop.
func (e *Engine) Search(ctx context.Context, req Request) ([]string, error) {
	log := e.log()

	if req.Pattern == "" {
		req.Pattern = DefaultPattern
	}

	if req.MaxResults < 0 {
		return nil, fmt.Errorf("%w: max results cannot be negative: %d", ErrInvalidArgument, req.MaxResults)
	}

	// filepath.Match only reports a malformed pattern while matching, and
	// may stop before reaching the bad part. Entries are checked again below.
	if _, err := filepath.Match(req.Pattern, ""); err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidArgument, req.Pattern, err)
	}

	if info, err := os.Stat(req.Directory); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DirectoryNotFoundError{Path: req.Directory}
		}

		return nil, &FilesystemError{Op: "stat", Path: req.Directory, Err: err}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, req.Directory)
	}

	dir, err := os.Open(req.Directory)
	if err != nil {
		return nil, &FilesystemError{Op: "open", Path: req.Directory, Err: err}
	}
	defer dir.Close()

	observers := e.snapshot()
	result := make([]string, 0)
	count := 0

	log.Debug("search started",
		"directory", req.Directory, "pattern", req.Pattern, "max_results", req.MaxResults, "observers", len(observers))

	for {
		entries, readErr := dir.ReadDir(readBatch)

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("searching %s: %w", req.Directory, err)
			}

			if entry.IsDir() {
				continue
			}

			ok, err := filepath.Match(req.Pattern, entry.Name())
			if err != nil {
				return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidArgument, req.Pattern, err)
			}

			if !ok {
				continue
			}

			path := filepath.Join(req.Directory, entry.Name())

			info, err := entry.Info()
			if err != nil {
				return nil, &FilesystemError{Op: "stat", Path: path, Err: err}
			}

			ev := &FoundEvent{Record: newRecord(path, info)}
			if dispatch(observers, ev) {
				log.Debug("search cancelled by observer", "path", path, "accepted", count)

				return result, nil
			}

			result = append(result, path)
			count++

			log.Debug("file accepted", "path", path, "size", info.Size())

			if req.MaxResults > 0 && count >= req.MaxResults {
				log.Debug("result limit reached", "limit", req.MaxResults)

				return result, nil
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, &FilesystemError{Op: "readdir", Path: req.Directory, Err: readErr}
		}
	}

	log.Debug("search finished", "accepted", count)

	return result, nil
}
