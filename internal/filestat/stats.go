package filestat

import (
	"errors"
	"fmt"
	"time"

	"github.com/AgaevDavid/filescan/internal/rank"
	"github.com/AgaevDavid/filescan/internal/search"
)

// DefaultTopN is the default length of the top files listing.
const DefaultTopN = 5

// Summary holds aggregate statistics for one search.
type Summary struct {
	// Directory is the searched directory.
	Directory string `json:"directory"`
	// Pattern is the glob pattern used.
	Pattern string `json:"pattern"`
	// MaxFiles is the requested file limit (0 = unlimited).
	MaxFiles int `json:"max_files"`
	// FileCount is the number of accepted files.
	FileCount int `json:"file_count"`
	// TotalBytes is the cumulative size of all accepted files.
	TotalBytes int64 `json:"total_bytes"`
	// AverageBytes is TotalBytes divided by FileCount.
	AverageBytes float64 `json:"average_bytes"`
	// Largest is the largest accepted file, nil when nothing matched.
	Largest *search.FileRecord `json:"largest,omitempty"`
	// TopFiles contains the N largest files, largest first.
	TopFiles []search.FileRecord `json:"top_files"`
	// TopN is the number of top results requested.
	TopN int `json:"top_n"`
	// LimitReached indicates that the search stopped at MaxFiles.
	LimitReached bool `json:"limit_reached"`
	// Elapsed is the total time taken by the search.
	Elapsed time.Duration `json:"elapsed"`
}

// Collector records files announced by a search. It is not safe for
// concurrent use; searches notify observers on the calling goroutine.
type Collector struct {
	records []search.FileRecord
	index   map[string]int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		records: make([]search.FileRecord, 0),
		index:   make(map[string]int),
	}
}

// Observe records the file carried by ev. Its signature matches search.Observer.
func (c *Collector) Observe(ev *search.FoundEvent) {
	if i, ok := c.index[ev.Record.Path]; ok {
		c.records[i] = ev.Record

		return
	}

	c.index[ev.Record.Path] = len(c.records)
	c.records = append(c.records, ev.Record)
}

// Len returns the number of observed files.
func (c *Collector) Len() int {
	return len(c.records)
}

// Accepted returns the records for paths, in the order of paths. Paths that
// were never observed are reported as an error.
func (c *Collector) Accepted(paths []string) ([]search.FileRecord, error) {
	accepted := make([]search.FileRecord, 0, len(paths))

	for _, p := range paths {
		i, ok := c.index[p]
		if !ok {
			return nil, fmt.Errorf("no metadata recorded for %q", p)
		}

		accepted = append(accepted, c.records[i])
	}

	return accepted, nil
}

// Summarize produces statistics over the accepted paths. topN <= 0 selects
// DefaultTopN.
func (c *Collector) Summarize(paths []string, topN int) (*Summary, error) {
	records, err := c.Accepted(paths)
	if err != nil {
		return nil, err
	}

	return Summarize(records, topN)
}

// Summarize computes statistics over records. An empty slice yields a zero
// Summary without a largest file.
func Summarize(records []search.FileRecord, topN int) (*Summary, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	stats := &Summary{
		FileCount: len(records),
		TopFiles:  make([]search.FileRecord, 0),
		TopN:      topN,
	}

	for _, r := range records {
		stats.TotalBytes += r.Size
	}

	if stats.FileCount > 0 {
		stats.AverageBytes = float64(stats.TotalBytes) / float64(stats.FileCount)
	}

	largest, err := rank.MaxBySlice(records, bySize)

	switch {
	case errors.Is(err, rank.ErrEmptyCollection):
		return stats, nil
	case err != nil:
		return nil, fmt.Errorf("finding largest file: %w", err)
	}

	stats.Largest = &largest
	stats.TopFiles = rank.TopBy(records, topN, bySize)

	return stats, nil
}

func bySize(r search.FileRecord) float64 {
	return float64(r.Size)
}
