package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/AgaevDavid/filescan/internal/search"
)

// progress is a search observer that keeps a status line on a terminal and
// cancels the search once more than limit files have been announced.
type progress struct {
	w         io.Writer
	enabled   bool
	limit     int
	files     int
	bytes     int64
	cancelled bool
}

func newProgress(w io.Writer, enabled bool, limit int) *progress {
	return &progress{w: w, enabled: enabled, limit: limit}
}

func (p *progress) observe(ev *search.FoundEvent) {
	if p.limit > 0 && p.files >= p.limit {
		ev.Cancel = true
		p.cancelled = true

		return
	}

	p.files++
	p.bytes += ev.Record.Size

	if p.enabled {
		msg := fmt.Sprintf("Scanning… %d files, %s",
			p.files, humanize.IBytes(uint64(p.bytes))) //nolint:gosec // Sizes are never negative
		fmt.Fprintf(p.w, "\r\033[2K%s\r", msg)
	}
}

// clear removes the status line.
func (p *progress) clear() {
	if p.enabled {
		fmt.Fprint(p.w, "\r\033[2K\r")
	}
}
