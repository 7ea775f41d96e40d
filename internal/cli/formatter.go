package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/AgaevDavid/filescan/internal/filestat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// TimeLayout is used for file timestamps in table output.
	TimeLayout = "2006-01-02 15:04"
)

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *filestat.Summary, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// size renders n bytes as "1.2 KiB (1,234 bytes)".
func size(n int64) string {
	return fmt.Sprintf("%s (%s bytes)",
		humanize.IBytes(uint64(n)), humanize.Comma(n)) //nolint:gosec // Sizes are never negative
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return 100.0 * float64(part) / float64(total)
}

// PrintTable outputs statistics in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(stats *filestat.Summary, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	limit := "unlimited"
	if stats.MaxFiles > 0 {
		limit = humanize.Comma(int64(stats.MaxFiles))
	}

	fmt.Fprintln(w, "\nSearch settings:\t\t")
	fmt.Fprintf(w, "  Directory:\t%s\n", stats.Directory)
	fmt.Fprintf(w, "  Pattern:\t%s\n", stats.Pattern)
	fmt.Fprintf(w, "  File limit:\t%s\n", limit)

	if stats.FileCount == 0 || stats.Largest == nil {
		fmt.Fprintln(w, "\nNo files matched the search criteria.\t\t")
		fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

		return w.Flush()
	}

	largest := stats.Largest

	fmt.Fprintln(w, "\nLargest file:\t\t")
	fmt.Fprintf(w, "  Name:\t%s\n", largest.Name)
	fmt.Fprintf(w, "  Path:\t%s\n", largest.Path)
	fmt.Fprintf(w, "  Size:\t%s\n", size(largest.Size))
	fmt.Fprintf(w, "  Created:\t%s\n", largest.CreatedAt.Format(TimeLayout))
	fmt.Fprintf(w, "  Modified:\t%s\n", largest.ModifiedAt.Format(TimeLayout))

	if stats.FileCount > 1 {
		fmt.Fprintf(w, "\nTop %d files:\t\t\n", len(stats.TopFiles))

		for i, f := range stats.TopFiles {
			fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
				i+1, f.Name, humanize.IBytes(uint64(f.Size)), percent(f.Size, stats.TotalBytes)) //nolint:gosec // Sizes are never negative
		}
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", stats.FileCount)
	fmt.Fprintf(w, "Total size:\t%s\n", size(stats.TotalBytes))
	fmt.Fprintf(w, "Average size:\t%s\n", size(int64(math.Round(stats.AverageBytes))))

	if stats.LimitReached {
		fmt.Fprintf(w, "File limit:\treached after %d files\n", stats.FileCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}
