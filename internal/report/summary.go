package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ignite/email-validator/internal/validator"
)

// StatusCount is one line of the aggregate summary.
type StatusCount struct {
	Status  string
	Count   int
	Percent float64
}

// Summary aggregates the statuses of a finished run.
type Summary struct {
	Total  int
	Counts []StatusCount
}

// BuildSummary tallies results per status. Statuses are ordered by
// descending count; ties keep the order in which a status first appeared.
func BuildSummary(results []validator.Result) Summary {
	counts := make(map[string]int)
	var firstSeen []string
	for _, r := range results {
		if _, ok := counts[r.Status]; !ok {
			firstSeen = append(firstSeen, r.Status)
		}
		counts[r.Status]++
	}

	s := Summary{Total: len(results)}
	for _, status := range firstSeen {
		n := counts[status]
		s.Counts = append(s.Counts, StatusCount{
			Status:  status,
			Count:   n,
			Percent: float64(n) * 100 / float64(s.Total),
		})
	}
	sort.SliceStable(s.Counts, func(i, j int) bool {
		return s.Counts[i].Count > s.Counts[j].Count
	})
	return s
}

// Render writes the summary banner block.
func (s Summary) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "Validation Summary")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total emails processed: %s\n", humanize.Comma(int64(s.Total)))
	for _, c := range s.Counts {
		// Pad before coloring so escape codes do not skew the columns.
		label := statusColor(c.Status).Sprintf("%-30s", c.Status)
		fmt.Fprintf(w, "%s %6d (%5.1f%%)\n", label, c.Count, c.Percent)
	}
}

// RenderVerbose writes the per-address detail blocks.
func RenderVerbose(w io.Writer, results []validator.Result) {
	for _, r := range results {
		fmt.Fprintln(w, strings.Repeat("-", 60))
		fmt.Fprintf(w, "Email: %s\n", r.Email)
		fmt.Fprintf(w, "  Valid format   : %v\n", r.ValidFormat)
		fmt.Fprintf(w, "  Disposable     : %v\n", r.Disposable)
		fmt.Fprintf(w, "  MX valid       : %v\n", r.MXValid)
		fmt.Fprintf(w, "  Status         : %s\n", statusColor(r.Status).Sprint(r.Status))
	}
}

func statusColor(status string) *color.Color {
	switch status {
	case validator.StatusValid:
		return color.New(color.FgGreen)
	case validator.StatusDisposable:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
