package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Afrawles/timecard/internal/calendar"
)

// Row is one ranked line of the report.
type Row struct {
	Rank       int
	Key        string
	Summary    string
	Seconds    int
	Cumulative int
}

// Report is the assembled monthly utilization report, ready to render.
type Report struct {
	User            User
	Window          calendar.MonthWindow
	Prefixes        []string
	BusinessDays    int
	HoursPerDay     int
	CapacitySeconds int
	TotalSeconds    int
	Rows            []Row
}

// Build ranks the issue totals by time descending (ties keep encounter
// order) and computes cumulative running totals and the capacity
// denominator.
func Build(user User, window calendar.MonthWindow, prefixes []string, hoursPerDay int, total int, totals []IssueTotal) Report {
	ranked := make([]IssueTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Seconds > ranked[j].Seconds
	})

	rows := make([]Row, 0, len(ranked))
	running := 0
	for i, it := range ranked {
		running += it.Seconds
		rows = append(rows, Row{
			Rank:       i + 1,
			Key:        it.Key,
			Summary:    it.Summary,
			Seconds:    it.Seconds,
			Cumulative: running,
		})
	}

	businessDays := calendar.CountBusinessDays(window.StartDate, window.EndDateExclusive)

	return Report{
		User:            user,
		Window:          window,
		Prefixes:        prefixes,
		BusinessDays:    businessDays,
		HoursPerDay:     hoursPerDay,
		CapacitySeconds: businessDays * hoursPerDay * 3600,
		TotalSeconds:    total,
		Rows:            rows,
	}
}

// CapacityPercent is the share of the month's capacity covered by the
// matched total. Zero capacity yields 0 rather than an error.
func (r Report) CapacityPercent() float64 {
	if r.CapacitySeconds == 0 {
		return 0
	}
	return 100 * float64(r.TotalSeconds) / float64(r.CapacitySeconds)
}

// FormatHMS renders seconds as H:MM:SS with unpadded hours.
func FormatHMS(seconds int) string {
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatPercent renders a percentage to two decimal places.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Render writes the plain-text report.
func (r Report) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "User: %s\n", r.User.DisplayName)
	fmt.Fprintf(&b, "Month (%s): %s to %s  [%s]\n",
		r.Window.Location,
		r.Window.StartDate.Format("2006-01-02"),
		r.Window.LastDate().Format("2006-01-02"),
		r.Window.Label,
	)
	fmt.Fprintf(&b, "Label prefixes: %s*\n", strings.Join(r.Prefixes, ", "))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Business days in month: %d  | Assumed hours/day: %d  | Capacity: %s\n",
		r.BusinessDays, r.HoursPerDay, FormatHMS(r.CapacitySeconds))
	fmt.Fprintf(&b, "TOTAL on matching tickets: %s (%d seconds)  | %% of month capacity: %s\n",
		FormatHMS(r.TotalSeconds), r.TotalSeconds, FormatPercent(r.CapacityPercent()))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-3s %-15s %10s %12s | Summary\n", "#", "Issue", "Time", "Cumulated")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%-3d %-15s %10s %12s | %s\n",
			row.Rank, row.Key, FormatHMS(row.Seconds), FormatHMS(row.Cumulative), row.Summary)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
