package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Afrawles/timecard/internal/calendar"
)

// IssueTotal is the matched time accumulated on one issue within the
// reporting window.
type IssueTotal struct {
	Key     string
	Summary string
	Seconds int
}

// Aggregator drives a WorklogSource and accumulates per-issue time for
// one user. It is single-pass and sequential; the first source error
// aborts the run.
type Aggregator struct {
	Source WorklogSource
	Logger *slog.Logger
}

func NewAggregator(source WorklogSource, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{Source: source, Logger: logger}
}

// buildJQL selects issues where the current user logged time on any
// date of the window. The query language is date-granular, so the
// upper bound is the inclusive last date; instant-precise inclusion is
// enforced later per worklog entry. Keep both boundaries as they are:
// collapsing them changes which month-boundary entries are counted.
func buildJQL(window calendar.MonthWindow) string {
	return fmt.Sprintf(
		`worklogAuthor = currentUser() AND worklogDate >= %q AND worklogDate <= %q ORDER BY updated DESC`,
		window.StartDate.Format("2006-01-02"),
		window.LastDate().Format("2006-01-02"),
	)
}

// Aggregate returns the total matched seconds and one IssueTotal per
// issue with nonzero matched time, in source encounter order.
func (a *Aggregator) Aggregate(ctx context.Context, window calendar.MonthWindow, prefixes []string, accountID string) (int, []IssueTotal, error) {
	jql := buildJQL(window)
	a.Logger.Info("searching issues", "jql", jql)

	total := 0
	var totals []IssueTotal

	for issue, err := range a.Source.SearchIssues(ctx, jql) {
		if err != nil {
			return 0, nil, fmt.Errorf("search issues: %w", err)
		}

		if !MatchesPrefixes(issue.Labels, prefixes) {
			a.Logger.Info("skipping issue, no label match", "issue", issue.Key, "labels", issue.Labels)
			continue
		}

		seconds, err := a.sumWorklogs(ctx, issue.Key, window, accountID)
		if err != nil {
			return 0, nil, err
		}
		if seconds == 0 {
			a.Logger.Info("skipping issue, no time in window", "issue", issue.Key)
			continue
		}

		total += seconds
		totals = append(totals, IssueTotal{Key: issue.Key, Summary: issue.Summary, Seconds: seconds})
	}

	return total, totals, nil
}

func (a *Aggregator) sumWorklogs(ctx context.Context, issueKey string, window calendar.MonthWindow, accountID string) (int, error) {
	seconds := 0
	for wl, err := range a.Source.Worklogs(ctx, issueKey) {
		if err != nil {
			return 0, fmt.Errorf("worklogs for %s: %w", issueKey, err)
		}
		if wl.AuthorID != accountID {
			continue
		}
		if !window.Contains(wl.Started) {
			continue
		}
		seconds += wl.Seconds
	}
	return seconds, nil
}
