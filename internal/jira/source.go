package jira

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/Afrawles/timecard/internal/report"
)

// Accepted layouts for the worklog "started" field. Jira Cloud emits
// the first; some servers drop the milliseconds.
var startedLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// Source adapts the raw client to the report.WorklogSource contract.
type Source struct {
	Client *Client
}

var _ report.WorklogSource = (*Source)(nil)

func NewSource(baseURL, email, apiToken string, timeout time.Duration, pageSize int, logger *slog.Logger) *Source {
	return &Source{
		Client: NewClient(baseURL, email, apiToken, timeout, pageSize, logger),
	}
}

func (s *Source) Myself(ctx context.Context) (report.User, error) {
	me, err := s.Client.myself(ctx)
	if err != nil {
		return report.User{}, err
	}
	return report.User{AccountID: me.AccountID, DisplayName: me.DisplayName}, nil
}

// SearchIssues walks the offset-paginated search endpoint until the
// server-reported total is reached. The sequence is restartable; each
// range-over starts from the first page.
func (s *Source) SearchIssues(ctx context.Context, jql string) iter.Seq2[report.Issue, error] {
	return func(yield func(report.Issue, error) bool) {
		startAt := 0
		for {
			page, err := s.Client.searchPage(ctx, jql, startAt)
			if err != nil {
				yield(report.Issue{}, err)
				return
			}
			for _, issue := range page.Issues {
				out := report.Issue{
					Key:     issue.Key,
					Summary: issue.Fields.Summary,
					Labels:  issue.Fields.Labels,
				}
				if !yield(out, nil) {
					return
				}
			}
			startAt += len(page.Issues)
			if startAt >= page.Total || len(page.Issues) == 0 {
				return
			}
		}
	}
}

func (s *Source) Worklogs(ctx context.Context, issueKey string) iter.Seq2[report.Worklog, error] {
	return func(yield func(report.Worklog, error) bool) {
		startAt := 0
		for {
			page, err := s.Client.worklogPage(ctx, issueKey, startAt)
			if err != nil {
				yield(report.Worklog{}, err)
				return
			}
			for _, wl := range page.Worklogs {
				started, err := parseStarted(wl.Started)
				if err != nil {
					yield(report.Worklog{}, err)
					return
				}
				out := report.Worklog{
					AuthorID: wl.Author.AccountID,
					Started:  started,
					Seconds:  wl.TimeSpentSeconds,
				}
				if !yield(out, nil) {
					return
				}
			}
			startAt += len(page.Worklogs)
			if startAt >= page.Total || len(page.Worklogs) == 0 {
				return
			}
		}
	}
}

func parseStarted(value string) (time.Time, error) {
	for _, layout := range startedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TimestampError{Value: value}
}
