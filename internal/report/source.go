package report

import (
	"context"
	"iter"
	"time"
)

// User identifies the account the report is generated for.
type User struct {
	AccountID   string
	DisplayName string
}

// Issue is a work item as returned by the tracker. Read-only to this
// package.
type Issue struct {
	Key     string
	Summary string
	Labels  []string
}

// Worklog is one recorded time span on an issue. Started keeps the
// offset the tracker reported; callers normalize before comparing.
type Worklog struct {
	AuthorID string
	Started  time.Time
	Seconds  int
}

// WorklogSource is the tracker the aggregator pulls from. Sequences are
// lazy and restartable; implementations paginate transparently and
// surface transport failures through the error side of the sequence,
// at which point iteration stops.
type WorklogSource interface {
	Myself(ctx context.Context) (User, error)
	SearchIssues(ctx context.Context, jql string) iter.Seq2[Issue, error]
	Worklogs(ctx context.Context, issueKey string) iter.Seq2[Worklog, error]
}
