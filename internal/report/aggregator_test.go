package report

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/Afrawles/timecard/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	user     User
	issues   []Issue
	worklogs map[string][]Worklog

	searchErr  error
	worklogErr error

	lastJQL string
}

func (f *fakeSource) Myself(context.Context) (User, error) {
	return f.user, nil
}

func (f *fakeSource) SearchIssues(_ context.Context, jql string) iter.Seq2[Issue, error] {
	f.lastJQL = jql
	return func(yield func(Issue, error) bool) {
		if f.searchErr != nil {
			yield(Issue{}, f.searchErr)
			return
		}
		for _, issue := range f.issues {
			if !yield(issue, nil) {
				return
			}
		}
	}
}

func (f *fakeSource) Worklogs(_ context.Context, key string) iter.Seq2[Worklog, error] {
	return func(yield func(Worklog, error) bool) {
		if f.worklogErr != nil {
			yield(Worklog{}, f.worklogErr)
			return
		}
		for _, wl := range f.worklogs[key] {
			if !yield(wl, nil) {
				return
			}
		}
	}
}

func testWindow(t *testing.T) calendar.MonthWindow {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Luxembourg")
	require.NoError(t, err)
	w, err := calendar.ResolveMonthWindow("2024-02", loc, time.Now())
	require.NoError(t, err)
	return w
}

func TestAggregate_FiltersAndSums(t *testing.T) {
	w := testWindow(t)
	inWindow := w.Start.Add(48 * time.Hour)

	src := &fakeSource{
		user: User{AccountID: "self", DisplayName: "Self"},
		issues: []Issue{
			{Key: "A", Summary: "first", Labels: []string{"proj-x"}},
			{Key: "B", Summary: "second", Labels: []string{"other"}},
		},
		worklogs: map[string][]Worklog{
			"A": {
				{AuthorID: "self", Started: inWindow, Seconds: 1000},
				{AuthorID: "self", Started: inWindow.Add(time.Hour), Seconds: 2000},
			},
			"B": {
				{AuthorID: "self", Started: inWindow, Seconds: 5000},
			},
		},
	}

	agg := NewAggregator(src, nil)
	total, totals, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)

	assert.Equal(t, 3000, total)
	require.Len(t, totals, 1)
	assert.Equal(t, IssueTotal{Key: "A", Summary: "first", Seconds: 3000}, totals[0])
}

func TestAggregate_SkipsOtherAuthors(t *testing.T) {
	w := testWindow(t)
	src := &fakeSource{
		issues: []Issue{{Key: "A", Labels: []string{"proj-x"}}},
		worklogs: map[string][]Worklog{
			"A": {
				{AuthorID: "someone-else", Started: w.Start, Seconds: 4000},
				{AuthorID: "self", Started: w.Start, Seconds: 600},
			},
		},
	}

	agg := NewAggregator(src, nil)
	total, totals, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)

	assert.Equal(t, 600, total)
	require.Len(t, totals, 1)
}

func TestAggregate_HalfOpenWindow(t *testing.T) {
	w := testWindow(t)
	src := &fakeSource{
		issues: []Issue{{Key: "A", Labels: []string{"proj-x"}}},
		worklogs: map[string][]Worklog{
			"A": {
				// Window start is in, exact window end and anything
				// before the start are out, last second is in.
				{AuthorID: "self", Started: w.Start, Seconds: 100},
				{AuthorID: "self", Started: w.EndExclusive, Seconds: 200},
				{AuthorID: "self", Started: w.Start.Add(-time.Second), Seconds: 400},
				{AuthorID: "self", Started: w.EndExclusive.Add(-time.Second), Seconds: 800},
			},
		},
	}

	agg := NewAggregator(src, nil)
	total, _, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)
	assert.Equal(t, 900, total)
}

func TestAggregate_DropsZeroTimeIssues(t *testing.T) {
	w := testWindow(t)
	src := &fakeSource{
		issues: []Issue{{Key: "A", Labels: []string{"proj-x"}}},
		worklogs: map[string][]Worklog{
			"A": {{AuthorID: "self", Started: w.EndExclusive, Seconds: 100}},
		},
	}

	agg := NewAggregator(src, nil)
	total, totals, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, totals)
}

func TestAggregate_EmptyResultIsNotAnError(t *testing.T) {
	w := testWindow(t)
	agg := NewAggregator(&fakeSource{}, nil)

	total, totals, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, totals)
}

func TestAggregate_PropagatesSourceErrors(t *testing.T) {
	w := testWindow(t)
	boom := errors.New("boom")

	agg := NewAggregator(&fakeSource{searchErr: boom}, nil)
	_, _, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	assert.ErrorIs(t, err, boom)

	src := &fakeSource{
		issues:     []Issue{{Key: "A", Labels: []string{"proj-x"}}},
		worklogErr: boom,
	}
	_, _, err = NewAggregator(src, nil).Aggregate(context.Background(), w, []string{"proj"}, "self")
	assert.ErrorIs(t, err, boom)
}

func TestAggregate_Idempotent(t *testing.T) {
	w := testWindow(t)
	src := &fakeSource{
		issues: []Issue{
			{Key: "A", Summary: "a", Labels: []string{"proj-a"}},
			{Key: "B", Summary: "b", Labels: []string{"proj-b"}},
		},
		worklogs: map[string][]Worklog{
			"A": {{AuthorID: "self", Started: w.Start, Seconds: 300}},
			"B": {{AuthorID: "self", Started: w.Start, Seconds: 300}},
		},
	}

	agg := NewAggregator(src, nil)
	total1, totals1, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)
	total2, totals2, err := agg.Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)

	assert.Equal(t, total1, total2)
	assert.Equal(t, totals1, totals2)
}

func TestBuildJQL_DateBoundaries(t *testing.T) {
	w := testWindow(t)
	src := &fakeSource{}

	_, _, err := NewAggregator(src, nil).Aggregate(context.Background(), w, []string{"proj"}, "self")
	require.NoError(t, err)

	assert.Equal(t,
		`worklogAuthor = currentUser() AND worklogDate >= "2024-02-01" AND worklogDate <= "2024-02-29" ORDER BY updated DESC`,
		src.lastJQL)
}
