package timecard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Afrawles/timecard/internal/calendar"
	"github.com/Afrawles/timecard/internal/config"
	"github.com/Afrawles/timecard/internal/jira"
	"github.com/Afrawles/timecard/internal/report"
)

type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Source report.WorklogSource
}

// New wires the application: JSON logs on stderr (the report owns
// stdout) and a Jira-backed worklog source.
func New(cfg *config.Config) *Application {
	level := slog.LevelWarn
	if cfg.Report.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	source := jira.NewSource(
		cfg.Jira.BaseURL,
		cfg.Jira.Email,
		cfg.Jira.APIToken,
		cfg.Jira.Timeout,
		cfg.Jira.PageSize,
		logger,
	)

	return &Application{
		Config: cfg,
		Logger: logger,
		Source: source,
	}
}

// Run produces the monthly report on out. The first failure aborts the
// run; there is no partial output.
func (app *Application) Run(ctx context.Context, out io.Writer) error {
	cfg := app.Config

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %s: %w", cfg.Report.Timezone, err)
	}

	window, err := calendar.ResolveMonthWindow(cfg.Report.Month, loc, time.Now())
	if err != nil {
		return err
	}
	prefixes := report.NormalizePrefixes(cfg.Report.LabelPrefixes)

	me, err := app.Source.Myself(ctx)
	if err != nil {
		return err
	}
	app.Logger.Info("authenticated", "user", me.DisplayName, "accountId", me.AccountID)

	agg := report.NewAggregator(app.Source, app.Logger)
	total, totals, err := agg.Aggregate(ctx, window, prefixes, me.AccountID)
	if err != nil {
		return err
	}
	app.Logger.Info("aggregation done", "issues", len(totals), "totalSeconds", total)

	rep := report.Build(me, window, prefixes, cfg.Report.HoursPerWorkday, total, totals)
	if err := rep.Render(out); err != nil {
		return err
	}

	if cfg.Report.XLSXDir != "" {
		if err := os.MkdirAll(cfg.Report.XLSXDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		file, err := report.NewExcelExporter(cfg.Report.XLSXDir).Export(rep)
		if err != nil {
			return err
		}
		app.Logger.Info("workbook exported", "file", file)
	}

	return nil
}
