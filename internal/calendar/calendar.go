package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month designator is not valid YYYY-MM.
var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

// MonthWindow is the half-open reporting window for one calendar month:
// [Start, EndExclusive) in the configured timezone. StartDate and
// EndDateExclusive carry the same boundaries at date granularity for
// query languages that cannot express instants.
type MonthWindow struct {
	Label            string // "YYYY-MM"
	Start            time.Time
	EndExclusive     time.Time
	StartDate        time.Time // midnight, date use only
	EndDateExclusive time.Time
	Location         *time.Location
}

// ResolveMonthWindow builds the window for the given designator
// ("YYYY-MM"), or for now's month in loc when the designator is empty.
func ResolveMonthWindow(designator string, loc *time.Location, now time.Time) (MonthWindow, error) {
	var year int
	var month time.Month

	if designator != "" {
		// Integer year and month, not a fixed-width layout: "2024-2"
		// is as valid as "2024-02". The label below normalizes.
		y, m, err := splitDesignator(designator)
		if err != nil {
			return MonthWindow{}, err
		}
		year, month = y, m
	} else {
		local := now.In(loc)
		year, month = local.Year(), local.Month()
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return MonthWindow{
		Label:            fmt.Sprintf("%04d-%02d", year, month),
		Start:            start,
		EndExclusive:     end,
		StartDate:        start,
		EndDateExclusive: end,
		Location:         loc,
	}, nil
}

func splitDesignator(designator string) (int, time.Month, error) {
	parts := strings.Split(designator, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, designator)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, designator)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, designator)
	}
	return year, time.Month(month), nil
}

// LastDate is the inclusive end date of the window, for date-granular
// query boundaries.
func (w MonthWindow) LastDate() time.Time {
	return w.EndDateExclusive.AddDate(0, 0, -1)
}

// Contains reports whether t falls inside the half-open window. The
// instant is normalized to the window's timezone before comparison.
func (w MonthWindow) Contains(t time.Time) bool {
	t = t.In(w.Location)
	return !t.Before(w.Start) && t.Before(w.EndExclusive)
}

// CountBusinessDays counts Monday-to-Friday dates in the half-open date
// range [start, endExclusive). No holiday calendar is applied.
func CountBusinessDays(start, endExclusive time.Time) int {
	count := 0
	for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// Capacity returns the expected working seconds for the window given
// an assumed number of working hours per business day.
func (w MonthWindow) Capacity(hoursPerWorkday int) int {
	return CountBusinessDays(w.StartDate, w.EndDateExclusive) * hoursPerWorkday * 3600
}
