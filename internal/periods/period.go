// Package periods implements the period and recurrence calculations for
// budgets and income schedules.
//
// Everything in this package is a pure function over its inputs. Persistence
// and transport are the caller's concern.
package periods

import (
	"errors"
	"time"

	"github.com/homecents/backend/internal/types"
)

// PeriodType determines the length of a budgeting period.
type PeriodType string

const (
	PeriodWeekly    PeriodType = "weekly"
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodAnnual    PeriodType = "annual"
)

// Valid reports whether the period type is one of the known values.
func (p PeriodType) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodQuarterly || p == PeriodAnnual
}

// Period is a contiguous date range over which a budget's spending is
// measured. End is the last day included in the period.
type Period struct {
	Start types.Date `json:"start" example:"2024-03-15"` // First day of the period
	End   types.Date `json:"end" example:"2024-04-14"`   // Last day of the period
}

// Contains reports whether the date is inside the period.
func (p Period) Contains(d types.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

var (
	ErrInvalidPeriodType    = errors.New("the period type is invalid")
	ErrReferenceBeforeStart = errors.New("the reference date is before the start date")
)

// months returns the number of months a single period spans, or 0 for
// day-based period types.
func (p PeriodType) months() int {
	switch p {
	case PeriodMonthly:
		return 1
	case PeriodQuarterly:
		return 3
	case PeriodAnnual:
		return 12
	}

	return 0
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this month
	return types.NewDate(year, month+1, 0).Day()
}

// clampDay limits a day of month to the last valid day of the given month.
func clampDay(year int, month time.Month, day int) int {
	if last := daysIn(year, month); day > last {
		return last
	}

	return day
}

// addMonths adds months to a date. The day of month is clamped to the last
// valid day of the target month instead of overflowing into the next one.
func addMonths(d types.Date, months int) types.Date {
	total := d.Year()*12 + int(d.Month()) - 1 + months
	year, month := total/12, time.Month(total%12+1)

	return types.NewDate(year, month, clampDay(year, month, d.Day()))
}

// PeriodAt returns the nth period for an anchor date, starting at 0 for the
// period beginning on the anchor itself.
func PeriodAt(periodType PeriodType, anchor types.Date, n int) (Period, error) {
	if periodType == PeriodWeekly {
		start := anchor.AddDays(n * 7)
		return Period{Start: start, End: start.AddDays(6)}, nil
	}

	if !periodType.Valid() {
		return Period{}, ErrInvalidPeriodType
	}

	length := periodType.months()
	return Period{
		Start: addMonths(anchor, n*length),
		End:   addMonths(anchor, (n+1)*length).AddDays(-1),
	}, nil
}

// periodIndex returns the index of the period containing the reference date.
func periodIndex(periodType PeriodType, anchor, reference types.Date) (int, error) {
	if reference.Before(anchor) {
		return 0, ErrReferenceBeforeStart
	}

	if periodType == PeriodWeekly {
		return anchor.DaysUntil(reference) / 7, nil
	}

	if !periodType.Valid() {
		return 0, ErrInvalidPeriodType
	}

	// The month difference alone overshoots when the reference sits before
	// the anchor day of its month, so step back one period in that case.
	months := (reference.Year()-anchor.Year())*12 + int(reference.Month()) - int(anchor.Month())
	n := months / periodType.months()
	if addMonths(anchor, n*periodType.months()).After(reference) {
		n--
	}

	return n, nil
}

// Boundaries returns the period of the given type that contains the
// reference date, anchored on the anchor date.
//
// A reference date before the anchor returns ErrReferenceBeforeStart.
func Boundaries(periodType PeriodType, anchor, reference types.Date) (Period, error) {
	n, err := periodIndex(periodType, anchor, reference)
	if err != nil {
		return Period{}, err
	}

	return PeriodAt(periodType, anchor, n)
}
