package periods

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Schedule carries the income schedule fields the projection needs.
type Schedule struct {
	ID           uuid.UUID
	Frequency    Frequency
	Semimonthly  SemimonthlyDays
	NextExpected types.Date
	End          types.Date // Zero value means the schedule never ends
	Amount       decimal.Decimal
}

// Occurrence is a single expected payment date for an income schedule.
type Occurrence struct {
	ScheduleID uuid.UUID       `json:"scheduleId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the schedule the occurrence belongs to
	Date       types.Date      `json:"date" example:"2024-07-15"`                                 // The expected payment date
	Amount     decimal.Decimal `json:"amount" example:"2317.34"`                                  // The expected payment amount
	DaysUntil  int             `json:"daysUntil" example:"14"`                                    // Days from the reference date, negative for overdue payments
}

// Project enumerates the occurrences of all schedules that fall within
// horizonDays of the reference date.
//
// A schedule whose next expected date lies in the past has not been advanced
// yet. That date is still reported, with a negative DaysUntil, so callers can
// surface the overdue payment. Occurrences on or after a schedule's end date
// are never reported.
//
// The result is sorted by date, ties broken by schedule ID.
func Project(schedules []Schedule, reference types.Date, horizonDays int) ([]Occurrence, error) {
	horizon := reference.AddDays(horizonDays)

	occurrences := make([]Occurrence, 0)
	for _, schedule := range schedules {
		date := schedule.NextExpected
		for !date.After(horizon) {
			if !schedule.End.IsZero() && !date.Before(schedule.End) {
				break
			}

			if !date.Before(reference) || date.Equal(schedule.NextExpected) {
				occurrences = append(occurrences, Occurrence{
					ScheduleID: schedule.ID,
					Date:       date,
					Amount:     schedule.Amount,
					DaysUntil:  reference.DaysUntil(date),
				})
			}

			next, err := Advance(schedule.Frequency, schedule.Semimonthly, date)
			if err != nil {
				return nil, err
			}
			date = next
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}

		return bytes.Compare(occurrences[i].ScheduleID[:], occurrences[j].ScheduleID[:]) < 0
	})

	return occurrences, nil
}
