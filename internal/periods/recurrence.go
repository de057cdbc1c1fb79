package periods

import (
	"errors"

	"github.com/homecents/backend/internal/types"
)

// Frequency determines how often an income schedule recurs.
type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencySemimonthly Frequency = "semimonthly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencyAnnual      Frequency = "annual"
)

// Valid reports whether the frequency is one of the known values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencySemimonthly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}

	return false
}

var (
	ErrInvalidFrequency         = errors.New("the frequency is invalid")
	ErrSemimonthlyDayOutOfRange = errors.New("semimonthly days must be between 1 and 31")
	ErrSemimonthlyDaysEqual     = errors.New("the two semimonthly days must be different")
)

// SemimonthlyDays are the two anchor days of month for a semimonthly
// schedule, for example the 1st and the 15th. Days beyond the length of a
// short month are clamped to its last day.
type SemimonthlyDays struct {
	Day1 int
	Day2 int
}

// Validate checks the anchor day configuration. It is run when a schedule is
// created or changed, not on every advance.
func (s SemimonthlyDays) Validate() error {
	if s.Day1 < 1 || s.Day1 > 31 || s.Day2 < 1 || s.Day2 > 31 {
		return ErrSemimonthlyDayOutOfRange
	}

	if s.Day1 == s.Day2 {
		return ErrSemimonthlyDaysEqual
	}

	return nil
}

// ordered returns the anchor days in ascending order.
func (s SemimonthlyDays) ordered() (int, int) {
	if s.Day1 > s.Day2 {
		return s.Day2, s.Day1
	}

	return s.Day1, s.Day2
}

// Advance returns the occurrence date following current under the given
// frequency. The semimonthly parameter is only used for
// FrequencySemimonthly.
//
// Month-based frequencies clamp the day of month to the last valid day of
// the target month, so a schedule on the 31st pays out on February 28th.
func Advance(frequency Frequency, semimonthly SemimonthlyDays, current types.Date) (types.Date, error) {
	switch frequency {
	case FrequencyWeekly:
		return current.AddDays(7), nil
	case FrequencyBiweekly:
		return current.AddDays(14), nil
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return addMonths(current, frequency.months()), nil
	case FrequencySemimonthly:
		return advanceSemimonthly(semimonthly, current)
	}

	return types.Date{}, ErrInvalidFrequency
}

// months returns the number of months between occurrences for month-based
// frequencies.
func (f Frequency) months() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyAnnual:
		return 12
	}

	return 0
}

// advanceSemimonthly moves to the next of the two anchor days: the later
// anchor if it still falls after current in the same month, the earlier
// anchor of the next month otherwise.
func advanceSemimonthly(days SemimonthlyDays, current types.Date) (types.Date, error) {
	if err := days.Validate(); err != nil {
		return types.Date{}, err
	}

	lo, hi := days.ordered()
	year, month := current.Year(), current.Month()

	for _, day := range []int{lo, hi} {
		candidate := types.NewDate(year, month, clampDay(year, month, day))
		if candidate.After(current) {
			return candidate, nil
		}
	}

	next := addMonths(types.NewDate(year, month, 1), 1)
	return types.NewDate(next.Year(), next.Month(), clampDay(next.Year(), next.Month(), lo)), nil
}
