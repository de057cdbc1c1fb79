package periods

import (
	"errors"

	"github.com/google/uuid"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
)

var ErrRolloverNotAllowed = errors.New("rollover is not enabled for this budget")

// SpendingLookup returns the total spending attributed to a set of categories
// within the closed date range [from, to].
type SpendingLookup func(categoryIDs []uuid.UUID, from, to types.Date) (decimal.Decimal, error)

// RolloverConfig carries the budget fields the rollover calculation needs.
type RolloverConfig struct {
	PeriodType    PeriodType
	StartDate     types.Date
	Amount        decimal.Decimal
	AllowRollover bool
	CategoryIDs   []uuid.UUID
}

// AccumulateRollover recomputes the rollover for a budget from scratch: it
// walks every complete period between the budget's start date and the period
// containing the reference date and sums up the unspent amounts.
//
// Overspent periods contribute nothing, they never reduce the rollover of
// other periods. A budget without linked categories has no spending to
// attribute, so each elapsed period rolls over the full amount.
//
// The result replaces any previously stored rollover. Recomputing from
// scratch keeps the stored value correct after retroactive transaction edits
// or a changed start date.
func AccumulateRollover(cfg RolloverConfig, reference types.Date, lookup SpendingLookup) (decimal.Decimal, error) {
	if !cfg.AllowRollover {
		return decimal.Zero, ErrRolloverNotAllowed
	}

	// Index of the period the reference date is in. All periods before it
	// are complete.
	current, err := periodIndex(cfg.PeriodType, cfg.StartDate, reference)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for n := 0; n < current; n++ {
		if len(cfg.CategoryIDs) == 0 {
			total = total.Add(cfg.Amount)
			continue
		}

		period, err := PeriodAt(cfg.PeriodType, cfg.StartDate, n)
		if err != nil {
			return decimal.Zero, err
		}

		spent, err := lookup(cfg.CategoryIDs, period.Start, period.End)
		if err != nil {
			return decimal.Zero, err
		}

		if unspent := cfg.Amount.Sub(spent); unspent.IsPositive() {
			total = total.Add(unspent)
		}
	}

	return total, nil
}
