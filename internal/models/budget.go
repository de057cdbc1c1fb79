package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/homecents/backend/internal/periods"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget limits the spending for a set of categories per period.
//
// RolloverAmount is only ever written by ProcessRollover, which recomputes it
// from scratch. It is not maintained incrementally.
type Budget struct {
	DefaultModel
	Name          string `gorm:"uniqueIndex"`
	Note          string
	Amount        decimal.Decimal    `gorm:"type:DECIMAL(20,8)"`
	PeriodType    periods.PeriodType `gorm:"index"`
	StartDate     types.Date         `gorm:"index"`
	EndDate       types.Date         // Zero value means the budget is ongoing
	AllowRollover bool
	RolloverAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived      bool
	Categories    []Category `gorm:"many2many:budget_categories" json:"-"`
}

var (
	ErrBudgetAmountNotPositive = errors.New("budget amounts must be larger than zero")
	ErrBudgetPeriodTypeInvalid = errors.New("the budget period type is invalid")
	ErrBudgetStartDateRequired = errors.New("the budget start date must be set")
	ErrBudgetEndBeforeStart    = errors.New("the budget end date must not be before its start date")
)

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	if !b.PeriodType.Valid() {
		return ErrBudgetPeriodTypeInvalid
	}

	if b.StartDate.IsZero() {
		return ErrBudgetStartDateRequired
	}

	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return ErrBudgetEndBeforeStart
	}

	return nil
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(b.Amount) {
		return ErrBudgetAmountNotPositive
	}

	return nil
}

// CategoryIDs returns the IDs of all categories linked to the budget.
func (b Budget) CategoryIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var categories []Category
	err := db.Model(&b).Association("Categories").Find(&categories)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}

	return ids, nil
}

// Spent returns the spending attributed to the budget within the period.
func (b Budget) Spent(db *gorm.DB, period periods.Period) (decimal.Decimal, error) {
	ids, err := b.CategoryIDs(db)
	if err != nil {
		return decimal.Zero, err
	}

	if len(ids) == 0 {
		return decimal.Zero, nil
	}

	return SpendingInRange(db, ids, period.Start, period.End)
}

// rolloverConfig assembles the engine configuration for the budget.
func (b Budget) rolloverConfig(db *gorm.DB) (periods.RolloverConfig, error) {
	ids, err := b.CategoryIDs(db)
	if err != nil {
		return periods.RolloverConfig{}, err
	}

	return periods.RolloverConfig{
		PeriodType:    b.PeriodType,
		StartDate:     b.StartDate,
		Amount:        b.Amount,
		AllowRollover: b.AllowRollover,
		CategoryIDs:   ids,
	}, nil
}

// ProcessRollover recomputes the accumulated rollover of the budget up to
// the reference date and stores the result.
//
// When the calculation fails, the stored rollover amount stays untouched.
func (b *Budget) ProcessRollover(db *gorm.DB, reference types.Date) error {
	cfg, err := b.rolloverConfig(db)
	if err != nil {
		return err
	}

	amount, err := periods.AccumulateRollover(cfg, reference, SpendingLookup(db))
	if err != nil {
		return err
	}

	err = db.Model(b).Update("rollover_amount", amount).Error
	if err != nil {
		return err
	}

	b.RolloverAmount = amount
	return nil
}
