package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalPaused     GoalStatus = "paused"
	GoalCancelled  GoalStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s GoalStatus) Valid() bool {
	return s == GoalNotStarted || s == GoalInProgress || s == GoalCompleted ||
		s == GoalPaused || s == GoalCancelled
}

// Goal is a savings target, e.g. an emergency fund or a vacation.
//
// The status follows the saved amount: a goal starts, progresses and
// completes on its own as money is added. Paused and cancelled are the only
// states a user sets explicitly, they stop the automatic transitions.
type Goal struct {
	DefaultModel
	Name          string `gorm:"uniqueIndex"`
	Note          string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StartDate     types.Date
	TargetDate    types.Date
	CompletedDate types.Date // Zero value means the goal is not completed
	Status        GoalStatus `gorm:"index"`
	Priority      uint       // 1 is the highest priority, 5 the lowest
	Color         string
	AccountID     *uuid.UUID
	Account       Account `json:"-"`
	Archived      bool
}

var (
	ErrGoalTargetAmountNotPositive = errors.New("goal target amounts must be larger than zero")
	ErrGoalAmountNegative          = errors.New("the saved amount must not be negative")
	ErrGoalAmountOverTarget        = errors.New("the saved amount must not exceed the target amount")
	ErrGoalStatusInvalid           = errors.New("the goal status is invalid")
	ErrGoalPriorityOutOfRange      = errors.New("the goal priority must be between 1 and 5")
	ErrGoalTargetDateRequired      = errors.New("the goal target date must be set")
	ErrGoalTargetNotAfterStart     = errors.New("the goal target date must be after its start date")
	ErrGoalContributionNotPositive = errors.New("goal contributions must be larger than zero")
)

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Goal)
	if toSave.CurrentAmount.GreaterThan(toSave.TargetAmount) {
		return ErrGoalAmountOverTarget
	}

	return g.checkIntegrity(tx, *toSave)
}

func (g *Goal) BeforeUpdate(tx *gorm.DB) (err error) {
	if tx.Statement.Changed("AccountID") {
		toSave := tx.Statement.Dest.(Goal)
		err = g.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that all referenced resources exist.
func (g *Goal) checkIntegrity(tx *gorm.DB, toSave Goal) error {
	if toSave.AccountID != nil {
		return tx.First(&Account{}, *toSave.AccountID).Error
	}

	return nil
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if g.CurrentAmount.IsNegative() {
		return ErrGoalAmountNegative
	}

	// Saving starts today unless stated otherwise
	if g.StartDate.IsZero() {
		g.StartDate = types.Today()
	}

	if g.TargetDate.IsZero() {
		return ErrGoalTargetDateRequired
	}

	if !g.TargetDate.After(g.StartDate) {
		return ErrGoalTargetNotAfterStart
	}

	if g.Priority == 0 {
		g.Priority = 1
	}

	if g.Priority > 5 {
		return ErrGoalPriorityOutOfRange
	}

	if g.Status == "" {
		g.deriveStatus()
	}

	if !g.Status.Valid() {
		return ErrGoalStatusInvalid
	}

	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(g.TargetAmount) {
		return ErrGoalTargetAmountNotPositive
	}

	return nil
}

// deriveStatus sets the lifecycle state matching the saved amount.
func (g *Goal) deriveStatus() {
	switch {
	case g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) && g.TargetAmount.IsPositive():
		g.Status = GoalCompleted
		if g.CompletedDate.IsZero() {
			g.CompletedDate = types.Today()
		}
	case g.CurrentAmount.IsPositive():
		g.Status = GoalInProgress
	default:
		g.Status = GoalNotStarted
	}
}

// Progress returns the saved amount as a percentage of the target, capped
// at 100.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}

	p, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	if p > 100 {
		return 100
	}

	return p
}

// Remaining returns the amount still to save, never negative.
func (g Goal) Remaining() decimal.Decimal {
	if remaining := g.TargetAmount.Sub(g.CurrentAmount); remaining.IsPositive() {
		return remaining
	}

	return decimal.Zero
}

// SyncStatus re-derives the lifecycle state after the amounts changed and
// stores the result.
//
// When manual is set, the stored status is a user decision and only the
// completion date is maintained. Paused and cancelled goals otherwise keep
// their state until the user resumes them.
func (g *Goal) SyncStatus(db *gorm.DB, manual bool) error {
	if manual {
		if g.Status == GoalCompleted {
			if g.CompletedDate.IsZero() {
				g.CompletedDate = types.Today()
			}
		} else {
			g.CompletedDate = types.Date{}
		}
	} else if g.Status != GoalPaused && g.Status != GoalCancelled {
		g.deriveStatus()
	}

	return db.Model(g).Updates(map[string]any{
		"status":         g.Status,
		"completed_date": g.CompletedDate,
	}).Error
}

// Contribute adds a positive amount to the saved total. Reaching the target
// completes the goal.
func (g *Goal) Contribute(db *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrGoalContributionNotPositive
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)
	if g.Status == GoalNotStarted || g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.deriveStatus()
	}

	return db.Model(g).Updates(map[string]any{
		"current_amount": g.CurrentAmount,
		"status":         g.Status,
		"completed_date": g.CompletedDate,
	}).Error
}
