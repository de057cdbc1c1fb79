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

// IncomeSchedule tracks an expected recurring income payment, e.g. a salary.
//
// NextExpectedDate is the cursor of the recurrence: it always holds an
// occurrence date reachable from StartDate under the schedule's frequency
// and is moved forward one occurrence at a time by AdvanceExpectedDate.
type IncomeSchedule struct {
	DefaultModel
	Name             string `gorm:"uniqueIndex"`
	Note             string
	Amount           decimal.Decimal   `gorm:"type:DECIMAL(20,8)"`
	Frequency        periods.Frequency `gorm:"index"`
	StartDate        types.Date
	EndDate          types.Date // Zero value means the schedule is ongoing
	NextExpectedDate types.Date `gorm:"index"`
	SemimonthlyDay1  int
	SemimonthlyDay2  int
	AccountID        *uuid.UUID
	Account          Account `json:"-"`
	CategoryID       *uuid.UUID
	Category         Category `json:"-"`
	Archived         bool
}

var (
	ErrScheduleAmountNotPositive     = errors.New("income schedule amounts must be larger than zero")
	ErrScheduleFrequencyInvalid      = errors.New("the income schedule frequency is invalid")
	ErrScheduleStartDateRequired     = errors.New("the income schedule start date must be set")
	ErrScheduleEndBeforeStart        = errors.New("the income schedule end date must not be before its start date")
	ErrScheduleSemimonthlyDaysNotSet = errors.New("semimonthly schedules require both anchor days")
	ErrScheduleSemimonthlyDaysSet    = errors.New("anchor days can only be set for semimonthly schedules")
)

func (s *IncomeSchedule) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*IncomeSchedule)
	return s.checkIntegrity(tx, *toSave)
}

func (s *IncomeSchedule) BeforeUpdate(tx *gorm.DB) (err error) {
	if tx.Statement.Changed("AccountID") || tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(IncomeSchedule)
		err = s.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that all referenced resources exist.
func (s *IncomeSchedule) checkIntegrity(tx *gorm.DB, toSave IncomeSchedule) error {
	if toSave.AccountID != nil {
		err := tx.First(&Account{}, *toSave.AccountID).Error
		if err != nil {
			return err
		}
	}

	if toSave.CategoryID != nil {
		return tx.First(&Category{}, *toSave.CategoryID).Error
	}

	return nil
}

func (s *IncomeSchedule) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)

	if !s.Frequency.Valid() {
		return ErrScheduleFrequencyInvalid
	}

	if s.StartDate.IsZero() {
		return ErrScheduleStartDateRequired
	}

	if !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		return ErrScheduleEndBeforeStart
	}

	if s.Frequency == periods.FrequencySemimonthly {
		if s.SemimonthlyDay1 == 0 || s.SemimonthlyDay2 == 0 {
			return ErrScheduleSemimonthlyDaysNotSet
		}

		if err := s.SemimonthlyDays().Validate(); err != nil {
			return err
		}
	} else if s.SemimonthlyDay1 != 0 || s.SemimonthlyDay2 != 0 {
		return ErrScheduleSemimonthlyDaysSet
	}

	// The first expected payment is the start date itself
	if s.NextExpectedDate.IsZero() {
		s.NextExpectedDate = s.StartDate
	}

	return nil
}

func (s *IncomeSchedule) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(s.Amount) {
		return ErrScheduleAmountNotPositive
	}

	return nil
}

// SemimonthlyDays returns the anchor day configuration of the schedule.
func (s IncomeSchedule) SemimonthlyDays() periods.SemimonthlyDays {
	return periods.SemimonthlyDays{Day1: s.SemimonthlyDay1, Day2: s.SemimonthlyDay2}
}

// Schedule returns the projection input for the period engine.
func (s IncomeSchedule) Schedule() periods.Schedule {
	return periods.Schedule{
		ID:           s.ID,
		Frequency:    s.Frequency,
		Semimonthly:  s.SemimonthlyDays(),
		NextExpected: s.NextExpectedDate,
		End:          s.EndDate,
		Amount:       s.Amount,
	}
}

// AdvanceExpectedDate moves the schedule to the occurrence after the current
// expected date, e.g. after a payment has been received.
//
// This is deliberately not idempotent, every call advances by exactly one
// occurrence.
func (s *IncomeSchedule) AdvanceExpectedDate(db *gorm.DB) error {
	next, err := periods.Advance(s.Frequency, s.SemimonthlyDays(), s.NextExpectedDate)
	if err != nil {
		return err
	}

	err = db.Model(s).Update("next_expected_date", next).Error
	if err != nil {
		return err
	}

	s.NextExpectedDate = next
	return nil
}
