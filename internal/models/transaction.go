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

// TransactionType distinguishes money moving in, out, and between accounts.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Valid reports whether the transaction type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense || t == TransactionTransfer
}

// Transaction represents a single booking on an account.
type Transaction struct {
	DefaultModel
	Date       types.Date `gorm:"index"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type       TransactionType `gorm:"index"`
	Payee      string
	Note       string
	AccountID  uuid.UUID `gorm:"index"`
	Account    Account   `json:"-"`
	CategoryID *uuid.UUID `gorm:"index"`
	Category   Category   `json:"-"`
}

var (
	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrTransactionTypeInvalid       = errors.New("the transaction type is invalid")
)

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) (err error) {
	if tx.Statement.Changed("AccountID") || tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(Transaction)
		err = t.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that all referenced resources exist.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&Account{}, toSave.AccountID).Error
	if err != nil {
		return err
	}

	if toSave.CategoryID != nil {
		return tx.First(&Category{}, *toSave.CategoryID).Error
	}

	return nil
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Payee = strings.TrimSpace(t.Payee)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = types.Today()
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(t.Amount) {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

// SpendingInRange returns the total amount of expense transactions for the
// given categories with dates in the closed range [from, to].
func SpendingInRange(db *gorm.DB, categoryIDs []uuid.UUID, from, to types.Date) (decimal.Decimal, error) {
	var spent decimal.NullDecimal

	err := db.
		Select("SUM(amount)").
		Where("transactions.category_id IN (?)", categoryIDs).
		Where("transactions.type = ?", TransactionExpense).
		Where("transactions.date >= date(?)", from).
		Where("transactions.date <= date(?)", to).
		Where("transactions.deleted_at IS NULL").
		Table("transactions").
		Find(&spent).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	if !spent.Valid {
		return decimal.Zero, nil
	}

	return spent.Decimal, nil
}

// SpendingLookup returns the spending aggregation capability for the period
// engine, bound to the given database.
func SpendingLookup(db *gorm.DB) periods.SpendingLookup {
	return func(categoryIDs []uuid.UUID, from, to types.Date) (decimal.Decimal, error) {
		return SpendingInRange(db, categoryIDs, from, to)
	}
}
