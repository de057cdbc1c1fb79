package models_test

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestTransactionTypeInvalid() {
	account := suite.createTestAccount(models.Account{})

	transaction := models.Transaction{
		Amount:    decimal.NewFromFloat(10),
		Type:      "donation",
		AccountID: account.ID,
	}
	err := models.DB.Create(&transaction).Error

	assert.ErrorIs(suite.T(), err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromFloat(-7.5)},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			transaction := models.Transaction{
				Amount:    tt.amount,
				Type:      models.TransactionExpense,
				AccountID: account.ID,
			}
			err := models.DB.Create(&transaction).Error

			assert.ErrorIs(suite.T(), err, models.ErrTransactionAmountNotPositive)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionAccountMustExist() {
	transaction := models.Transaction{
		Amount:    decimal.NewFromFloat(10),
		Type:      models.TransactionExpense,
		AccountID: uuid.New(),
	}
	err := models.DB.Create(&transaction).Error

	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *TestSuiteStandard) TestTransactionCategoryMustExist() {
	account := suite.createTestAccount(models.Account{})
	missing := uuid.New()

	transaction := models.Transaction{
		Amount:     decimal.NewFromFloat(10),
		Type:       models.TransactionExpense,
		AccountID:  account.ID,
		CategoryID: &missing,
	}
	err := models.DB.Create(&transaction).Error

	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToToday() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromFloat(10),
	})

	assert.True(suite.T(), transaction.Date.Equal(types.Today()))
}

func (suite *TestSuiteStandard) TestTransactionTrimsWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromFloat(10),
		Payee:  " Corner Store ",
		Note:   " weekly shop\t",
	})

	assert.Equal(suite.T(), "Corner Store", transaction.Payee)
	assert.Equal(suite.T(), "weekly shop", transaction.Note)
}

// Spending aggregation only counts expense transactions for the requested
// categories, with both range boundaries included.
func (suite *TestSuiteStandard) TestSpendingInRange() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})
	other := suite.createTestCategory(models.Category{})

	for _, tc := range []struct {
		date     types.Date
		amount   float64
		tType    models.TransactionType
		category uuid.UUID
	}{
		{types.NewDate(2024, 3, 1), 25, models.TransactionExpense, category.ID},  // start boundary
		{types.NewDate(2024, 3, 17), 50, models.TransactionExpense, category.ID}, // inside
		{types.NewDate(2024, 3, 31), 10, models.TransactionExpense, category.ID}, // end boundary
		{types.NewDate(2024, 2, 29), 99, models.TransactionExpense, category.ID}, // before range
		{types.NewDate(2024, 4, 1), 99, models.TransactionExpense, category.ID},  // after range
		{types.NewDate(2024, 3, 17), 99, models.TransactionIncome, category.ID},  // wrong type
		{types.NewDate(2024, 3, 17), 99, models.TransactionExpense, other.ID},    // wrong category
	} {
		_ = suite.createTestTransaction(models.Transaction{
			Date:       tc.date,
			Amount:     decimal.NewFromFloat(tc.amount),
			Type:       tc.tType,
			AccountID:  account.ID,
			CategoryID: &tc.category,
		})
	}

	spent, err := models.SpendingInRange(
		models.DB,
		[]uuid.UUID{category.ID},
		types.NewDate(2024, 3, 1),
		types.NewDate(2024, 3, 31),
	)

	require.Nil(suite.T(), err)
	assert.True(suite.T(), spent.Equal(decimal.NewFromFloat(85)), "spent is %s, should be 85", spent)
}

func (suite *TestSuiteStandard) TestSpendingInRangeEmpty() {
	category := suite.createTestCategory(models.Category{})

	spent, err := models.SpendingInRange(
		models.DB,
		[]uuid.UUID{category.ID},
		types.NewDate(2024, 3, 1),
		types.NewDate(2024, 3, 31),
	)

	require.Nil(suite.T(), err)
	assert.True(suite.T(), spent.IsZero())
}

func (suite *TestSuiteStandard) TestSpendingInRangeIgnoresDeleted() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	transaction := suite.createTestTransaction(models.Transaction{
		Date:       types.NewDate(2024, 3, 10),
		Amount:     decimal.NewFromFloat(40),
		AccountID:  account.ID,
		CategoryID: &category.ID,
	})
	require.Nil(suite.T(), models.DB.Delete(&transaction).Error)

	spent, err := models.SpendingInRange(
		models.DB,
		[]uuid.UUID{category.ID},
		types.NewDate(2024, 3, 1),
		types.NewDate(2024, 3, 31),
	)

	require.Nil(suite.T(), err)
	assert.True(suite.T(), spent.IsZero())
}
