package v1

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/periods"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var decimalHundred = decimal.NewFromInt(100)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name          string             `json:"name" example:"Groceries" default:""`                  // Name of the budget
	Note          string             `json:"note" example:"Food and household items" default:""`   // Notes about the budget
	Amount        decimal.Decimal    `json:"amount" example:"500"`                                 // Budgeted amount per period, must be positive
	PeriodType    periods.PeriodType `json:"periodType" example:"monthly"`                         // Length of a budgeting period
	StartDate     types.Date         `json:"startDate" example:"2024-01-01"`                       // First day of the first period
	EndDate       types.Date         `json:"endDate" example:"2024-12-31"`                         // Optional last day of the budget
	AllowRollover bool               `json:"allowRollover" example:"true" default:"false"`         // Do unspent amounts accumulate across periods?
	Archived      bool               `json:"archived" example:"true" default:"false"`              // Is the budget archived?
	CategoryIDs   []uuid.UUID        `json:"categoryIds"`                                          // IDs of the categories the budget tracks
}

func (editable BudgetEditable) model() models.Budget {
	categories := make([]models.Category, 0, len(editable.CategoryIDs))
	for _, id := range editable.CategoryIDs {
		categories = append(categories, models.Category{DefaultModel: models.DefaultModel{ID: id}})
	}

	return models.Budget{
		Name:          editable.Name,
		Note:          editable.Note,
		Amount:        editable.Amount,
		PeriodType:    editable.PeriodType,
		StartDate:     editable.StartDate,
		EndDate:       editable.EndDate,
		AllowRollover: editable.AllowRollover,
		Archived:      editable.Archived,
		Categories:    categories,
	}
}

type Budget struct {
	models.DefaultModel
	BudgetEditable

	// RolloverAmount is computed by rollover processing and read-only
	RolloverAmount decimal.Decimal `json:"rolloverAmount" example:"350"`
}

func newBudget(db *gorm.DB, model models.Budget) (Budget, error) {
	ids, err := model.CategoryIDs(db)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:          model.Name,
			Note:          model.Note,
			Amount:        model.Amount,
			PeriodType:    model.PeriodType,
			StartDate:     model.StartDate,
			EndDate:       model.EndDate,
			AllowRollover: model.AllowRollover,
			Archived:      model.Archived,
			CategoryIDs:   ids,
		},
		RolloverAmount: model.RolloverAmount,
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of Budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, BudgetResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Name          string             `form:"name" filterField:"false"`   // By name
	Note          string             `form:"note" filterField:"false"`   // By note
	PeriodType    periods.PeriodType `form:"periodType"`                 // By period type
	AllowRollover bool               `form:"allowRollover"`              // Do unspent amounts accumulate?
	Archived      bool               `form:"archived"`                   // Is the budget archived?
	Search        string             `form:"search" filterField:"false"` // By string in name or note
	Offset        uint               `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit         int                `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		PeriodType:    f.PeriodType,
		AllowRollover: f.AllowRollover,
		Archived:      f.Archived,
	}
}

// QueryDate is the reference date for period calculations. It defaults to
// the current date when unset.
type QueryDate struct {
	Date types.Date `form:"date"` // Reference date in YYYY-MM-DD format
}

// BudgetProgress reports the state of a budget in the period containing the
// reference date.
type BudgetProgress struct {
	BudgetID       uuid.UUID       `json:"budgetId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the budget
	PeriodStart    types.Date      `json:"periodStart" example:"2024-03-01"`                        // First day of the period
	PeriodEnd      types.Date      `json:"periodEnd" example:"2024-03-31"`                          // Last day of the period
	Amount         decimal.Decimal `json:"amount" example:"500"`                                    // Budgeted amount for the period
	RolloverAmount decimal.Decimal `json:"rolloverAmount" example:"350"`                            // Accumulated rollover from earlier periods
	Available      decimal.Decimal `json:"available" example:"850"`                                 // Amount plus rollover
	Spent          decimal.Decimal `json:"spent" example:"123.45"`                                  // Spending in the period so far
	Remaining      decimal.Decimal `json:"remaining" example:"726.55"`                              // Available minus spent
	Percentage     float64         `json:"percentage" example:"14.52"`                              // Spent as a percentage of available
}

type BudgetProgressResponse struct {
	Data  *BudgetProgress `json:"data"`  // The progress of the Budget
	Error *string         `json:"error"` // The error, if any occurred
}

// RolloverFailure reports a budget whose rollover processing failed.
type RolloverFailure struct {
	BudgetID uuid.UUID `json:"budgetId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the budget
	Error    string    `json:"error"`                                                   // Why processing failed
}

// RolloverBatchResponse summarizes a rollover run over all eligible budgets.
type RolloverBatchResponse struct {
	Processed int               `json:"processed" example:"3"` // Number of budgets processed successfully
	IDs       []uuid.UUID       `json:"ids"`                   // IDs of the processed budgets
	Failures  []RolloverFailure `json:"failures"`              // Budgets that could not be processed
	Error     *string           `json:"error"`                 // The error, if any occurred before processing started
}
