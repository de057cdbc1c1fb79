package v1

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/periods"
	"github.com/homecents/backend/internal/types"
	hc_uuid "github.com/homecents/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// IncomeScheduleEditable represents all user configurable parameters
type IncomeScheduleEditable struct {
	Name            string            `json:"name" example:"Salary" default:""`                           // Name of the schedule
	Note            string            `json:"note" example:"Paid on the last working day" default:""`     // Notes about the schedule
	Amount          decimal.Decimal   `json:"amount" example:"2500"`                                      // Expected amount per payment, must be positive
	Frequency       periods.Frequency `json:"frequency" example:"monthly"`                                // How often the payment recurs
	StartDate       types.Date        `json:"startDate" example:"2024-01-31"`                             // Date of the first expected payment
	EndDate         types.Date        `json:"endDate" example:"2024-12-31"`                               // Optional date the schedule ends
	SemimonthlyDay1 int               `json:"semimonthlyDay1" example:"1" default:"0"`                    // First anchor day for semimonthly schedules
	SemimonthlyDay2 int               `json:"semimonthlyDay2" example:"15" default:"0"`                   // Second anchor day for semimonthly schedules
	AccountID       *uuid.UUID        `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107f9c"`   // Optional ID of the receiving account
	CategoryID      *uuid.UUID        `json:"categoryId" example:"dd10beb9-339e-4e6c-8564-7bb54d25a552"`  // Optional ID of the income category
	Archived        bool              `json:"archived" example:"true" default:"false"`                    // Is the schedule archived?
}

func (editable IncomeScheduleEditable) model() models.IncomeSchedule {
	return models.IncomeSchedule{
		Name:            editable.Name,
		Note:            editable.Note,
		Amount:          editable.Amount,
		Frequency:       editable.Frequency,
		StartDate:       editable.StartDate,
		EndDate:         editable.EndDate,
		SemimonthlyDay1: editable.SemimonthlyDay1,
		SemimonthlyDay2: editable.SemimonthlyDay2,
		AccountID:       editable.AccountID,
		CategoryID:      editable.CategoryID,
		Archived:        editable.Archived,
	}
}

type IncomeSchedule struct {
	models.DefaultModel
	IncomeScheduleEditable

	// NextExpectedDate is moved by the advance endpoint and read-only here
	NextExpectedDate types.Date `json:"nextExpectedDate" example:"2024-02-29"`
}

func newIncomeSchedule(model models.IncomeSchedule) IncomeSchedule {
	return IncomeSchedule{
		DefaultModel: model.DefaultModel,
		IncomeScheduleEditable: IncomeScheduleEditable{
			Name:            model.Name,
			Note:            model.Note,
			Amount:          model.Amount,
			Frequency:       model.Frequency,
			StartDate:       model.StartDate,
			EndDate:         model.EndDate,
			SemimonthlyDay1: model.SemimonthlyDay1,
			SemimonthlyDay2: model.SemimonthlyDay2,
			AccountID:       model.AccountID,
			CategoryID:      model.CategoryID,
			Archived:        model.Archived,
		},
		NextExpectedDate: model.NextExpectedDate,
	}
}

type IncomeScheduleListResponse struct {
	Data       []IncomeSchedule `json:"data"`                                                          // List of IncomeSchedules
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type IncomeScheduleCreateResponse struct {
	Data  []IncomeScheduleResponse `json:"data"`                                                          // List of the created IncomeSchedules or their respective error
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *IncomeScheduleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, IncomeScheduleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeScheduleResponse struct {
	Data  *IncomeSchedule `json:"data"`                                                          // Data for the IncomeSchedule
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeScheduleQueryFilter struct {
	Name      string            `form:"name" filterField:"false"`   // By name
	Note      string            `form:"note" filterField:"false"`   // By note
	Frequency periods.Frequency `form:"frequency"`                  // By frequency
	AccountID hc_uuid.UUID      `form:"account"`                    // By ID of the receiving account
	Archived  bool              `form:"archived"`                   // Is the schedule archived?
	Search    string            `form:"search" filterField:"false"` // By string in name or note
	Offset    uint              `form:"offset" filterField:"false"` // The offset of the first IncomeSchedule returned. Defaults to 0.
	Limit     int               `form:"limit" filterField:"false"`  // Maximum number of IncomeSchedules to return. Defaults to 50.
}

func (f IncomeScheduleQueryFilter) model() models.IncomeSchedule {
	accountID := &f.AccountID.UUID
	if f.AccountID.UUID == uuid.Nil {
		accountID = nil
	}

	return models.IncomeSchedule{
		Frequency: f.Frequency,
		AccountID: accountID,
		Archived:  f.Archived,
	}
}

// UpcomingQuery configures the projection of expected payments.
type UpcomingQuery struct {
	Date types.Date `form:"date"` // Reference date, defaults to today
	Days int        `form:"days"` // Projection horizon in days, defaults to 30
}

// UpcomingOccurrence is one expected payment within the projection horizon.
type UpcomingOccurrence struct {
	ScheduleID uuid.UUID       `json:"scheduleId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the schedule
	Name       string          `json:"name" example:"Salary"`                                     // Name of the schedule
	Date       types.Date      `json:"date" example:"2024-03-29"`                                 // Expected payment date
	Amount     decimal.Decimal `json:"amount" example:"2500"`                                     // Expected amount
	DaysUntil  int             `json:"daysUntil" example:"12"`                                    // Days from the reference date, negative when overdue
}

type UpcomingResponse struct {
	Data  []UpcomingOccurrence `json:"data"`  // Expected payments, earliest first
	Error *string              `json:"error"` // The error, if any occurred
}

// SummaryQuery configures the expected income summary.
type SummaryQuery struct {
	Date   types.Date         `form:"date"`   // Reference date, defaults to today
	Period periods.PeriodType `form:"period"` // Horizon period, defaults to monthly
}

// IncomeSummary reports the expected income over a horizon.
type IncomeSummary struct {
	Period      periods.PeriodType `json:"period" example:"monthly"`     // The period the summary covers
	From        types.Date         `json:"from" example:"2024-03-17"`    // First day of the horizon
	Until       types.Date         `json:"until" example:"2024-04-16"`   // Day after the last projected day
	Occurrences int                `json:"occurrences" example:"2"`      // Number of expected payments
	Total       decimal.Decimal    `json:"total" example:"5000"`         // Sum of the expected amounts
}

type IncomeSummaryResponse struct {
	Data  *IncomeSummary `json:"data"`  // The income summary
	Error *string        `json:"error"` // The error, if any occurred
}
