package v1

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/types"
	hc_uuid "github.com/homecents/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// GoalEditable represents all user configurable parameters
type GoalEditable struct {
	Name          string            `json:"name" example:"Emergency fund" default:""`                 // Name of the goal
	Note          string            `json:"note" example:"Three months of expenses" default:""`       // Notes about the goal
	TargetAmount  decimal.Decimal   `json:"targetAmount" example:"5000"`                              // Amount to save, must be positive
	CurrentAmount decimal.Decimal   `json:"currentAmount" example:"1200" default:"0"`                 // Amount saved so far
	StartDate     types.Date        `json:"startDate" example:"2024-01-01"`                           // First day of saving, defaults to today
	TargetDate    types.Date        `json:"targetDate" example:"2024-12-31"`                          // Date the goal should be reached by
	Status        models.GoalStatus `json:"status" example:"in_progress" default:""`                  // Lifecycle state, derived from the amounts when empty
	Priority      uint              `json:"priority" example:"1" default:"1"`                         // Priority from 1 (highest) to 5 (lowest)
	Color         string            `json:"color" example:"#affe00" default:""`                       // Color of the goal in the UI
	AccountID     *uuid.UUID        `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107f9c"` // Optional ID of the account the money is saved on
	Archived      bool              `json:"archived" example:"true" default:"false"`                  // Is the goal archived?
}

func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Name:          editable.Name,
		Note:          editable.Note,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		StartDate:     editable.StartDate,
		TargetDate:    editable.TargetDate,
		Status:        editable.Status,
		Priority:      editable.Priority,
		Color:         editable.Color,
		AccountID:     editable.AccountID,
		Archived:      editable.Archived,
	}
}

type Goal struct {
	models.DefaultModel
	GoalEditable

	// The progress values are derived from the amounts and read-only
	CompletedDate types.Date      `json:"completedDate" example:"2024-09-17"` // Date the goal was completed, zero when it is not
	Progress      float64         `json:"progress" example:"24"`              // Saved amount as a percentage of the target, capped at 100
	Remaining     decimal.Decimal `json:"remaining" example:"3800"`           // Amount still to save, never negative
}

func newGoal(model models.Goal) Goal {
	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:          model.Name,
			Note:          model.Note,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			StartDate:     model.StartDate,
			TargetDate:    model.TargetDate,
			Status:        model.Status,
			Priority:      model.Priority,
			Color:         model.Color,
			AccountID:     model.AccountID,
			Archived:      model.Archived,
		},
		CompletedDate: model.CompletedDate,
		Progress:      model.Progress(),
		Remaining:     model.Remaining(),
	}
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of Goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Data  []GoalResponse `json:"data"`                                                          // List of the created Goals or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, GoalResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // Data for the Goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalQueryFilter struct {
	Name      string            `form:"name" filterField:"false"`   // By name
	Note      string            `form:"note" filterField:"false"`   // By note
	Status    models.GoalStatus `form:"status"`                     // By lifecycle state
	AccountID hc_uuid.UUID      `form:"account"`                    // By ID of the account the money is saved on
	Priority  uint              `form:"priority"`                   // By priority
	Archived  bool              `form:"archived"`                   // Is the goal archived?
	Search    string            `form:"search" filterField:"false"` // By string in name or note
	Offset    uint              `form:"offset" filterField:"false"` // The offset of the first Goal returned. Defaults to 0.
	Limit     int               `form:"limit" filterField:"false"`  // Maximum number of Goals to return. Defaults to 50.
}

func (f GoalQueryFilter) model() models.Goal {
	accountID := &f.AccountID.UUID
	if f.AccountID.UUID == uuid.Nil {
		accountID = nil
	}

	return models.Goal{
		Status:    f.Status,
		AccountID: accountID,
		Priority:  f.Priority,
		Archived:  f.Archived,
	}
}

// GoalContribution is the body of a contribution to a goal.
type GoalContribution struct {
	Amount decimal.Decimal `json:"amount" example:"50"` // Amount to add to the saved total, must be positive
}

// GoalSummary aggregates all goals that are not archived. The amounts only
// cover goals that are still being saved for.
type GoalSummary struct {
	Total           int             `json:"total" example:"5"`             // Number of goals
	Active          int             `json:"active" example:"3"`            // Goals not started or in progress
	Completed       int             `json:"completed" example:"1"`         // Goals that reached their target
	TargetAmount    decimal.Decimal `json:"targetAmount" example:"15000"`  // Sum of the targets of active goals
	SavedAmount     decimal.Decimal `json:"savedAmount" example:"4200"`    // Sum of the saved amounts of active goals
	RemainingAmount decimal.Decimal `json:"remainingAmount" example:"10800"` // Sum of the remaining amounts of active goals
	AverageProgress float64         `json:"averageProgress" example:"28"`  // Mean progress of active goals
}

type GoalSummaryResponse struct {
	Data  *GoalSummary `json:"data"`  // The goal summary
	Error *string      `json:"error"` // The error, if any occurred
}
