package v1

import (
	"github.com/homecents/backend/internal/models"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name     string `json:"name" example:"Checking" default:""`         // Name of the account
	Note     string `json:"note" example:"Main salary account" default:""` // Notes about the account
	OnBudget bool   `json:"onBudget" example:"true" default:"false"`    // Does the account factor into the budget?
	Archived bool   `json:"archived" example:"true" default:"false"`    // Is the account archived?
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:     editable.Name,
		Note:     editable.Note,
		OnBudget: editable.OnBudget,
		Archived: editable.Archived,
	}
}

type Account struct {
	models.DefaultModel
	AccountEditable
}

func newAccount(model models.Account) Account {
	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:     model.Name,
			Note:     model.Note,
			OnBudget: model.OnBudget,
			Archived: model.Archived,
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of Accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created Accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the Account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	OnBudget bool   `form:"onBudget"`                   // Is the account factored into the budget?
	Archived bool   `form:"archived"`                   // Is the account archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		OnBudget: f.OnBudget,
		Archived: f.Archived,
	}
}
