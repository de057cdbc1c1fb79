package v1

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/types"
	hc_uuid "github.com/homecents/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date       types.Date             `json:"date" example:"2024-03-17"`                                        // Date of the transaction
	Amount     decimal.Decimal        `json:"amount" example:"23.17"`                                           // Amount of the transaction, must be positive
	Type       models.TransactionType `json:"type" example:"expense" default:"expense"`                         // Type of the transaction
	Payee      string                 `json:"payee" example:"REWE Markt" default:""`                            // The other party of the transaction
	Note       string                 `json:"note" example:"Weekly groceries" default:""`                       // Notes about the transaction
	AccountID  uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107f9c"`         // ID of the account the transaction belongs to
	CategoryID *uuid.UUID             `json:"categoryId" example:"dd10beb9-339e-4e6c-8564-7bb54d25a552"`        // Optional ID of the category
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:       editable.Date,
		Amount:     editable.Amount,
		Type:       editable.Type,
		Payee:      editable.Payee,
		Note:       editable.Note,
		AccountID:  editable.AccountID,
		CategoryID: editable.CategoryID,
	}
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:       model.Date,
			Amount:     model.Amount,
			Type:       model.Type,
			Payee:      model.Payee,
			Note:       model.Note,
			AccountID:  model.AccountID,
			CategoryID: model.CategoryID,
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID  hc_uuid.UUID           `form:"account"`                     // By ID of the account
	CategoryID hc_uuid.UUID           `form:"category"`                    // By ID of the category
	Type       models.TransactionType `form:"type"`                        // By transaction type
	Payee      string                 `form:"payee" filterField:"false"`   // By substring in the payee
	Note       string                 `form:"note" filterField:"false"`    // By substring in the note
	FromDate   types.Date             `form:"fromDate" filterField:"false"`  // Transactions at or after this date
	UntilDate  types.Date             `form:"untilDate" filterField:"false"` // Transactions at or before this date
	Offset     uint                   `form:"offset" filterField:"false"` // The offset of the first Transaction returned. Defaults to 0.
	Limit      int                    `form:"limit" filterField:"false"`  // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	categoryID := &f.CategoryID.UUID
	if f.CategoryID.UUID == uuid.Nil {
		categoryID = nil
	}

	return models.Transaction{
		AccountID:  f.AccountID.UUID,
		CategoryID: categoryID,
		Type:       f.Type,
	}
}

// CategorizeRequest is the body for the categorize endpoint.
type CategorizeRequest struct {
	Text string `json:"text" example:"REWE Markt Berlin"` // The payee or note text to categorize
}

// CategorizeResponse holds the suggestion for a categorize request.
type CategorizeResponse struct {
	Data  *CategorySuggestion `json:"data"`  // The suggestion, null when no keyword matched
	Error *string             `json:"error"` // The error, if any occurred
}

// CategorySuggestion is a single category suggestion.
type CategorySuggestion struct {
	CategoryID uuid.UUID `json:"categoryId" example:"dd10beb9-339e-4e6c-8564-7bb54d25a552"` // ID of the suggested category
	Name       string    `json:"name" example:"Groceries"`                                  // Name of the suggested category
}
