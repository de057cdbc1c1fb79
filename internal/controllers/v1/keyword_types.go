package v1

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	hc_uuid "github.com/homecents/backend/internal/uuid"
)

// KeywordEditable represents all user configurable parameters
type KeywordEditable struct {
	Keyword    string           `json:"keyword" example:"rewe"`                                     // The keyword to match against payees and notes
	CategoryID uuid.UUID        `json:"categoryId" example:"dd10beb9-339e-4e6c-8564-7bb54d25a552"`  // ID of the category the keyword suggests
	Priority   uint             `json:"priority" example:"10" default:"0"`                          // Keywords with higher priority are checked first
	MatchMode  models.MatchMode `json:"matchMode" example:"contains" default:"contains"`            // How the keyword is compared against the text
	Archived   bool             `json:"archived" example:"true" default:"false"`                    // Is the keyword archived?
}

func (editable KeywordEditable) model() models.CategoryKeyword {
	return models.CategoryKeyword{
		Keyword:    editable.Keyword,
		CategoryID: editable.CategoryID,
		Priority:   editable.Priority,
		MatchMode:  editable.MatchMode,
		Archived:   editable.Archived,
	}
}

type Keyword struct {
	models.DefaultModel
	KeywordEditable
}

func newKeyword(model models.CategoryKeyword) Keyword {
	return Keyword{
		DefaultModel: model.DefaultModel,
		KeywordEditable: KeywordEditable{
			Keyword:    model.Keyword,
			CategoryID: model.CategoryID,
			Priority:   model.Priority,
			MatchMode:  model.MatchMode,
			Archived:   model.Archived,
		},
	}
}

type KeywordListResponse struct {
	Data       []Keyword   `json:"data"`                                                          // List of Keywords
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type KeywordCreateResponse struct {
	Data  []KeywordResponse `json:"data"`                                                          // List of the created Keywords or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *KeywordCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, KeywordResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type KeywordResponse struct {
	Data  *Keyword `json:"data"`                                                          // Data for the Keyword
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type KeywordQueryFilter struct {
	Keyword    string           `form:"keyword" filterField:"false"` // By substring in the keyword
	CategoryID hc_uuid.UUID     `form:"category"`                    // By ID of the category
	MatchMode  models.MatchMode `form:"matchMode"`                   // By match mode
	Archived   bool             `form:"archived"`                    // Is the keyword archived?
	Offset     uint             `form:"offset" filterField:"false"`  // The offset of the first Keyword returned. Defaults to 0.
	Limit      int              `form:"limit" filterField:"false"`   // Maximum number of Keywords to return. Defaults to 50.
}

func (f KeywordQueryFilter) model() models.CategoryKeyword {
	return models.CategoryKeyword{
		CategoryID: f.CategoryID.UUID,
		MatchMode:  f.MatchMode,
		Archived:   f.Archived,
	}
}
