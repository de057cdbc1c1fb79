package v1

import (
	"errors"
	"net/http"

	"github.com/homecents/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errDateParameterInvalid = errors.New("the date query parameter must be a valid date in YYYY-MM-DD format")
	errDaysParameterInvalid = errors.New("the days query parameter must be a positive number")
	errPeriodParameterInvalid = errors.New("the period query parameter must be one of weekly, monthly, quarterly, annual")
	errTextNotSet             = errors.New("the text field must be set")
)
