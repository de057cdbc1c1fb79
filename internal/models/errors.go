package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrAccountNameNotUnique  = errors.New("the account name must be unique")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrBudgetNameNotUnique   = errors.New("the budget name must be unique")
	ErrKeywordNotUnique      = errors.New("this keyword already exists for the category")
	ErrScheduleNameNotUnique = errors.New("the income schedule name must be unique")
	ErrGoalNameNotUnique     = errors.New("the goal name must be unique")
)
