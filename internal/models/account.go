package models

import (
	"strings"

	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a checking account.
type Account struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Note     string
	OnBudget bool
	Archived bool
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}
