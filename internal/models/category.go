package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups transactions for budgeting and reporting.
type Category struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Note     string
	Color    string
	Archived bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}
