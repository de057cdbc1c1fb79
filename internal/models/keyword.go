package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchMode determines how a keyword is compared against a transaction's
// payee or note.
type MatchMode string

const (
	MatchContains   MatchMode = "contains"
	MatchStartsWith MatchMode = "starts_with"
	MatchExact      MatchMode = "exact"
	MatchGlob       MatchMode = "glob"
)

// Valid reports whether the match mode is one of the known values.
func (m MatchMode) Valid() bool {
	return m == MatchContains || m == MatchStartsWith || m == MatchExact || m == MatchGlob
}

// CategoryKeyword is a user-defined rule that suggests a category for
// transactions whose payee or note matches the keyword.
//
// Keywords with a higher priority are checked first.
type CategoryKeyword struct {
	DefaultModel
	Keyword    string    `gorm:"uniqueIndex:keyword_category"`
	CategoryID uuid.UUID `gorm:"uniqueIndex:keyword_category"`
	Category   Category  `json:"-"`
	Priority   uint
	MatchMode  MatchMode
	Archived   bool
}

var (
	ErrKeywordEmpty            = errors.New("the keyword must not be empty")
	ErrKeywordMatchModeInvalid = errors.New("the keyword match mode is invalid")
)

func (k *CategoryKeyword) BeforeCreate(tx *gorm.DB) error {
	_ = k.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*CategoryKeyword)
	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (k *CategoryKeyword) BeforeSave(_ *gorm.DB) error {
	// Keywords are matched case-insensitively, store them lowercased
	k.Keyword = strings.ToLower(strings.TrimSpace(k.Keyword))

	if k.Keyword == "" {
		return ErrKeywordEmpty
	}

	if k.MatchMode == "" {
		k.MatchMode = MatchContains
	}

	if !k.MatchMode.Valid() {
		return ErrKeywordMatchModeInvalid
	}

	return nil
}

// Matches reports whether the keyword matches the given text.
func (k CategoryKeyword) Matches(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}

	switch k.MatchMode {
	case MatchStartsWith:
		return strings.HasPrefix(text, k.Keyword)
	case MatchExact:
		return text == k.Keyword
	case MatchGlob:
		return glob.Glob(k.Keyword, text)
	default:
		return strings.Contains(text, k.Keyword)
	}
}

// SuggestCategory returns the category of the highest-priority active
// keyword matching the text. The boolean reports whether any keyword
// matched.
func SuggestCategory(db *gorm.DB, text string) (uuid.UUID, bool, error) {
	var keywords []CategoryKeyword

	err := db.
		Where("archived = ?", false).
		Order("priority DESC, keyword ASC").
		Find(&keywords).
		Error
	if err != nil {
		return uuid.Nil, false, err
	}

	for _, keyword := range keywords {
		if keyword.Matches(text) {
			return keyword.CategoryID, true, nil
		}
	}

	return uuid.Nil, false, nil
}
