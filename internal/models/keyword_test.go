package models_test

import (
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestKeywordValidation() {
	category := suite.createTestCategory(models.Category{})

	tests := []struct {
		name    string
		keyword models.CategoryKeyword
		err     error
	}{
		{
			"empty keyword",
			models.CategoryKeyword{Keyword: "   ", CategoryID: category.ID},
			models.ErrKeywordEmpty,
		},
		{
			"invalid match mode",
			models.CategoryKeyword{Keyword: "rewe", CategoryID: category.ID, MatchMode: "regex"},
			models.ErrKeywordMatchModeInvalid,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.keyword).Error
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestKeywordCategoryMustExist() {
	keyword := models.CategoryKeyword{
		Keyword:    "rewe",
		CategoryID: uuid.New(),
	}
	err := models.DB.Create(&keyword).Error

	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *TestSuiteStandard) TestKeywordNotUnique() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "rewe", CategoryID: category.ID})

	keyword := models.CategoryKeyword{Keyword: "REWE", CategoryID: category.ID}
	err := models.DB.Create(&keyword).Error

	assert.ErrorIs(suite.T(), err, models.ErrKeywordNotUnique)
}

// The same keyword may point at different categories.
func (suite *TestSuiteStandard) TestKeywordSameKeywordDifferentCategory() {
	first := suite.createTestCategory(models.Category{})
	second := suite.createTestCategory(models.Category{})

	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "rewe", CategoryID: first.ID})

	keyword := models.CategoryKeyword{Keyword: "rewe", CategoryID: second.ID}
	err := models.DB.Create(&keyword).Error

	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestKeywordStoredLowercase() {
	keyword := suite.createTestKeyword(models.CategoryKeyword{Keyword: "  Corner STORE "})

	assert.Equal(suite.T(), "corner store", keyword.Keyword)
	assert.Equal(suite.T(), models.MatchContains, keyword.MatchMode)
}

func (suite *TestSuiteStandard) TestKeywordMatches() {
	tests := []struct {
		name    string
		keyword string
		mode    models.MatchMode
		text    string
		want    bool
	}{
		{"contains hit", "rewe", models.MatchContains, "REWE Markt Berlin", true},
		{"contains miss", "rewe", models.MatchContains, "Edeka Markt", false},
		{"starts_with hit", "amazon", models.MatchStartsWith, "Amazon.de Order 123", true},
		{"starts_with miss", "amazon", models.MatchStartsWith, "Payment to Amazon", false},
		{"exact hit", "rent", models.MatchExact, " Rent ", true},
		{"exact miss", "rent", models.MatchExact, "rental car", false},
		{"glob hit", "uber*trip", models.MatchGlob, "Uber BV Trip", true},
		{"glob star hit", "uber *", models.MatchGlob, "uber eats", true},
		{"glob miss", "uber *", models.MatchGlob, "lieferando", false},
		{"empty text", "rewe", models.MatchContains, "   ", false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			keyword := models.CategoryKeyword{Keyword: tt.keyword, MatchMode: tt.mode}

			assert.Equal(suite.T(), tt.want, keyword.Matches(tt.text))
		})
	}
}

func (suite *TestSuiteStandard) TestSuggestCategory() {
	groceries := suite.createTestCategory(models.Category{})
	transport := suite.createTestCategory(models.Category{})

	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "rewe", CategoryID: groceries.ID})
	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "bvg", CategoryID: transport.ID})

	id, found, err := models.SuggestCategory(models.DB, "REWE Markt Berlin")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), groceries.ID, id)

	_, found, err = models.SuggestCategory(models.DB, "Unknown Payee")
	require.Nil(suite.T(), err)
	assert.False(suite.T(), found)
}

// A higher priority wins even when a lower-priority keyword also matches.
func (suite *TestSuiteStandard) TestSuggestCategoryPriority() {
	generic := suite.createTestCategory(models.Category{})
	specific := suite.createTestCategory(models.Category{})

	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "amazon", CategoryID: generic.ID})
	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "amazon prime", CategoryID: specific.ID, Priority: 10})

	id, found, err := models.SuggestCategory(models.DB, "Amazon Prime Video")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), specific.ID, id)
}

func (suite *TestSuiteStandard) TestSuggestCategorySkipsArchived() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestKeyword(models.CategoryKeyword{Keyword: "rewe", CategoryID: category.ID, Archived: true})

	_, found, err := models.SuggestCategory(models.DB, "REWE Markt")
	require.Nil(suite.T(), err)
	assert.False(suite.T(), found)
}
