package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/homecents/backend/internal/controllers/v1"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestKeyword(t *testing.T, editable v1.KeywordEditable, expectedStatus ...int) v1.KeywordResponse {
	if editable.CategoryID == uuid.Nil {
		editable.CategoryID = createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}

	if editable.Keyword == "" {
		editable.Keyword = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.KeywordEditable{editable}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/keywords", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.KeywordCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.KeywordResponse{}
}

// TestKeywordsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestKeywordsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Keywords endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Keyword with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Keyword exists", createTestKeyword(suite.T(), v1.KeywordEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/keywords", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestKeywordsCreate verifies keyword creation, including normalization and
// referential integrity.
func (suite *TestSuiteStandard) TestKeywordsCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	k := createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "  REWE ", CategoryID: category.Data.ID})

	// Keywords are stored lowercase and trimmed
	assert.Equal(suite.T(), "rewe", k.Data.Keyword)
	assert.Equal(suite.T(), models.MatchContains, k.Data.MatchMode)

	// The category has to exist
	createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "edeka", CategoryID: uuid.New()}, http.StatusNotFound)

	// The same keyword twice for one category is an error
	createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "Rewe", CategoryID: category.Data.ID}, http.StatusBadRequest)
}

// TestKeywordsGetFiltered verifies that filtering works.
func (suite *TestSuiteStandard) TestKeywordsGetFiltered() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "rewe", CategoryID: category.Data.ID})
	_ = createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "rewe to go", CategoryID: category.Data.ID, MatchMode: models.MatchExact})
	_ = createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "shell"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 2},
		{"Match mode", "matchMode=exact", 1},
		{"Keyword substring", "keyword=rewe", 2},
		{"Archived", "archived=true", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/keywords?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.KeywordListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestKeywordsUpdate verifies that keyword updates are handled correctly.
func (suite *TestSuiteStandard) TestKeywordsUpdate() {
	k := createTestKeyword(suite.T(), v1.KeywordEditable{Keyword: "lidl"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/keywords/%s", k.Data.ID), map[string]any{
		"priority": 10,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.KeywordResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), uint(10), response.Data.Priority)
	assert.Equal(suite.T(), "lidl", response.Data.Keyword)
}
