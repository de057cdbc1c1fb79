package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/homecents/backend/internal/controllers/v1"
	"github.com/homecents/backend/internal/httputil"
	"github.com/homecents/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestCategory(t *testing.T, editable v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CategoryEditable{editable}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.CategoryResponse{}
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	tests := []struct {
		name   string
		id     string // path at the Categories endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestCategoriesCRUD verifies the full lifecycle of a category.
func (suite *TestSuiteStandard) TestCategoriesCRUD() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", Color: "#affe00"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
	assert.Equal(suite.T(), "#affe00", response.Data.Color)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), map[string]any{
		"note": "Everything for the fridge",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Everything for the fridge", response.Data.Note)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestCategoriesCreateDuplicateName verifies that category names are unique.
func (suite *TestSuiteStandard) TestCategoriesCreateDuplicateName() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport"})
	r := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport"}, http.StatusBadRequest)

	assert.Nil(suite.T(), r.Data)
}

// TestCategoriesInvalidBody verifies the error handling for broken request
// bodies.
func (suite *TestSuiteStandard) TestCategoriesInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", `{ invalid json `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), httputil.ErrInvalidBody.Error(), *response.Error)
}
