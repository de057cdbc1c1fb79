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

func createTestAccount(t *testing.T, editable v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.AccountEditable{editable}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.AccountResponse{}
}

// TestAccountsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestAccount(t, v1.AccountEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/accounts", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.AccountListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestAccountsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestAccountsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Accounts endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Account with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Account exists", createTestAccount(suite.T(), v1.AccountEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/accounts", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestAccountsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestAccountsGetSingle() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Account", a.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Account with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")

			var response v1.AccountResponse
			test.DecodeResponse(t, &r, &response)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestAccountsCreateDuplicateName verifies that a duplicate account name in a
// bulk request fails only the duplicate.
func (suite *TestSuiteStandard) TestAccountsCreateDuplicateName() {
	body := []v1.AccountEditable{
		{Name: "Checking"},
		{Name: "Checking"},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AccountCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Nil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrAccountNameNotUnique.Error(), *response.Data[1].Error)
}

// TestAccountsUpdate verifies that account updates are handled correctly.
func (suite *TestSuiteStandard) TestAccountsUpdate() {
	a := createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", Note: "For later"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/accounts/%s", a.Data.ID), map[string]any{
		"name": "Emergency fund",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "Emergency fund", response.Data.Name)

	// Fields not in the request body are unchanged
	assert.Equal(suite.T(), "For later", response.Data.Note)
}

// TestAccountsDelete verifies that accounts can be deleted.
func (suite *TestSuiteStandard) TestAccountsDelete() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/accounts/%s", a.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", a.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestAccountsGetFiltered verifies that filtering works.
func (suite *TestSuiteStandard) TestAccountsGetFiltered() {
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", OnBudget: true})
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", OnBudget: true, Archived: true})
	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Cash"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"On budget", "onBudget=true", 2},
		{"Not on budget", "onBudget=false", 1},
		{"Archived", "archived=true", 1},
		{"Name", "name=Checking", 1},
		{"Search", "search=ca", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.len, response.Pagination.Count)
		})
	}
}
