package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/homecents/backend/internal/controllers/v1"
	"github.com/homecents/backend/internal/periods"
	"github.com/homecents/backend/internal/types"
	"github.com/homecents/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestIncomeSchedule(t *testing.T, editable v1.IncomeScheduleEditable, expectedStatus ...int) v1.IncomeScheduleResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	if editable.Amount.IsZero() {
		editable.Amount = decimal.NewFromInt(2500)
	}

	if editable.Frequency == "" {
		editable.Frequency = periods.FrequencyMonthly
	}

	if editable.StartDate.IsZero() {
		editable.StartDate = types.NewDate(2024, time.January, 31)
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.IncomeScheduleEditable{editable}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/income-schedules", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.IncomeScheduleCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.IncomeScheduleResponse{}
}

// TestIncomeSchedulesOptions verifies that OPTIONS requests are handled
// correctly.
func (suite *TestSuiteStandard) TestIncomeSchedulesOptions() {
	tests := []struct {
		name   string
		id     string // path at the IncomeSchedules endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No IncomeSchedule with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"IncomeSchedule exists", createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/income-schedules", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestIncomeSchedulesCreate verifies income schedule creation and its
// validation.
func (suite *TestSuiteStandard) TestIncomeSchedulesCreate() {
	s := createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Salary",
		StartDate: types.NewDate(2024, time.January, 31),
	})

	// The first expected payment is the start date itself
	assert.True(suite.T(), s.Data.NextExpectedDate.Equal(types.NewDate(2024, time.January, 31)))

	// Semimonthly schedules need both anchor days
	createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Allowance",
		Frequency: periods.FrequencySemimonthly,
	}, http.StatusBadRequest)

	// The receiving account has to exist
	id := uuid.New()
	createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Side gig",
		AccountID: &id,
	}, http.StatusNotFound)

	// Names are unique
	createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{Name: "Salary"}, http.StatusBadRequest)
}

// TestIncomeSchedulesAdvance verifies that the advance endpoint moves the
// expected date forward one occurrence per call, clamping to month ends.
func (suite *TestSuiteStandard) TestIncomeSchedulesAdvance() {
	s := createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		StartDate: types.NewDate(2024, time.January, 31),
	})

	path := fmt.Sprintf("http://example.com/v1/income-schedules/%s/advance", s.Data.ID)

	// February 2024 has no 31st, the date clamps to the 29th
	r := test.Request(suite.T(), http.MethodPatch, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeScheduleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.NextExpectedDate.Equal(types.NewDate(2024, time.February, 29)))

	r = test.Request(suite.T(), http.MethodPatch, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.NextExpectedDate.Equal(types.NewDate(2024, time.March, 29)))

	// The new expected date is persisted
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/income-schedules/%s", s.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.NextExpectedDate.Equal(types.NewDate(2024, time.March, 29)))
}

// TestIncomeSchedulesAdvanceSemimonthly verifies advancement between the two
// anchor days.
func (suite *TestSuiteStandard) TestIncomeSchedulesAdvanceSemimonthly() {
	s := createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Frequency:       periods.FrequencySemimonthly,
		StartDate:       types.NewDate(2024, time.January, 15),
		SemimonthlyDay1: 1,
		SemimonthlyDay2: 15,
	})

	path := fmt.Sprintf("http://example.com/v1/income-schedules/%s/advance", s.Data.ID)

	expected := []types.Date{
		types.NewDate(2024, time.February, 1),
		types.NewDate(2024, time.February, 15),
		types.NewDate(2024, time.March, 1),
	}

	var response v1.IncomeScheduleResponse
	for _, date := range expected {
		r := test.Request(suite.T(), http.MethodPatch, path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		test.DecodeResponse(suite.T(), &r, &response)
		assert.True(suite.T(), response.Data.NextExpectedDate.Equal(date), "expected %s, got %s", date, response.Data.NextExpectedDate)
	}
}

// TestIncomeSchedulesUpdateResetsCursor verifies that changing the start date
// restarts the recurrence.
func (suite *TestSuiteStandard) TestIncomeSchedulesUpdateResetsCursor() {
	s := createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		StartDate: types.NewDate(2024, time.January, 31),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/income-schedules/%s/advance", s.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// A note update leaves the expected date alone
	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/income-schedules/%s", s.Data.ID), map[string]any{
		"note": "Paid on the last working day",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeScheduleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.NextExpectedDate.Equal(types.NewDate(2024, time.February, 29)))

	// Changing the start date resets the cursor to it
	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/income-schedules/%s", s.Data.ID), map[string]any{
		"startDate": "2024-02-01",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.NextExpectedDate.Equal(types.NewDate(2024, time.February, 1)))
}

// TestIncomeSchedulesUpcoming verifies the projection of expected payments.
func (suite *TestSuiteStandard) TestIncomeSchedulesUpcoming() {
	salary := createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Salary",
		StartDate: types.NewDate(2024, time.March, 29),
	})

	// Not advanced yet, the payment is overdue at the reference date
	rent := createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Rental income",
		Amount:    decimal.NewFromInt(1000),
		StartDate: types.NewDate(2024, time.March, 10),
	})

	// Archived schedules do not take part
	_ = createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Old side gig",
		StartDate: types.NewDate(2024, time.March, 20),
		Archived:  true,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income-schedules/upcoming?date=2024-03-17", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UpcomingResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	// Sorted by date: the overdue rent, the salary, then the next rent
	assert.Equal(suite.T(), rent.Data.ID, response.Data[0].ScheduleID)
	assert.Equal(suite.T(), "Rental income", response.Data[0].Name)
	assert.Equal(suite.T(), -7, response.Data[0].DaysUntil)

	assert.Equal(suite.T(), salary.Data.ID, response.Data[1].ScheduleID)
	assert.True(suite.T(), response.Data[1].Date.Equal(types.NewDate(2024, time.March, 29)))
	assert.Equal(suite.T(), 12, response.Data[1].DaysUntil)

	assert.Equal(suite.T(), rent.Data.ID, response.Data[2].ScheduleID)
	assert.True(suite.T(), response.Data[2].Date.Equal(types.NewDate(2024, time.April, 10)))

	// A negative horizon is an error
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income-schedules/upcoming?days=-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestIncomeSchedulesSummary verifies the expected income summary.
func (suite *TestSuiteStandard) TestIncomeSchedulesSummary() {
	_ = createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Salary",
		StartDate: types.NewDate(2024, time.March, 29),
	})
	_ = createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Rental income",
		Amount:    decimal.NewFromInt(1000),
		StartDate: types.NewDate(2024, time.March, 10),
	})

	tests := []struct {
		name        string
		query       string
		occurrences int
		total       decimal.Decimal
	}{
		{"Monthly horizon", "date=2024-03-17", 3, decimal.NewFromInt(4500)},
		{"Weekly horizon", "date=2024-03-17&period=weekly", 1, decimal.NewFromInt(1000)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/income-schedules/summary?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.IncomeSummaryResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Data)

			assert.Equal(t, tt.occurrences, response.Data.Occurrences)
			assert.True(t, response.Data.Total.Equal(tt.total), "total is %s", response.Data.Total)
			assert.True(t, response.Data.From.Equal(types.NewDate(2024, time.March, 17)))
		})
	}

	// Unknown periods are an error
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income-schedules/summary?period=fortnightly", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestIncomeSchedulesGetSorted verifies that the list is sorted by the next
// expected payment.
func (suite *TestSuiteStandard) TestIncomeSchedulesGetSorted() {
	_ = createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Salary",
		StartDate: types.NewDate(2024, time.March, 29),
	})
	_ = createTestIncomeSchedule(suite.T(), v1.IncomeScheduleEditable{
		Name:      "Rental income",
		StartDate: types.NewDate(2024, time.March, 10),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income-schedules", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeScheduleListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)

	assert.Equal(suite.T(), "Rental income", response.Data[0].Name)
	assert.Equal(suite.T(), "Salary", response.Data[1].Name)
}
