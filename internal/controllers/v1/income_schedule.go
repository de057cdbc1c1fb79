package v1

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homecents/backend/internal/httputil"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/periods"
	"github.com/homecents/backend/internal/types"
	"github.com/shopspring/decimal"
)

// periodDays is the projection horizon for the income summary.
var periodDays = map[periods.PeriodType]int{
	periods.PeriodWeekly:    7,
	periods.PeriodMonthly:   30,
	periods.PeriodQuarterly: 90,
	periods.PeriodAnnual:    365,
}

// RegisterIncomeScheduleRoutes registers the routes for IncomeSchedules with
// the RouterGroup that is passed.
func RegisterIncomeScheduleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeScheduleList)
		r.GET("", GetIncomeSchedules)
		r.POST("", CreateIncomeSchedules)
	}

	// Projections over all schedules
	{
		r.OPTIONS("/upcoming", httputil.OptionsGet)
		r.GET("/upcoming", GetUpcomingIncome)
		r.OPTIONS("/summary", httputil.OptionsGet)
		r.GET("/summary", GetIncomeSummary)
	}

	// IncomeSchedule with ID
	{
		r.OPTIONS("/:id", OptionsIncomeScheduleDetail)
		r.GET("/:id", GetIncomeSchedule)
		r.PATCH("/:id", UpdateIncomeSchedule)
		r.DELETE("/:id", DeleteIncomeSchedule)
		r.PATCH("/:id/advance", AdvanceIncomeSchedule)
	}
}

func OptionsIncomeScheduleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsIncomeScheduleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.IncomeSchedule{})
}

// CreateIncomeSchedules creates new income schedules
func CreateIncomeSchedules(c *gin.Context) {
	var editables []IncomeScheduleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeScheduleCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := IncomeScheduleCreateResponse{}

	for _, editable := range editables {
		schedule := editable.model()

		err := models.DB.Create(&schedule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newIncomeSchedule(schedule)
		r.Data = append(r.Data, IncomeScheduleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetIncomeSchedules returns a list of income schedules filtered by the
// query parameters
func GetIncomeSchedules(c *gin.Context) {
	var filter IncomeScheduleQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var schedules []models.IncomeSchedule

	// The next payment due comes first
	q := models.DB.
		Order("next_expected_date ASC, name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&schedules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeScheduleListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]IncomeSchedule, 0)
	for _, schedule := range schedules {
		apiResources = append(apiResources, newIncomeSchedule(schedule))
	}

	c.JSON(http.StatusOK, IncomeScheduleListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetIncomeSchedule returns a specific income schedule
func GetIncomeSchedule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	var schedule models.IncomeSchedule
	err = models.DB.First(&schedule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	apiResource := newIncomeSchedule(schedule)
	c.JSON(http.StatusOK, IncomeScheduleResponse{Data: &apiResource})
}

// UpdateIncomeSchedule updates an existing income schedule. Only values to
// be updated need to be specified.
//
// Changing the start date or the frequency resets the next expected date to
// the start date, the recurrence begins anew.
func UpdateIncomeSchedule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	var schedule models.IncomeSchedule
	err = models.DB.First(&schedule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeScheduleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	var data IncomeScheduleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&schedule).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	// The recurrence cursor is only valid for the old configuration
	if slices.Contains(updateFields, any("StartDate")) || slices.Contains(updateFields, any("Frequency")) {
		err = models.DB.Model(&schedule).Update("next_expected_date", schedule.StartDate).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), IncomeScheduleResponse{
				Error: &s,
			})
			return
		}

		schedule.NextExpectedDate = schedule.StartDate
	}

	apiResource := newIncomeSchedule(schedule)
	c.JSON(http.StatusOK, IncomeScheduleResponse{Data: &apiResource})
}

// DeleteIncomeSchedule deletes an income schedule
func DeleteIncomeSchedule(c *gin.Context) {
	deleteResource[models.IncomeSchedule](c)
}

// AdvanceIncomeSchedule moves the schedule to the next expected occurrence,
// e.g. after the payment has been received. Every call advances by exactly
// one occurrence.
func AdvanceIncomeSchedule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	var schedule models.IncomeSchedule
	err = models.DB.First(&schedule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	err = schedule.AdvanceExpectedDate(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeScheduleResponse{
			Error: &s,
		})
		return
	}

	apiResource := newIncomeSchedule(schedule)
	c.JSON(http.StatusOK, IncomeScheduleResponse{Data: &apiResource})
}

// activeSchedules loads all schedules that take part in projections.
func activeSchedules() ([]models.IncomeSchedule, error) {
	var schedules []models.IncomeSchedule
	err := models.DB.
		Where("archived = ?", false).
		Find(&schedules).
		Error

	return schedules, err
}

// GetUpcomingIncome projects the expected payments of all active schedules
// over the horizon.
func GetUpcomingIncome(c *gin.Context) {
	var query UpcomingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s := errDateParameterInvalid.Error()
		c.JSON(http.StatusBadRequest, UpcomingResponse{
			Error: &s,
		})
		return
	}

	if query.Days < 0 {
		s := errDaysParameterInvalid.Error()
		c.JSON(http.StatusBadRequest, UpcomingResponse{
			Error: &s,
		})
		return
	}

	reference := query.Date
	if reference.IsZero() {
		reference = types.Today()
	}

	days := query.Days
	if days == 0 {
		days = 30
	}

	schedules, err := activeSchedules()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UpcomingResponse{
			Error: &s,
		})
		return
	}

	names := make(map[uuid.UUID]string, len(schedules))
	inputs := make([]periods.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		names[schedule.ID] = schedule.Name
		inputs = append(inputs, schedule.Schedule())
	}

	occurrences, err := periods.Project(inputs, reference, days)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, UpcomingResponse{
			Error: &s,
		})
		return
	}

	data := make([]UpcomingOccurrence, 0, len(occurrences))
	for _, occurrence := range occurrences {
		data = append(data, UpcomingOccurrence{
			ScheduleID: occurrence.ScheduleID,
			Name:       names[occurrence.ScheduleID],
			Date:       occurrence.Date,
			Amount:     occurrence.Amount,
			DaysUntil:  occurrence.DaysUntil,
		})
	}

	c.JSON(http.StatusOK, UpcomingResponse{Data: data})
}

// GetIncomeSummary sums the expected payments of all active schedules over
// a period-sized horizon.
func GetIncomeSummary(c *gin.Context) {
	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s := errDateParameterInvalid.Error()
		c.JSON(http.StatusBadRequest, IncomeSummaryResponse{
			Error: &s,
		})
		return
	}

	period := query.Period
	if period == "" {
		period = periods.PeriodMonthly
	}

	days, ok := periodDays[period]
	if !ok {
		s := errPeriodParameterInvalid.Error()
		c.JSON(http.StatusBadRequest, IncomeSummaryResponse{
			Error: &s,
		})
		return
	}

	reference := query.Date
	if reference.IsZero() {
		reference = types.Today()
	}

	schedules, err := activeSchedules()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSummaryResponse{
			Error: &s,
		})
		return
	}

	inputs := make([]periods.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		inputs = append(inputs, schedule.Schedule())
	}

	occurrences, err := periods.Project(inputs, reference, days)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, IncomeSummaryResponse{
			Error: &s,
		})
		return
	}

	total := decimal.Zero
	for _, occurrence := range occurrences {
		total = total.Add(occurrence.Amount)
	}

	c.JSON(http.StatusOK, IncomeSummaryResponse{
		Data: &IncomeSummary{
			Period:      period,
			From:        reference,
			Until:       reference.AddDays(days),
			Occurrences: len(occurrences),
			Total:       total,
		},
	})
}
