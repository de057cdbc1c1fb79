package v1

import (
	"math"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/homecents/backend/internal/httputil"
	"github.com/homecents/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterGoalRoutes registers the routes for Goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", GetGoals)
		r.POST("", CreateGoals)
	}

	// Aggregation over all goals
	{
		r.OPTIONS("/summary", httputil.OptionsGet)
		r.GET("/summary", GetGoalSummary)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
		r.PATCH("/:id/contribute", ContributeToGoal)
	}
}

func OptionsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsGoalDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Goal{})
}

// CreateGoals creates new goals
func CreateGoals(c *gin.Context) {
	var editables []GoalEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := GoalCreateResponse{}

	for _, editable := range editables {
		goal := editable.model()

		err := models.DB.Create(&goal).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newGoal(goal)
		r.Data = append(r.Data, GoalResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetGoals returns a list of goals filtered by the query parameters
func GetGoals(c *gin.Context) {
	var filter GoalQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var goals []models.Goal

	// The most important goal with the nearest deadline comes first
	q := models.DB.
		Order("priority ASC, target_date ASC, name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&goals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Goal, 0)
	for _, goal := range goals {
		apiResources = append(apiResources, newGoal(goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetGoal returns a specific goal
func GetGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	apiResource := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// UpdateGoal updates an existing goal. Only values to be updated need to be
// specified.
//
// Changing an amount re-derives the lifecycle state. A status sent by the
// user wins over the derived one.
func UpdateGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var data GoalEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	manual := slices.Contains(updateFields, any("Status"))
	if manual || slices.Contains(updateFields, any("CurrentAmount")) || slices.Contains(updateFields, any("TargetAmount")) {
		err = goal.SyncStatus(models.DB, manual)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GoalResponse{
				Error: &s,
			})
			return
		}
	}

	apiResource := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// DeleteGoal deletes a goal
func DeleteGoal(c *gin.Context) {
	deleteResource[models.Goal](c)
}

// ContributeToGoal adds money to the saved total of a goal. Reaching the
// target completes the goal.
func ContributeToGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var contribution GoalContribution
	err = httputil.BindData(c, &contribution)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	err = goal.Contribute(models.DB, contribution.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	apiResource := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// GetGoalSummary aggregates all goals that are not archived.
func GetGoalSummary(c *gin.Context) {
	var goals []models.Goal
	err := models.DB.
		Where("archived = ?", false).
		Find(&goals).
		Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalSummaryResponse{
			Error: &s,
		})
		return
	}

	summary := GoalSummary{
		Total:           len(goals),
		TargetAmount:    decimal.Zero,
		SavedAmount:     decimal.Zero,
		RemainingAmount: decimal.Zero,
	}

	progress := 0.0
	for _, goal := range goals {
		switch goal.Status {
		case models.GoalCompleted:
			summary.Completed++
		case models.GoalNotStarted, models.GoalInProgress:
			summary.Active++
			summary.TargetAmount = summary.TargetAmount.Add(goal.TargetAmount)
			summary.SavedAmount = summary.SavedAmount.Add(goal.CurrentAmount)
			summary.RemainingAmount = summary.RemainingAmount.Add(goal.Remaining())
			progress += goal.Progress()
		}
	}

	if summary.Active > 0 {
		summary.AverageProgress = math.Round(progress/float64(summary.Active)*100) / 100
	}

	c.JSON(http.StatusOK, GoalSummaryResponse{Data: &summary})
}
