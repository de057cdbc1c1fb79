package v1

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/homecents/backend/internal/httputil"
	"github.com/homecents/backend/internal/models"
	"github.com/homecents/backend/internal/periods"
	"github.com/homecents/backend/internal/types"
)

// RegisterBudgetRoutes registers the routes for Budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudgets)
	}

	// Rollover processing for all eligible budgets
	{
		r.OPTIONS("/rollover", OptionsRollover)
		r.POST("/rollover", ProcessRollovers)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
		r.GET("/:id/progress", GetBudgetProgress)
		r.POST("/:id/rollover", ProcessBudgetRollover)
	}
}

func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

func OptionsRollover(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateBudgets creates new budgets
func CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		budget := editable.model()

		err := models.DB.Create(&budget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newBudget(models.DB, budget)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetBudgets returns a list of budgets filtered by the query parameters
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var budgets []models.Budget

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Budget, 0)
	for _, budget := range budgets {
		data, err := newBudget(models.DB, budget)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetListResponse{
				Error: &s,
			})
			return
		}

		apiResources = append(apiResources, data)
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetBudget returns a specific budget
func GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	apiResource, err := newBudget(models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// UpdateBudget updates an existing budget. Only values to be updated need to
// be specified.
func UpdateBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	// The category link is not a column, it is updated separately below
	updateFields = slices.DeleteFunc(updateFields, func(f any) bool {
		return f == "CategoryIDs"
	})

	if len(updateFields) > 0 {
		update := data.model()
		update.Categories = nil

		err = models.DB.Model(&budget).Select("", updateFields...).Updates(update).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &s,
			})
			return
		}
	}

	if data.CategoryIDs != nil {
		categories := make([]models.Category, 0, len(data.CategoryIDs))
		for _, id := range data.CategoryIDs {
			categories = append(categories, models.Category{DefaultModel: models.DefaultModel{ID: id}})
		}

		err = models.DB.Model(&budget).Association("Categories").Replace(categories)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &s,
			})
			return
		}
	}

	apiResource, err := newBudget(models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// DeleteBudget deletes a budget
func DeleteBudget(c *gin.Context) {
	deleteResource[models.Budget](c)
}

// referenceDate binds the date query parameter, defaulting to today.
func referenceDate(c *gin.Context) (types.Date, error) {
	var query QueryDate
	if err := c.ShouldBindQuery(&query); err != nil {
		return types.Date{}, errDateParameterInvalid
	}

	if query.Date.IsZero() {
		return types.Today(), nil
	}

	return query.Date, nil
}

// GetBudgetProgress reports the state of a budget in the period containing
// the reference date.
func GetBudgetProgress(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	reference, err := referenceDate(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	period, err := periods.Boundaries(budget.PeriodType, budget.StartDate, reference)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	spent, err := budget.Spent(models.DB, period)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	available := budget.Amount.Add(budget.RolloverAmount)

	percentage := 0.0
	if available.IsPositive() {
		percentage, _ = spent.Div(available).Mul(decimalHundred).Round(2).Float64()
	}

	c.JSON(http.StatusOK, BudgetProgressResponse{
		Data: &BudgetProgress{
			BudgetID:       budget.ID,
			PeriodStart:    period.Start,
			PeriodEnd:      period.End,
			Amount:         budget.Amount,
			RolloverAmount: budget.RolloverAmount,
			Available:      available,
			Spent:          spent,
			Remaining:      available.Sub(spent),
			Percentage:     percentage,
		},
	})
}

// ProcessBudgetRollover recomputes and stores the rollover for one budget.
func ProcessBudgetRollover(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	reference, err := referenceDate(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	err = budget.ProcessRollover(models.DB, reference)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	apiResource, err := newBudget(models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// ProcessRollovers recomputes the rollover for all active budgets that allow
// it. Budgets failing to process do not stop the run, they are reported in
// the response.
func ProcessRollovers(c *gin.Context) {
	reference, err := referenceDate(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RolloverBatchResponse{
			Error: &s,
		})
		return
	}

	var budgets []models.Budget
	err = models.DB.
		Where("allow_rollover = ?", true).
		Where("archived = ?", false).
		Order("name ASC").
		Find(&budgets).
		Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RolloverBatchResponse{
			Error: &s,
		})
		return
	}

	r := RolloverBatchResponse{
		Failures: []RolloverFailure{},
	}

	for _, budget := range budgets {
		// A reference before the start date just means the budget has not
		// started yet, skip it without reporting a failure
		if reference.Before(budget.StartDate) {
			continue
		}

		err := budget.ProcessRollover(models.DB, reference)
		if err != nil {
			r.Failures = append(r.Failures, RolloverFailure{
				BudgetID: budget.ID,
				Error:    err.Error(),
			})
			continue
		}

		r.Processed++
		r.IDs = append(r.IDs, budget.ID)
	}

	c.JSON(http.StatusOK, r)
}
