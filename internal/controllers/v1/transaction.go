package v1

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/homecents/backend/internal/httputil"
	"github.com/homecents/backend/internal/models"
)

// RegisterTransactionRoutes registers the routes for Transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Category suggestion for free-form text
	{
		r.OPTIONS("/categorize", OptionsCategorize)
		r.POST("/categorize", Categorize)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

func OptionsCategorize(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateTransactions creates new transactions
//
// Transactions without a category get the highest-priority matching keyword
// category assigned, if any keyword matches the payee.
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		transaction := editable.model()

		if transaction.CategoryID == nil && transaction.Payee != "" {
			id, found, err := models.SuggestCategory(models.DB, transaction.Payee)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}

			if found {
				transaction.CategoryID = &id
			}
		}

		err := models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetTransactions returns a list of transactions filtered by the query
// parameters
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var transactions []models.Transaction

	// Most recent transactions first
	q := models.DB.
		Order("date DESC, created_at DESC").
		Where(filter.model(), queryFields...)

	if filter.Payee != "" {
		q = q.Where("payee LIKE ?", fmt.Sprintf("%%%s%%", filter.Payee))
	} else if slices.Contains(setFields, "Payee") {
		q = q.Where("payee = ''")
	}

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("date >= date(?)", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("date <= date(?)", filter.UntilDate)
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Transaction, 0)
	for _, transaction := range transactions {
		apiResources = append(apiResources, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetTransaction returns a specific transaction
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// UpdateTransaction updates an existing transaction. Only values to be
// updated need to be specified.
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// DeleteTransaction deletes a transaction
func DeleteTransaction(c *gin.Context) {
	deleteResource[models.Transaction](c)
}

// Categorize suggests a category for a payee or note text using the
// configured keywords.
func Categorize(c *gin.Context) {
	var request CategorizeRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizeResponse{
			Error: &s,
		})
		return
	}

	if request.Text == "" {
		s := errTextNotSet.Error()
		c.JSON(http.StatusBadRequest, CategorizeResponse{
			Error: &s,
		})
		return
	}

	id, found, err := models.SuggestCategory(models.DB, request.Text)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizeResponse{
			Error: &s,
		})
		return
	}

	// No match is a valid result, not an error
	if !found {
		c.JSON(http.StatusOK, CategorizeResponse{})
		return
	}

	var category models.Category
	err = models.DB.First(&category, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizeResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CategorizeResponse{
		Data: &CategorySuggestion{
			CategoryID: category.ID,
			Name:       category.Name,
		},
	})
}
