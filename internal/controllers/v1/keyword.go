package v1

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/homecents/backend/internal/httputil"
	"github.com/homecents/backend/internal/models"
)

// RegisterKeywordRoutes registers the routes for Keywords with
// the RouterGroup that is passed.
func RegisterKeywordRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsKeywordList)
		r.GET("", GetKeywords)
		r.POST("", CreateKeywords)
	}

	// Keyword with ID
	{
		r.OPTIONS("/:id", OptionsKeywordDetail)
		r.GET("/:id", GetKeyword)
		r.PATCH("/:id", UpdateKeyword)
		r.DELETE("/:id", DeleteKeyword)
	}
}

func OptionsKeywordList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsKeywordDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CategoryKeyword{})
}

// CreateKeywords creates new keywords
func CreateKeywords(c *gin.Context) {
	var editables []KeywordEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), KeywordCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := KeywordCreateResponse{}

	for _, editable := range editables {
		keyword := editable.model()

		err := models.DB.Create(&keyword).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newKeyword(keyword)
		r.Data = append(r.Data, KeywordResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetKeywords returns a list of keywords filtered by the query parameters
func GetKeywords(c *gin.Context) {
	var filter KeywordQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var keywords []models.CategoryKeyword

	// Match order: highest priority first
	q := models.DB.
		Order("priority DESC, keyword ASC").
		Where(filter.model(), queryFields...)

	if filter.Keyword != "" {
		q = q.Where("keyword LIKE ?", fmt.Sprintf("%%%s%%", filter.Keyword))
	} else if slices.Contains(setFields, "Keyword") {
		q = q.Where("keyword = ''")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&keywords).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), KeywordListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Keyword, 0)
	for _, keyword := range keywords {
		apiResources = append(apiResources, newKeyword(keyword))
	}

	c.JSON(http.StatusOK, KeywordListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetKeyword returns a specific keyword
func GetKeyword(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	var keyword models.CategoryKeyword
	err = models.DB.First(&keyword, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	apiResource := newKeyword(keyword)
	c.JSON(http.StatusOK, KeywordResponse{Data: &apiResource})
}

// UpdateKeyword updates an existing keyword. Only values to be updated need
// to be specified.
func UpdateKeyword(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	var keyword models.CategoryKeyword
	err = models.DB.First(&keyword, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, KeywordEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	var data KeywordEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&keyword).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), KeywordResponse{
			Error: &s,
		})
		return
	}

	apiResource := newKeyword(keyword)
	c.JSON(http.StatusOK, KeywordResponse{Data: &apiResource})
}

// DeleteKeyword deletes a keyword
func DeleteKeyword(c *gin.Context) {
	deleteResource[models.CategoryKeyword](c)
}
