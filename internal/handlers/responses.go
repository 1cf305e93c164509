package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"backoffice/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ListResponse is the envelope for every paginated listing.
type ListResponse struct {
	PageInfo models.PageInfo `json:"page_info"`
	Data     any             `json:"data"`
}

func paginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// boolQuery parses an optional boolean query parameter; nil means absent.
func boolQuery(c *gin.Context, name string) *bool {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	b := value == "true" || value == "1"
	return &b
}
