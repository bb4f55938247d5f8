package request

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Pagination extracts page/page_size query parameters with sane defaults.
func Pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
// Returns nil when the parameter is absent, an error when it is malformed.
func QueryDate(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
