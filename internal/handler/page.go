package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ridehail/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageInfo is the paging metadata attached to list responses.
type PageInfo struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

func pageInfoOf[T any](page repository.Page[T]) PageInfo {
	return PageInfo{
		CurrentPage: page.Page,
		PageSize:    page.Size,
		TotalPages:  page.TotalPages(),
		TotalItems:  page.TotalItems,
	}
}

// parsePageQuery reads page, size and sort=field,asc|desc from the query
// string, falling back to sane defaults on absent or malformed values.
func parsePageQuery(c *gin.Context) repository.PageQuery {
	query := repository.PageQuery{Size: defaultPageSize}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page >= 0 {
		query.Page = page
	}
	if size, err := strconv.Atoi(c.Query("size")); err == nil && size > 0 && size <= maxPageSize {
		query.Size = size
	}

	if sort := c.Query("sort"); sort != "" {
		field, direction, _ := strings.Cut(sort, ",")
		query.SortBy = field
		query.SortDesc = strings.EqualFold(direction, "desc")
	}

	return query
}

// queryInt64 parses an optional int64 query parameter; absent or
// malformed values yield nil so they do not constrain anything.
func queryInt64(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryFloat64 parses an optional float query parameter.
func queryFloat64(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryString returns an optional string query parameter.
func queryString(c *gin.Context, name string) *string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// pathID parses the {id} path parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
