package helper

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type PageParams struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePageParams reads ?page and ?limit, clamping limit to [1, maxLimit]
// and page to >= 1.
func ParsePageParams(c *gin.Context, defaultLimit, maxLimit int) PageParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageParams{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

type PageMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	NextPage     *int  `json:"nextPage"`
	PrevPage     *int  `json:"prevPage"`
}

func Paginate(totalItems int64, params PageParams) PageMeta {
	totalPages := int((totalItems + int64(params.Limit) - 1) / int64(params.Limit))
	meta := PageMeta{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: params.Limit,
		HasNextPage:  params.Page < totalPages,
		HasPrevPage:  params.Page > 1,
	}
	if meta.HasNextPage {
		next := params.Page + 1
		meta.NextPage = &next
	}
	if meta.HasPrevPage {
		prev := params.Page - 1
		meta.PrevPage = &prev
	}
	return meta
}
