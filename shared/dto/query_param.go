package dto

import (
	"net/http"
	"strconv"
	"strings"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing page and limit get their default values; without it the
// zero values mean "no pagination" and the whole collection is returned. A page or limit that
// is not a positive integer, or a sort_dir other than ASC/DESC, is a bad request.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) error {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		pageInt, err := strconv.Atoi(page)
		if err != nil || pageInt <= 0 {
			return failure.InvalidPageParam
		}

		q.Page = pageInt
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt <= 0 {
			return failure.InvalidLimitParam
		}

		q.Limit = limitInt
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); sortDir != "" {
		sortDir = strings.ToUpper(sortDir)
		if sortDir != SortDirAsc && sortDir != SortDirDesc {
			return failure.InvalidSortDirParam
		}

		q.SortDir = sortDir
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}

	return nil
}
