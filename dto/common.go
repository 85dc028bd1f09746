package dto

import (
	"script9/response"
	"script9/types"
)

// PaginatedResponse documents list payloads in the API docs.
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// PageQuery binds the zero based page and limit query parameters.
type PageQuery struct {
	Page  int `form:"page" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0"`
}

func (q PageQuery) ToPage() types.Page {
	return types.Page{Page: q.Page, Limit: q.Limit}.Normalize()
}
