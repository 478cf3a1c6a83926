package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPagination(t *testing.T) {
	params := DefaultPagination()
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "createdAt", params.SortBy)
	assert.Equal(t, "desc", params.Order)
}

func TestGetSkip(t *testing.T) {
	assert.Equal(t, int64(0), (&PaginationParams{Page: 1, Limit: 10}).GetSkip())
	assert.Equal(t, int64(40), (&PaginationParams{Page: 5, Limit: 10}).GetSkip())
	assert.Equal(t, int64(75), (&PaginationParams{Page: 4, Limit: 25}).GetSkip())
}

func TestGetSortOrder(t *testing.T) {
	asc := &PaginationParams{SortBy: "name", Order: "asc"}
	assert.Equal(t, map[string]int{"name": 1}, asc.GetSortOrder())

	desc := &PaginationParams{SortBy: "createdAt", Order: "desc"}
	assert.Equal(t, map[string]int{"createdAt": -1}, desc.GetSortOrder())
}

func TestNewPaginatedResponse(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10}
	resp := NewPaginatedResponse([]string{"a", "b"}, 25, params)

	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrevious)
}

func TestNewPaginatedResponseEdges(t *testing.T) {
	first := NewPaginatedResponse(nil, 10, PaginationParams{Page: 1, Limit: 10})
	assert.Equal(t, 1, first.TotalPages)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	last := NewPaginatedResponse(nil, 21, PaginationParams{Page: 3, Limit: 10})
	assert.Equal(t, 3, last.TotalPages)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
}
