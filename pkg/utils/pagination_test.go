package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	assert.Equal(t, PaginationParams{Page: 1, Limit: DefaultPageLimit}, GetPaginationParams(0, 0))
	assert.Equal(t, PaginationParams{Page: 3, Limit: 10}, GetPaginationParams(3, 10))
	assert.Equal(t, PaginationParams{Page: 1, Limit: MaxPageLimit}, GetPaginationParams(-5, 1000))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Limit: 10}.CalculateOffset())
	assert.Equal(t, 20, PaginationParams{Page: 3, Limit: 10}.CalculateOffset())
	assert.Equal(t, 0, PaginationParams{Page: 0, Limit: 10}.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(45, PaginationParams{Page: 2, Limit: 20})
	assert.Equal(t, PaginationMeta{Page: 2, Limit: 20, TotalCount: 45, TotalPages: 3}, meta)

	assert.Equal(t, 0, CalculateMeta(0, PaginationParams{Page: 1, Limit: 20}).TotalPages)
}
