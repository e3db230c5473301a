package shared_test

import (
	"testing"

	"inn/shared"
	"inn/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns one page",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns one page",
			total:    25,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    20,
			limit:    10,
			expected: 2,
		},
		{
			name:     "remainder rounds up",
			total:    21,
			limit:    10,
			expected: 3,
		},
		{
			name:     "fewer items than limit",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)

			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{
			name:     "single part",
			parts:    []string{"room:get"},
			expected: "room:get",
		},
		{
			name:     "prefix and id",
			parts:    []string{"room:get", "42"},
			expected: "room:get:42",
		},
		{
			name:     "three parts",
			parts:    []string{"limiter", "10.0.0.1", "curl"},
			expected: "limiter:10.0.0.1:curl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.parts...)

			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{
		Page:    2,
		Limit:   10,
		SortBy:  "created_at",
		SortDir: "DESC",
	}

	result := shared.BuildCacheKeyWithQuery("booking:gets", params)
	expected := "booking:gets:p2:l10:created_at:DESC"

	if result != expected {
		t.Errorf("expected %s, got %s", expected, result)
	}

	other := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 3, Limit: 10, SortBy: "created_at", SortDir: "DESC"})
	if other == result {
		t.Error("expected distinct queries to produce distinct cache keys")
	}
}
