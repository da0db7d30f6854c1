package shared_test

import (
	"testing"
	"todoapp/shared"
	"todoapp/shared/constant"
	"todoapp/shared/dto"

	"github.com/stretchr/testify/assert"
)

type updateRequest struct {
	Content *string `db:"content"`
	Note    string  `db:"note"`
	Ignored string
}

func stringPtr(s string) *string {
	return &s
}

func TestTransformFields(t *testing.T) {
	tests := []struct {
		name     string
		input    updateRequest
		expected map[string]any
	}{
		{
			name:     "pointer field set",
			input:    updateRequest{Content: stringPtr("buy bread")},
			expected: map[string]any{"content": "buy bread"},
		},
		{
			name:     "pointer to empty string is kept",
			input:    updateRequest{Content: stringPtr("")},
			expected: map[string]any{"content": ""},
		},
		{
			name:     "nil pointer and zero value skipped",
			input:    updateRequest{},
			expected: map[string]any{},
		},
		{
			name:     "untagged field skipped",
			input:    updateRequest{Note: "note", Ignored: "ignored"},
			expected: map[string]any{"note": "note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.input)

			assert.Contains(t, result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedAt)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc", "id", "todos")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(todos.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "abc"}, args)
	assert.Equal(t, dto.FilterOperatorEq, filter.Filters[0].(dto.Filter).Operator)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
	assert.Equal(t, "limiter:curl", shared.BuildCacheKey("limiter", "", "curl"))
	assert.Equal(t, "", shared.BuildCacheKey())
}
