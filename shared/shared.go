package shared

import (
	"reflect"
	"strings"
	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/timezone"
)

const cacheKeySeparator = ":"

// TransformFields converts the db-tagged fields of a struct into a column map for an update.
// Nil pointers are skipped; a non-nil pointer to a zero value is kept, so a field can be
// explicitly set to "". modified_at is always stamped.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				continue
			}

			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		if field.IsZero() {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the non-empty parts with ":".
func BuildCacheKey(parts ...string) string {
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			keys = append(keys, part)
		}
	}

	return strings.Join(keys, cacheKeySeparator)
}
