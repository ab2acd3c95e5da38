package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// Columns returns the db-tagged column names of a struct type, in field order.
func Columns(model any) ([]string, error) {
	cols, _, err := fields(model)
	return cols, err
}

// InsertModels builds one multi-row insert from table models. Column order
// comes from the first model's db tags.
func InsertModels[T any](table string, models []T) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert: no rows")
	}

	var columns []string
	rows := make([][]any, 0, len(models))
	for i := range models {
		cols, vals, err := fields(&models[i])
		if err != nil {
			return "", nil, err
		}
		if columns == nil {
			columns = cols
		}
		rows = append(rows, vals)
	}
	return insertSQL(table, columns, rows)
}

func fields(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("model: nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model: want struct, got %s", v.Kind())
	}

	t := v.Type()
	var (
		cols []string
		vals []any
	)
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model: %s has no db columns", t.Name())
	}
	return cols, vals, nil
}
