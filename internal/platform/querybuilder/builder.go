package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectBuilder renders a full-table read. The dataset tables are always
// loaded whole, so there is no WHERE support.
type SelectBuilder struct {
	columns []string
	table   string
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = strings.TrimSpace(table)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select: no columns")
	case b.table == "":
		return "", nil, fmt.Errorf("select: no table")
	}

	query := "SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table
	if len(b.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(b.orderBy, ", ")
	}
	return query, nil, nil
}

type DeleteBuilder struct {
	table string
}

// DeleteFrom clears a table. Used before a replace-all insert inside one
// transaction.
func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: strings.TrimSpace(table)}
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("delete: no table")
	}
	return "DELETE FROM " + b.table, nil, nil
}

// insertSQL renders a multi-row VALUES list with $n placeholders numbered
// across rows.
func insertSQL(table string, columns []string, rows [][]any) (string, []any, error) {
	table = strings.TrimSpace(table)
	switch {
	case table == "":
		return "", nil, fmt.Errorf("insert: no table")
	case len(columns) == 0:
		return "", nil, fmt.Errorf("insert: no columns")
	case len(rows) == 0:
		return "", nil, fmt.Errorf("insert: no rows")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values for %d columns", i, len(row), len(columns))
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, value)
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(args)))
		}
		sb.WriteByte(')')
	}
	return sb.String(), args, nil
}
