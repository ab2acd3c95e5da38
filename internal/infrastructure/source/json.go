package source

import (
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

// ReadJSON decodes an array of flat objects. Scalar values are rendered as
// strings so both dataset formats share one mapping path.
func ReadJSON(raw []byte) ([]Row, error) {
	var items []map[string]any
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode json dataset: %w", err)
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := make(Row, len(item))
		for key, value := range item {
			row[normalizeHeader(key)] = scalarString(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
