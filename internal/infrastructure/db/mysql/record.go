package mysql

import (
	"strconv"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type record map[string]any

type records []record

func (r record) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (r record) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		f, _ := strconv.ParseFloat(v, 64)
		return int64(f)
	default:
		return 0
	}
}

func (r record) Int(col string) int {
	return int(r.Int64(col))
}

func (rs records) rows() []domain.Row {
	out := make([]domain.Row, len(rs))
	for i, r := range rs {
		out[i] = domain.Row(r)
	}
	return out
}
