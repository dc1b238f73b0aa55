// Package engine computes the derived cells of the plant's dynamic record
// tables: per-column dependencies (unit price, line total, weight, tax
// surcharge) resolved against the product catalog snapshot, and table-wide
// ingredient scaling from the formula catalog.
//
// Every evaluation path is a pure function of its inputs and degrades to an
// empty value instead of failing, so a half-filled record never blocks data
// entry. Only ValidateSections returns errors, and it runs at form-design
// time, not during entry.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"planta-backend/internal/storage"
)

// Flatten returns the table's columns in declaration order, sections first
// to last. Column identity is table-wide, so most of the engine works on
// the flat list.
func Flatten(sections []storage.TableSection) []storage.ColumnDefinition {
	var columns []storage.ColumnDefinition
	for _, sec := range sections {
		columns = append(columns, sec.Columns...)
	}
	return columns
}

// cellString normalizes a raw cell to its form-serialized string form.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

// cellFloat parses a cell as a finite number.
func cellFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val) && !math.IsInf(val, 0)
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// money formats a computed amount the way the forms display prices and
// weights: two fixed decimals, rounded half-up. strconv would round
// half-even, which disagrees with the paper forms on .005 boundaries.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func copyRow(row storage.Row) storage.Row {
	out := make(storage.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
