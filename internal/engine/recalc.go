package engine

import (
	"planta-backend/internal/storage"
)

type cellChange struct {
	row   int
	colID string
	value string
}

// Recalculate runs one full dependency pass over the record: every
// dependency-bearing column of every row is re-evaluated against the
// current row data and product snapshot.
//
// Only computed values that are non-empty and differ from the stored cell
// are collected. When nothing differs the input slice is returned unchanged
// with changed=false, so a no-op trigger cannot feed back into another
// recalculation. When something differs the result is a structural copy
// with all changes applied, emitted once.
//
// Columns are evaluated in declaration order. Sources are never themselves
// dependency-bearing (ValidateSections rejects chains), so order cannot
// change the outcome.
func Recalculate(sections []storage.TableSection, rows []storage.Row, products []storage.Product) ([]storage.Row, bool) {
	columns := Flatten(sections)

	var changes []cellChange
	for i, row := range rows {
		for _, col := range columns {
			if col.Dependency == nil {
				continue
			}
			computed := EvaluateDependency(col.Dependency, columns, row, products)
			if computed == "" {
				continue
			}
			if cellString(row[col.ID]) == computed {
				continue
			}
			changes = append(changes, cellChange{row: i, colID: col.ID, value: computed})
		}
	}

	if len(changes) == 0 {
		return rows, false
	}

	out := make([]storage.Row, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	for _, ch := range changes {
		out[ch.row][ch.colID] = ch.value
	}

	return out, true
}
