package engine

import (
	"fmt"

	"planta-backend/internal/storage"
)

// ValidateSections rejects table configurations the recalculation pass
// cannot evaluate safely. It runs when a form template is saved in the
// designer; data entry itself never validates and never errors.
//
// Rules: column ids unique and non-empty; a dependency-bearing column is
// read-only; its source exists, is not itself, and carries no dependency of
// its own (single-hop only, which is what makes evaluation order
// irrelevant); a product-sourced total needs a plain number column; a
// quantity-sourced dependency needs a product-reference column.
func ValidateSections(sections []storage.TableSection) error {
	columns := Flatten(sections)

	byID := make(map[string]storage.ColumnDefinition, len(columns))
	for _, col := range columns {
		if col.ID == "" {
			return fmt.Errorf("column %q: empty id", col.Header)
		}
		if _, dup := byID[col.ID]; dup {
			return fmt.Errorf("column id %q: duplicated", col.ID)
		}
		byID[col.ID] = col
	}

	for _, col := range columns {
		dep := col.Dependency
		if dep == nil {
			continue
		}

		if !col.ReadOnly {
			return fmt.Errorf("column %q: dependency-bearing columns must be read-only", col.ID)
		}
		if dep.SourceColumnID == "" {
			return fmt.Errorf("column %q: dependency has no source column", col.ID)
		}
		if dep.SourceColumnID == col.ID {
			return fmt.Errorf("column %q: dependency references itself", col.ID)
		}

		source, ok := byID[dep.SourceColumnID]
		if !ok {
			return fmt.Errorf("column %q: source column %q does not exist", col.ID, dep.SourceColumnID)
		}
		if source.Dependency != nil {
			return fmt.Errorf("column %q: source column %q is itself dependency-bearing; chains are not supported", col.ID, dep.SourceColumnID)
		}

		switch dep.SourceKind {
		case storage.SourceProduct:
			if dep.Calculation == storage.CalcTotal {
				if _, ok := findPlainNumberColumn(columns); !ok {
					return fmt.Errorf("column %q: total calculation needs a plain number column in the table", col.ID)
				}
			}
		case storage.SourceQuantity:
			if _, ok := findProductColumn(columns); !ok {
				return fmt.Errorf("column %q: quantity-sourced dependency needs a product column in the table", col.ID)
			}
		default:
			return fmt.Errorf("column %q: unknown source kind %q", col.ID, dep.SourceKind)
		}
	}

	return nil
}
