package engine

import (
	"strings"

	"planta-backend/internal/constants"
	"planta-backend/internal/storage"
)

// ScalingAnchors are the four columns the table-wide scaling action needs,
// located by structural convention (kind tags and header substrings) rather
// than explicit ids, because the plant's forms predate the designer.
type ScalingAnchors struct {
	QuantityColumnID string
	ProductColumnID  string
	NameColumnID     string
	AmountColumnID   string
}

// FindScalingAnchors resolves the anchors across all sections: the first
// quantity-marked column, the first product-reference column, and inside
// the first raw-materials section its first column (ingredient names) and
// first amount-marked column. Missing any anchor makes the whole action a
// no-op for the caller.
func FindScalingAnchors(sections []storage.TableSection) (ScalingAnchors, bool) {
	var a ScalingAnchors

	for _, sec := range sections {
		for _, col := range sec.Columns {
			if a.QuantityColumnID == "" && (containsAny(col.Header, constants.QuantityMarkers) || containsAny(col.ID, constants.QuantityMarkers)) {
				a.QuantityColumnID = col.ID
			}
			if a.ProductColumnID == "" && col.Kind == storage.KindProduct {
				a.ProductColumnID = col.ID
			}
		}
	}

	for _, sec := range sections {
		if !containsAny(sec.Title, constants.IngredientSectionMarkers) {
			continue
		}
		if len(sec.Columns) == 0 {
			break
		}
		a.NameColumnID = sec.Columns[0].ID
		for _, col := range sec.Columns {
			if containsAny(col.Header, constants.AmountMarkers) {
				a.AmountColumnID = col.ID
				break
			}
		}
		break
	}

	if a.QuantityColumnID == "" || a.ProductColumnID == "" || a.NameColumnID == "" || a.AmountColumnID == "" {
		return ScalingAnchors{}, false
	}
	return a, true
}

// ApplyScaling overwrites the amount cell of every ingredient row whose name
// has an entry in the scaled formula, formatted to three fixed decimals.
// The first row is the header row and is skipped; rows with no matching
// formula entry are left untouched. Returns a structural copy; if the
// formula yields nothing the input slice comes back as-is.
func ApplyScaling(rows []storage.Row, anchors ScalingAnchors, productName string, quantity float64) []storage.Row {
	scaled := ScaleFormula(productName, quantity)
	if len(scaled) == 0 {
		return rows
	}

	out := make([]storage.Row, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
		if i == 0 {
			continue
		}
		name := cellString(row[anchors.NameColumnID])
		amount, ok := scaled[name]
		if !ok {
			continue
		}
		out[i][anchors.AmountColumnID] = amount.StringFixed(3)
	}

	return out
}

func containsAny(s string, markers []string) bool {
	lowered := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}
