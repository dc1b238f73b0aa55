package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planta-backend/internal/storage"
)

func TestFindScalingAnchors(t *testing.T) {
	anchors, ok := FindScalingAnchors(batchSections())

	assert.True(t, ok)
	assert.Equal(t, "litros", anchors.QuantityColumnID)
	assert.Equal(t, "producto", anchors.ProductColumnID)
	assert.Equal(t, "ingrediente", anchors.NameColumnID)
	assert.Equal(t, "kilos", anchors.AmountColumnID)
}

func TestFindScalingAnchors_NoIngredientSection(t *testing.T) {
	sections := batchSections()[:1]

	_, ok := FindScalingAnchors(sections)

	assert.False(t, ok)
}

func TestFindScalingAnchors_NoAmountColumn(t *testing.T) {
	sections := batchSections()
	sections[1].Columns[1].Header = "Observaciones"
	sections[1].Columns[1].ID = "observaciones"

	_, ok := FindScalingAnchors(sections)

	assert.False(t, ok)
}

func TestApplyScaling(t *testing.T) {
	anchors, ok := FindScalingAnchors(batchSections())
	assert.True(t, ok)

	rows := []storage.Row{
		{"producto": "7", "litros": "500"}, // header row of the section
		{"ingrediente": "Azúcar", "kilos": "1.000"},
		{"ingrediente": "Bicarbonato"},
		{"ingrediente": "Colorante", "kilos": "0.250"}, // not in the formula
		{},
	}

	got := ApplyScaling(rows, anchors, "Mielmex 65° Brix", 500)

	// first row skipped even though the formula has entries
	assert.NotContains(t, got[0], "kilos")
	assert.Equal(t, "90.000", got[1]["kilos"])
	assert.Equal(t, "0.800", got[2]["kilos"])
	// unmatched ingredient keeps its hand-typed amount
	assert.Equal(t, "0.250", got[3]["kilos"])
	assert.NotContains(t, got[4], "kilos")

	// input untouched
	assert.Equal(t, "1.000", rows[1]["kilos"])
}

func TestApplyScaling_UnknownProductIsNoOp(t *testing.T) {
	anchors, ok := FindScalingAnchors(batchSections())
	assert.True(t, ok)

	rows := []storage.Row{
		{"producto": "7"},
		{"ingrediente": "Azúcar", "kilos": "1.000"},
	}

	got := ApplyScaling(rows, anchors, "Nonexistent", 500)

	assert.Equal(t, rows, got)

	got = ApplyScaling(rows, anchors, "Mielmex 65° Brix", 0)
	assert.Equal(t, rows, got)
}
