package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planta-backend/internal/storage"
)

func floatPtr(v float64) *float64 { return &v }

// batchSections is the shape of the plant's syrup batch form: production
// data up front, raw materials below.
func batchSections() []storage.TableSection {
	return []storage.TableSection{
		{
			Title: "Datos de producción",
			Columns: []storage.ColumnDefinition{
				{ID: "producto", Header: "Producto", Kind: storage.KindProduct},
				{ID: "litros", Header: "Litros a producir", Kind: storage.KindNumber},
				{ID: "precio", Header: "Precio unitario", Kind: storage.KindText, ReadOnly: true,
					Dependency: &storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}},
				{ID: "importe", Header: "Importe", Kind: storage.KindText, ReadOnly: true,
					Dependency: &storage.Dependency{SourceColumnID: "litros", SourceKind: storage.SourceQuantity, Calculation: storage.CalcTotal}},
			},
		},
		{
			Title: "Materias primas",
			Columns: []storage.ColumnDefinition{
				{ID: "ingrediente", Header: "Materia prima", Kind: storage.KindText},
				{ID: "kilos", Header: "Kilos", Kind: storage.KindText},
			},
		},
	}
}

func catalogSnapshot() []storage.Product {
	return []storage.Product{
		{ID: 7, Name: "Mielmex 65° Brix", Price: floatPtr(12.5), Weight: floatPtr(1.32)},
		{ID: 12, Name: "Caramelo líquido", Price: floatPtr(18.9)},
		{ID: 31, Name: "Maquila externa"},
	}
}

func TestEvaluateDependency_PriceWithFactor(t *testing.T) {
	dep := &storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice, Factor: 2}
	columns := Flatten(batchSections())
	row := storage.Row{"producto": "7"}

	got := EvaluateDependency(dep, columns, row, catalogSnapshot())

	assert.Equal(t, "25.00", got)
}

func TestEvaluateDependency_TaxMirrorsPrice(t *testing.T) {
	columns := Flatten(batchSections())
	row := storage.Row{"producto": "7"}
	products := catalogSnapshot()

	price := EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice, Factor: 0.16}, columns, row, products)
	tax := EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcTax, Factor: 0.16}, columns, row, products)

	assert.Equal(t, "2.00", price)
	assert.Equal(t, price, tax)
}

func TestEvaluateDependency_MissingPriceOrWeight(t *testing.T) {
	columns := Flatten(batchSections())
	products := catalogSnapshot()

	// product 31 has neither price nor weight
	row := storage.Row{"producto": "31"}
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}, columns, row, products))
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcWeight}, columns, row, products))

	// product 12 has a price but no weight
	row = storage.Row{"producto": "12"}
	assert.Equal(t, "18.90", EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}, columns, row, products))
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcWeight}, columns, row, products))
}

func TestEvaluateDependency_ProductTotalUsesPlainNumberColumn(t *testing.T) {
	dep := &storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcTotal}
	columns := Flatten(batchSections())
	row := storage.Row{"producto": "7", "litros": "40"}

	got := EvaluateDependency(dep, columns, row, catalogSnapshot())

	assert.Equal(t, "500.00", got)
}

func TestEvaluateDependency_TotalWithoutNumberColumn(t *testing.T) {
	dep := &storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcTotal}

	// same table with the only plain number column removed
	sections := batchSections()
	kept := sections[0].Columns[:0]
	for _, col := range sections[0].Columns {
		if col.ID != "litros" {
			kept = append(kept, col)
		}
	}
	sections[0].Columns = kept

	row := storage.Row{"producto": "7"}
	got := EvaluateDependency(dep, Flatten(sections), row, catalogSnapshot())

	assert.Empty(t, got)
}

func TestEvaluateDependency_QuantitySource(t *testing.T) {
	columns := Flatten(batchSections())
	products := catalogSnapshot()
	row := storage.Row{"producto": "7", "litros": "500"}

	total := EvaluateDependency(&storage.Dependency{SourceColumnID: "litros", SourceKind: storage.SourceQuantity, Calculation: storage.CalcTotal}, columns, row, products)
	weight := EvaluateDependency(&storage.Dependency{SourceColumnID: "litros", SourceKind: storage.SourceQuantity, Calculation: storage.CalcWeight}, columns, row, products)

	assert.Equal(t, "6250.00", total)
	assert.Equal(t, "660.00", weight)
}

func TestEvaluateDependency_QuantitySourceUnsupportedCalc(t *testing.T) {
	columns := Flatten(batchSections())
	row := storage.Row{"producto": "7", "litros": "500"}

	got := EvaluateDependency(&storage.Dependency{SourceColumnID: "litros", SourceKind: storage.SourceQuantity, Calculation: storage.CalcPrice}, columns, row, catalogSnapshot())

	assert.Empty(t, got)
}

func TestEvaluateDependency_FailuresYieldEmpty(t *testing.T) {
	columns := Flatten(batchSections())
	products := catalogSnapshot()

	// no dependency at all
	assert.Empty(t, EvaluateDependency(nil, columns, storage.Row{}, products))
	// unset source column
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}, columns, storage.Row{"producto": "7"}, products))
	// empty source cell
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}, columns, storage.Row{}, products))
	// unknown product id
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}, columns, storage.Row{"producto": "999"}, products))
	// quantity cell that is not a number
	assert.Empty(t, EvaluateDependency(&storage.Dependency{SourceColumnID: "litros", SourceKind: storage.SourceQuantity, Calculation: storage.CalcTotal}, columns, storage.Row{"producto": "7", "litros": "mucho"}, products))
}

func TestFindProduct_StringifiedIDs(t *testing.T) {
	products := catalogSnapshot()

	p, ok := FindProduct(products, "7")
	assert.True(t, ok)
	assert.Equal(t, "Mielmex 65° Brix", p.Name)

	p, ok = FindProduct(products, " 12 ")
	assert.True(t, ok)
	assert.Equal(t, "Caramelo líquido", p.Name)

	_, ok = FindProduct(products, "")
	assert.False(t, ok)
	_, ok = FindProduct(products, "404")
	assert.False(t, ok)
}
