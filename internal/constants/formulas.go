package constants

// Ingredient is one line of a product formula: kilos of raw material per
// liter of finished batch.
type Ingredient struct {
	Name    string  `json:"name"`
	PerUnit float64 `json:"per_unit"`
}

// FormulaEntry holds the fixed ingredient ratios for one product, keyed by
// the exact product name as it appears in the catalog.
type FormulaEntry struct {
	Product     string       `json:"product"`
	Ingredients []Ingredient `json:"ingredients"`
}

// FormulaCatalog is the plant's fixed formulation table. Names must match
// the product catalog and the ingredient cells of the batch forms exactly,
// accents included.
var FormulaCatalog = []FormulaEntry{
	{
		Product: "Mielmex 65° Brix",
		Ingredients: []Ingredient{
			{Name: "Azúcar", PerUnit: 0.18},
			{Name: "Agua", PerUnit: 0.42},
			{Name: "Glucosa 43°", PerUnit: 0.095},
			{Name: "Bicarbonato", PerUnit: 0.0016},
			{Name: "Ácido cítrico", PerUnit: 0.0012},
		},
	},
	{
		Product: "Jarabe invertido 72° Brix",
		Ingredients: []Ingredient{
			{Name: "Azúcar", PerUnit: 0.62},
			{Name: "Agua", PerUnit: 0.31},
			{Name: "Ácido cítrico", PerUnit: 0.0009},
		},
	},
	{
		Product: "Caramelo líquido",
		Ingredients: []Ingredient{
			{Name: "Azúcar", PerUnit: 0.55},
			{Name: "Agua", PerUnit: 0.38},
			{Name: "Glucosa 43°", PerUnit: 0.06},
			{Name: "Bicarbonato", PerUnit: 0.0021},
		},
	},
}

// Anchor markers for the table-wide scaling action. Matching is
// case-insensitive substring against column headers/ids and section titles.
var (
	QuantityMarkers = []string{"litros", "cantidad"}

	IngredientSectionMarkers = []string{"materia prima", "materias primas"}

	AmountMarkers = []string{"kilos", "kg"}
)
