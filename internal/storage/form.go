package storage

// ColumnKind is the closed set of cell editors the form designer can place.
type ColumnKind string

const (
	KindText     ColumnKind = "text"
	KindNumber   ColumnKind = "number"
	KindSelect   ColumnKind = "select"
	KindCheckbox ColumnKind = "checkbox"
	KindDate     ColumnKind = "date"
	KindEmployee ColumnKind = "employee"
	KindProduct  ColumnKind = "product"
)

// SourceKind says what the dependency's source column holds.
type SourceKind string

const (
	SourceProduct  SourceKind = "product"
	SourceQuantity SourceKind = "quantity"
)

// Calculation selects the numeric strategy for a derived cell.
type Calculation string

const (
	CalcPrice  Calculation = "price"
	CalcTotal  Calculation = "total"
	CalcWeight Calculation = "weight"
	CalcTax    Calculation = "tax"
)

// Dependency declares that a column's value is computed from another column
// in the same table. Factor 0 means 1.
type Dependency struct {
	SourceColumnID string      `json:"source_column_id"`
	SourceKind     SourceKind  `json:"source_kind"`
	Calculation    Calculation `json:"calculation"`
	Factor         float64     `json:"factor,omitempty"`
}

type ColumnDefinition struct {
	ID         string      `json:"id"`
	Header     string      `json:"header"`
	Kind       ColumnKind  `json:"kind"`
	Options    []string    `json:"options,omitempty"`
	ReadOnly   bool        `json:"read_only"`
	Dependency *Dependency `json:"dependency,omitempty"`
}

// TableSection groups columns under one heading. Column ids are unique
// across the whole form, not just within a section.
type TableSection struct {
	Title   string             `json:"title"`
	Columns []ColumnDefinition `json:"columns"`
}

type FormTemplate struct {
	ID         int            `json:"ID"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Sections   []TableSection `json:"sections"`
	RowCount   int            `json:"row_count"`
	Extensible bool           `json:"extensible"`
	IsActive   bool           `json:"is_active"`
	HeadName   *string        `json:"head_name"`
}
