package engine

import (
	"planta-backend/internal/storage"
)

// EvaluateDependency computes the value of one derived cell. It is a pure
// function of the dependency descriptor, the row, the table's columns and
// the product snapshot; every lookup or parse failure short-circuits to ""
// (no value), never an error.
func EvaluateDependency(dep *storage.Dependency, columns []storage.ColumnDefinition, row storage.Row, products []storage.Product) string {
	if dep == nil || dep.SourceColumnID == "" {
		return ""
	}

	sourceValue := cellString(row[dep.SourceColumnID])
	if sourceValue == "" {
		return ""
	}

	factor := dep.Factor
	if factor == 0 {
		factor = 1
	}

	switch dep.SourceKind {
	case storage.SourceProduct:
		return evaluateFromProduct(dep.Calculation, factor, sourceValue, columns, row, products)
	case storage.SourceQuantity:
		return evaluateFromQuantity(dep.Calculation, factor, sourceValue, columns, row, products)
	}

	return ""
}

// evaluateFromProduct derives a value from a product-reference cell.
func evaluateFromProduct(calc storage.Calculation, factor float64, sourceValue string, columns []storage.ColumnDefinition, row storage.Row, products []storage.Product) string {
	product, ok := FindProduct(products, sourceValue)
	if !ok {
		return ""
	}

	switch calc {
	// tax mirrors price: the surcharge is expressed through the factor,
	// exactly as the old records were filled. Kept a separate kind so a
	// real tax derivation can land without touching stored forms.
	case storage.CalcPrice, storage.CalcTax:
		if product.Price == nil {
			return ""
		}
		return money(*product.Price * factor)

	case storage.CalcWeight:
		if product.Weight == nil {
			return ""
		}
		return money(*product.Weight * factor)

	case storage.CalcTotal:
		// Quantity comes from the first plain numeric column, by structural
		// convention rather than an explicit link.
		quantityColumn, ok := findPlainNumberColumn(columns)
		if !ok {
			return ""
		}
		quantity, ok := cellFloat(row[quantityColumn.ID])
		if !ok {
			return ""
		}
		if product.Price == nil {
			return ""
		}
		return money(*product.Price * quantity * factor)
	}

	return ""
}

// evaluateFromQuantity derives a value from a quantity cell, resolving the
// product through the table's first product-reference column.
func evaluateFromQuantity(calc storage.Calculation, factor float64, sourceValue string, columns []storage.ColumnDefinition, row storage.Row, products []storage.Product) string {
	quantity, ok := cellFloat(sourceValue)
	if !ok {
		return ""
	}

	productColumn, ok := findProductColumn(columns)
	if !ok {
		return ""
	}
	product, ok := FindProduct(products, cellString(row[productColumn.ID]))
	if !ok {
		return ""
	}

	switch calc {
	case storage.CalcTotal:
		if product.Price == nil {
			return ""
		}
		return money(*product.Price * quantity * factor)

	case storage.CalcWeight:
		if product.Weight == nil {
			return ""
		}
		return money(*product.Weight * quantity * factor)
	}

	// price/tax against a quantity source is a form-design mistake;
	// tolerated silently so entry is not interrupted.
	return ""
}

// findPlainNumberColumn returns the first number column that carries no
// dependency of its own, scanning the whole table.
func findPlainNumberColumn(columns []storage.ColumnDefinition) (storage.ColumnDefinition, bool) {
	for _, col := range columns {
		if col.Kind == storage.KindNumber && col.Dependency == nil {
			return col, true
		}
	}
	return storage.ColumnDefinition{}, false
}

// findProductColumn returns the first product-reference column of the whole
// table, not just one section.
func findProductColumn(columns []storage.ColumnDefinition) (storage.ColumnDefinition, bool) {
	for _, col := range columns {
		if col.Kind == storage.KindProduct {
			return col, true
		}
	}
	return storage.ColumnDefinition{}, false
}
