package engine

import (
	"strconv"
	"strings"

	"planta-backend/internal/storage"
)

// FindProduct looks a product up by its form-serialized identifier. Catalog
// ids are numeric but record cells hold whatever the form serialized, so
// the comparison is on the stringified id. O(n) over the snapshot; hoist
// the call out of per-cell loops where a row resolves the same product.
func FindProduct(products []storage.Product, identifier string) (storage.Product, bool) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return storage.Product{}, false
	}
	for _, p := range products {
		if strconv.FormatInt(p.ID, 10) == id {
			return p, true
		}
	}
	return storage.Product{}, false
}
