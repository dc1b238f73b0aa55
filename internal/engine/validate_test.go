package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planta-backend/internal/storage"
)

func TestValidateSections_AcceptsBatchForm(t *testing.T) {
	assert.NoError(t, ValidateSections(batchSections()))
}

func TestValidateSections_Rejections(t *testing.T) {
	base := func() []storage.TableSection { return batchSections() }

	tests := []struct {
		name    string
		mutate  func(sections []storage.TableSection)
		wantErr string
	}{
		{
			name: "duplicate column id",
			mutate: func(s []storage.TableSection) {
				s[1].Columns[0].ID = "producto"
			},
			wantErr: "duplicated",
		},
		{
			name: "dependency-bearing column not read-only",
			mutate: func(s []storage.TableSection) {
				s[0].Columns[2].ReadOnly = false
			},
			wantErr: "read-only",
		},
		{
			name: "self reference",
			mutate: func(s []storage.TableSection) {
				s[0].Columns[2].Dependency.SourceColumnID = "precio"
			},
			wantErr: "itself",
		},
		{
			name: "missing source column",
			mutate: func(s []storage.TableSection) {
				s[0].Columns[2].Dependency.SourceColumnID = "no_existe"
			},
			wantErr: "does not exist",
		},
		{
			name: "chained dependency",
			mutate: func(s []storage.TableSection) {
				// importe would read precio, which is itself derived
				s[0].Columns[3].Dependency = &storage.Dependency{
					SourceColumnID: "precio",
					SourceKind:     storage.SourceQuantity,
					Calculation:    storage.CalcTotal,
				}
			},
			wantErr: "chains are not supported",
		},
		{
			name: "quantity source without product column",
			mutate: func(s []storage.TableSection) {
				s[0].Columns[0].Kind = storage.KindText
			},
			wantErr: "needs a product column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := base()
			tt.mutate(sections)

			err := ValidateSections(sections)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSections_ProductTotalNeedsNumberColumn(t *testing.T) {
	sections := []storage.TableSection{
		{Title: "Datos", Columns: []storage.ColumnDefinition{
			{ID: "producto", Header: "Producto", Kind: storage.KindProduct},
			{ID: "importe", Header: "Importe", Kind: storage.KindText, ReadOnly: true,
				Dependency: &storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcTotal}},
		}},
	}

	err := ValidateSections(sections)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "plain number column")
}
