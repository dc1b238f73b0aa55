package get

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"planta-backend/internal/storage"
)

type MockFormProvider struct {
	mock.Mock
}

func (m *MockFormProvider) GetFormByCode(ctx context.Context, code string) (*storage.FormTemplate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.FormTemplate), args.Error(1)
}

func (m *MockFormProvider) GetAllForms(ctx context.Context) ([]*storage.FormTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.FormTemplate), args.Error(1)
}

func (m *MockFormProvider) GetFormByCodeAdmin(ctx context.Context, code string) (*storage.FormTemplate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.FormTemplate), args.Error(1)
}

func TestGetFormByCode_Success(t *testing.T) {
	mockStorage := new(MockFormProvider)

	form := &storage.FormTemplate{
		ID:       3,
		Code:     "LOTE-MIEL",
		Name:     "Registro de lote de jarabe",
		Category: "produccion",
		RowCount: 12,
		Sections: []storage.TableSection{
			{
				Title: "Datos de producción",
				Columns: []storage.ColumnDefinition{
					{ID: "producto", Header: "Producto", Kind: storage.KindProduct},
					{ID: "litros", Header: "Litros a producir", Kind: storage.KindNumber},
					{ID: "precio", Header: "Precio unitario", Kind: storage.KindText, ReadOnly: true,
						Dependency: &storage.Dependency{SourceColumnID: "producto", SourceKind: storage.SourceProduct, Calculation: storage.CalcPrice}},
				},
			},
		},
	}

	mockStorage.On("GetFormByCode", mock.Anything, "LOTE-MIEL").Return(form, nil)

	logger := slog.Default()
	handler := GetFormByCode(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/forms?code=LOTE-MIEL", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseForm
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Equal(t, 3, resp.ID)
	assert.Equal(t, "LOTE-MIEL", resp.Code)
	assert.Equal(t, 12, resp.RowCount)
	assert.Len(t, resp.Sections, 1)
	assert.Equal(t, "producto", resp.Sections[0].Columns[0].ID)
	// dependency survives the JSON round trip
	assert.NotNil(t, resp.Sections[0].Columns[2].Dependency)
	assert.Equal(t, storage.CalcPrice, resp.Sections[0].Columns[2].Dependency.Calculation)

	mockStorage.AssertExpectations(t)
}

func TestGetFormByCode_MissingCode(t *testing.T) {
	mockStorage := new(MockFormProvider)
	logger := slog.Default()
	handler := GetFormByCode(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing required query parameter 'code'")

	mockStorage.AssertNotCalled(t, "GetFormByCode")
}

func TestGetFormByCode_NotFound(t *testing.T) {
	mockStorage := new(MockFormProvider)

	mockStorage.On("GetFormByCode", mock.Anything, "UNKNOWN").Return(nil, sql.ErrNoRows)

	logger := slog.Default()
	handler := GetFormByCode(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/forms?code=UNKNOWN", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Form not found")

	mockStorage.AssertExpectations(t)
}

func TestGetFormByCode_DBError(t *testing.T) {
	mockStorage := new(MockFormProvider)

	mockStorage.On("GetFormByCode", mock.Anything, "LOTE-MIEL").Return(nil, errors.New("connection timeout"))

	logger := slog.Default()
	handler := GetFormByCode(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/forms?code=LOTE-MIEL", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal server error")

	mockStorage.AssertExpectations(t)
}

func TestGetAllForms_Success(t *testing.T) {
	mockStorage := new(MockFormProvider)

	forms := []*storage.FormTemplate{
		{ID: 1, Code: "LOTE-MIEL", Name: "Registro de lote de jarabe", Category: "produccion"},
		{ID: 2, Code: "LIMPIEZA", Name: "Bitácora de limpieza", Category: "calidad"},
	}

	mockStorage.On("GetAllForms", mock.Anything).Return(forms, nil)

	logger := slog.Default()
	handler := GetAllForms(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/all", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseAllForms
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Forms, 2)
	assert.Equal(t, "LIMPIEZA", resp.Forms[1].Code)

	mockStorage.AssertExpectations(t)
}
