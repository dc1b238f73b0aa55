package get

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"planta-backend/internal/storage"
)

type FormProvider interface {
	GetFormByCode(ctx context.Context, code string) (*storage.FormTemplate, error)
	GetAllForms(ctx context.Context) ([]*storage.FormTemplate, error)

	GetFormByCodeAdmin(ctx context.Context, code string) (*storage.FormTemplate, error)
}

type ResponseForm struct {
	ID         int                    `json:"ID"`
	Code       string                 `json:"code"`
	Name       string                 `json:"name"`
	Category   string                 `json:"category"`
	Sections   []storage.TableSection `json:"sections"`
	RowCount   int                    `json:"row_count"`
	Extensible bool                   `json:"extensible"`
}

func GetFormByCode(log *slog.Logger, forms FormProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forms.GetFormByCode"

		code := r.URL.Query().Get("code")
		if code == "" {
			log.With(slog.String("op", op)).Error("Missing 'code' in query parameters")
			http.Error(w, "Missing required query parameter 'code'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		form, err := forms.GetFormByCode(ctx, code)
		if err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				log.With(slog.String("op", op), slog.String("code", code)).Warn("Form not found")
				http.Error(w, "Form not found", http.StatusNotFound)
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("code", code),
				slog.String("error", err.Error()),
			).Error("Failed to fetch form")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := ResponseForm{
			ID:         form.ID,
			Code:       form.Code,
			Name:       form.Name,
			Category:   form.Category,
			Sections:   form.Sections,
			RowCount:   form.RowCount,
			Extensible: form.Extensible,
		}

		render.JSON(w, r, response)
	}
}

type ResponseAllForms struct {
	Forms []*storage.FormTemplate `json:"forms"`
	Error string                  `json:"error"`
}

func GetAllForms(log *slog.Logger, forms FormProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forms.GetAllForms"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		all, err := forms.GetAllForms(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch forms")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseAllForms{Forms: all})
	}
}

// GetFormByCodeAdmin returns the template including inactive ones and
// designer-only fields.
func GetFormByCodeAdmin(log *slog.Logger, forms FormProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forms.GetFormByCodeAdmin"

		code := r.URL.Query().Get("code")
		if code == "" {
			log.With(slog.String("op", op)).Error("Missing 'code' in query parameters")
			http.Error(w, "Missing required query parameter 'code'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		form, err := forms.GetFormByCodeAdmin(ctx, code)
		if err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Form not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch form")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, form)
	}
}
