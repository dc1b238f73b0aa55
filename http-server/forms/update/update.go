package update

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"planta-backend/internal/engine"
	"planta-backend/internal/storage"
)

type FormUpdater interface {
	UpdateForm(ctx context.Context, code string, form storage.FormTemplate) error
}

// UpdateFormAdmin replaces a form template. Same validation gate as save:
// a configuration the engine cannot evaluate never reaches the database.
func UpdateFormAdmin(log *slog.Logger, forms FormUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forms.UpdateFormAdmin"

		code := chi.URLParam(r, "code")
		if code == "" {
			http.Error(w, "Missing form code", http.StatusBadRequest)
			return
		}

		var form storage.FormTemplate
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := engine.ValidateSections(form.Sections); err != nil {
			log.With(slog.String("op", op), slog.String("code", code)).Warn("Invalid form configuration", slog.String("error", err.Error()))
			http.Error(w, "Invalid form configuration: "+err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := forms.UpdateForm(ctx, code, form); err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Form not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to update form")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
