package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"planta-backend/internal/engine"
	"planta-backend/internal/storage"
)

type FormSaver interface {
	SaveForm(ctx context.Context, form storage.FormTemplate) (int64, error)
}

type Resp struct {
	ID int64 `json:"id"`
}

// SaveFormAdmin creates a form template. Invalid dependency configurations
// (chains, self references, missing anchors for totals) are rejected here,
// at design time, so data entry never has to.
func SaveFormAdmin(log *slog.Logger, forms FormSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forms.SaveFormAdmin"

		var form storage.FormTemplate
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if form.Code == "" {
			http.Error(w, "Missing form code", http.StatusBadRequest)
			return
		}

		if err := engine.ValidateSections(form.Sections); err != nil {
			log.With(slog.String("op", op), slog.String("code", form.Code)).Warn("Invalid form configuration", slog.String("error", err.Error()))
			http.Error(w, "Invalid form configuration: "+err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := forms.SaveForm(ctx, form)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save form")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{ID: id})
	}
}
