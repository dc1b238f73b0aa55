package save

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"planta-backend/internal/storage"
)

type RecordCreator interface {
	GetFormByCode(ctx context.Context, code string) (*storage.FormTemplate, error)
	SaveRecord(ctx context.Context, record storage.RecordEntry) (int64, error)
}

type Resp struct {
	ID   int64         `json:"id"`
	Rows []storage.Row `json:"rows"`
}

// SaveRecord instantiates a record from a form template, blank-filling the
// configured number of rows.
func SaveRecord(log *slog.Logger, records RecordCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.records.SaveRecord"

		var req struct {
			FormCode string `json:"form_code"`
			Name     string `json:"name"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.FormCode == "" {
			http.Error(w, "Missing form_code", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		form, err := records.GetFormByCode(ctx, req.FormCode)
		if err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Form not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch form")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		rowCount := form.RowCount
		if rowCount <= 0 {
			rowCount = 1
		}
		rows := make([]storage.Row, rowCount)
		for i := range rows {
			rows[i] = storage.Row{}
		}

		id, err := records.SaveRecord(ctx, storage.RecordEntry{
			FormCode: req.FormCode,
			Name:     req.Name,
			Rows:     rows,
		})
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save record")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{ID: id, Rows: rows})
	}
}
