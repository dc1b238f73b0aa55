package recalculate

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

type Recalculator interface {
	RecalculateRecord(ctx context.Context, recordID int64) ([]storage.Row, bool, error)
}

type Resp struct {
	Rows    []storage.Row `json:"rows"`
	Changed bool          `json:"changed"`
}

// RecalculateRecord re-derives every dependency-bearing cell of a stored
// record against the current product snapshot. The host calls this after a
// reference-data refresh; `changed=false` means the record was already
// consistent and nothing was written.
func RecalculateRecord(log *slog.Logger, calc Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recalculate.RecalculateRecord"

		var req struct {
			RecordID int64 `json:"record_id"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, changed, err := calc.RecalculateRecord(ctx, req.RecordID)
		if err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Record not found", http.StatusNotFound)
				return
			}

			log.Error("Failed to recalculate record", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{Rows: rows, Changed: changed})
	}
}
