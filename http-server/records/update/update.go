package update

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"planta-backend/internal/storage"
)

type RowSaver interface {
	SaveRows(ctx context.Context, recordID int64, rows []storage.Row) ([]storage.Row, bool, error)
}

type Resp struct {
	Rows    []storage.Row `json:"rows"`
	Changed bool          `json:"changed"`
}

// UpdateRecordRows stores an edited row snapshot. The service runs one
// dependency pass before persisting, so the response carries the rows with
// derived cells already filled and a flag saying whether anything was
// recomputed.
func UpdateRecordRows(log *slog.Logger, saver RowSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.records.UpdateRecordRows"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid record id", http.StatusBadRequest)
			return
		}

		var req struct {
			Rows []storage.Row `json:"rows"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, changed, err := saver.SaveRows(ctx, id, req.Rows)
		if err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Record not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to update record rows")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{Rows: rows, Changed: changed})
	}
}
