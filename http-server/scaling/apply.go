package scaling

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

type Scaler interface {
	ApplyScaling(ctx context.Context, recordID int64, productID string, quantity float64) ([]storage.Row, bool, error)
}

type Resp struct {
	Rows    []storage.Row `json:"rows"`
	Applied bool          `json:"applied"`
}

// ApplyScaling fills the record's ingredient rows from the product's fixed
// formula scaled by the batch quantity. `applied=false` without an error
// means the table has no scaling anchors, the product is unknown or has no
// formula, or the quantity is not scalable — the UI shows a notice, the
// record is untouched.
func ApplyScaling(log *slog.Logger, scaler Scaler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scaling.ApplyScaling"

		var req struct {
			RecordID  int64   `json:"record_id"`
			ProductID string  `json:"product_id"`
			Quantity  float64 `json:"quantity"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.ProductID == "" {
			http.Error(w, "Missing product_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, applied, err := scaler.ApplyScaling(ctx, req.RecordID, req.ProductID, req.Quantity)
		if err != nil {
			if strings.Contains(err.Error(), "not found") || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Record not found", http.StatusNotFound)
				return
			}

			log.Error("Failed to apply scaling", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{Rows: rows, Applied: applied})
	}
}
