package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"planta-backend/internal/storage"
)

type ReferenceProvider interface {
	GetProducts(ctx context.Context) ([]storage.Product, error)
	GetAllEmployees(ctx context.Context) ([]storage.Employee, error)
}

// GetProducts serves the catalog snapshot the record forms resolve product
// references against.
func GetProducts(log *slog.Logger, reference ReferenceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.GetProducts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		products, err := reference.GetProducts(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch products")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, products)
	}
}

func GetEmployees(log *slog.Logger, reference ReferenceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.products.GetEmployees"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		employees, err := reference.GetAllEmployees(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch employees")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, employees)
	}
}
