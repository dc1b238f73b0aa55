package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"planta-backend/internal/storage"
)

// GetProducts returns the reference catalog snapshot the engine resolves
// against. Price and weight are nullable for service items.
func (s *Storage) GetProducts(ctx context.Context) ([]storage.Product, error) {
	const op = "storage.mysql.GetProducts"

	query := `SELECT id, name, price, weight FROM planta_products WHERE is_active = TRUE ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []storage.Product

	for rows.Next() {
		var p storage.Product
		var price, weight sql.NullFloat64

		if err := rows.Scan(&p.ID, &p.Name, &price, &weight); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if price.Valid {
			p.Price = &price.Float64
		}
		if weight.Valid {
			p.Weight = &weight.Float64
		}

		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return products, nil
}

func (s *Storage) GetAllEmployees(ctx context.Context) ([]storage.Employee, error) {
	const op = "storage.mysql.GetAllEmployees"

	query := `SELECT id, name FROM planta_employees WHERE is_active = TRUE ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var employees []storage.Employee

	for rows.Next() {
		var e storage.Employee

		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return employees, nil
}
