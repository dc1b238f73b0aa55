package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"planta-backend/internal/storage"
)

// Sections live in a JSON column; the designer is the only writer, data
// entry only reads.

func (s *Storage) GetFormByCode(ctx context.Context, code string) (*storage.FormTemplate, error) {
	const op = "storage.mysql.GetFormByCode"

	query := `
		SELECT id, code, name, category, sections, row_count, extensible
		FROM planta_form_templates
		WHERE code = ? AND is_active = TRUE
	`

	form := &storage.FormTemplate{}

	var sectionsJSON string
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&form.ID,
		&form.Code,
		&form.Name,
		&form.Category,
		&sectionsJSON,
		&form.RowCount,
		&form.Extensible,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: form code=%q not found: %w", op, code, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal([]byte(sectionsJSON), &form.Sections); err != nil {
		return nil, fmt.Errorf("%s: parse sections JSON: %w", op, err)
	}

	return form, nil
}

func (s *Storage) GetAllForms(ctx context.Context) ([]*storage.FormTemplate, error) {
	const op = "storage.mysql.GetAllForms"

	stmt := `SELECT id, code, name, category, row_count, extensible FROM planta_form_templates WHERE is_active = TRUE`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var forms []*storage.FormTemplate

	for rows.Next() {
		form := &storage.FormTemplate{}

		err := rows.Scan(&form.ID, &form.Code, &form.Name, &form.Category, &form.RowCount, &form.Extensible)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		forms = append(forms, form)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return forms, nil
}

func (s *Storage) GetFormByCodeAdmin(ctx context.Context, code string) (*storage.FormTemplate, error) {
	const op = "storage.mysql.GetFormByCodeAdmin"

	query := `
		SELECT id, code, name, category, sections, row_count, extensible, is_active, head_name
		FROM planta_form_templates
		WHERE code = ?
	`

	form := &storage.FormTemplate{}

	var sectionsJSON string
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&form.ID,
		&form.Code,
		&form.Name,
		&form.Category,
		&sectionsJSON,
		&form.RowCount,
		&form.Extensible,
		&form.IsActive,
		&form.HeadName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: form code=%q not found: %w", op, code, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal([]byte(sectionsJSON), &form.Sections); err != nil {
		return nil, fmt.Errorf("%s: parse sections JSON: %w", op, err)
	}

	return form, nil
}

func (s *Storage) SaveForm(ctx context.Context, form storage.FormTemplate) (int64, error) {
	const op = "storage.mysql.SaveForm"

	sectionsJSON, err := json.Marshal(form.Sections)
	if err != nil {
		return 0, fmt.Errorf("%s: marshal sections: %w", op, err)
	}

	stmt := `
		INSERT INTO planta_form_templates (code, name, category, sections, row_count, extensible, is_active, head_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, stmt,
		form.Code,
		form.Name,
		form.Category,
		string(sectionsJSON),
		form.RowCount,
		form.Extensible,
		form.IsActive,
		form.HeadName,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: insert form code=%q: %w", op, form.Code, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateForm(ctx context.Context, code string, form storage.FormTemplate) error {
	const op = "storage.mysql.UpdateForm"

	sectionsJSON, err := json.Marshal(form.Sections)
	if err != nil {
		return fmt.Errorf("%s: marshal sections: %w", op, err)
	}

	stmt := `
		UPDATE planta_form_templates
		SET name = ?, category = ?, sections = ?, row_count = ?, extensible = ?, is_active = ?, head_name = ?
		WHERE code = ?
	`

	res, err := s.db.ExecContext(ctx, stmt,
		form.Name,
		form.Category,
		string(sectionsJSON),
		form.RowCount,
		form.Extensible,
		form.IsActive,
		form.HeadName,
		code,
	)
	if err != nil {
		return fmt.Errorf("%s: update form code=%q: %w", op, code, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: form code=%q not found: %w", op, code, sql.ErrNoRows)
	}

	return nil
}
