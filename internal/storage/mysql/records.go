package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"planta-backend/internal/storage"
)

func (s *Storage) GetRecord(ctx context.Context, id int64) (*storage.RecordEntry, error) {
	const op = "storage.mysql.GetRecord"

	query := `
		SELECT id, form_code, name, rows_data, created_at, updated_at
		FROM planta_records
		WHERE id = ?
	`

	record := &storage.RecordEntry{}

	var rowsJSON string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.FormCode,
		&record.Name,
		&rowsJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: record id=%d not found: %w", op, id, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal([]byte(rowsJSON), &record.Rows); err != nil {
		return nil, fmt.Errorf("%s: parse rows JSON: %w", op, err)
	}

	return record, nil
}

func (s *Storage) GetRecordsByForm(ctx context.Context, formCode string) ([]*storage.RecordEntry, error) {
	const op = "storage.mysql.GetRecordsByForm"

	query := `
		SELECT id, form_code, name, created_at, updated_at
		FROM planta_records
		WHERE form_code = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, formCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []*storage.RecordEntry

	for rows.Next() {
		record := &storage.RecordEntry{}

		err := rows.Scan(&record.ID, &record.FormCode, &record.Name, &record.CreatedAt, &record.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return records, nil
}

func (s *Storage) SaveRecord(ctx context.Context, record storage.RecordEntry) (int64, error) {
	const op = "storage.mysql.SaveRecord"

	rowsJSON, err := json.Marshal(record.Rows)
	if err != nil {
		return 0, fmt.Errorf("%s: marshal rows: %w", op, err)
	}

	stmt := `
		INSERT INTO planta_records (form_code, name, rows_data, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
	`

	res, err := s.db.ExecContext(ctx, stmt, record.FormCode, record.Name, string(rowsJSON))
	if err != nil {
		return 0, fmt.Errorf("%s: insert record form=%q: %w", op, record.FormCode, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateRecordRows(ctx context.Context, id int64, rows []storage.Row) error {
	const op = "storage.mysql.UpdateRecordRows"

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%s: marshal rows: %w", op, err)
	}

	stmt := `UPDATE planta_records SET rows_data = ?, updated_at = NOW() WHERE id = ?`

	// RowsAffected is not checked here: MySQL reports 0 when the stored
	// JSON already equals the new snapshot, which is not an error.
	_, err = s.db.ExecContext(ctx, stmt, string(rowsJSON), id)
	if err != nil {
		return fmt.Errorf("%s: update record id=%d: %w", op, id, err)
	}

	return nil
}
