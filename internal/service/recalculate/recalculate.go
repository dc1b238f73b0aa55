package recalculate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"planta-backend/internal/engine"
	"planta-backend/internal/storage"
)

type RecordStorage interface {
	GetRecord(ctx context.Context, id int64) (*storage.RecordEntry, error)
	GetFormByCode(ctx context.Context, code string) (*storage.FormTemplate, error)
	GetProducts(ctx context.Context) ([]storage.Product, error)
	UpdateRecordRows(ctx context.Context, id int64, rows []storage.Row) error
}

// RecalcService keeps the derived cells of stored records consistent. Each
// public method runs exactly one engine pass and persists at most once.
type RecalcService struct {
	storage RecordStorage
}

func NewRecalcService(storage RecordStorage) *RecalcService {
	return &RecalcService{storage: storage}
}

// RecalculateRecord re-runs the dependency pass for a stored record against
// the current product snapshot, persisting only when something changed.
// Called after a reference-data refresh.
func (s *RecalcService) RecalculateRecord(ctx context.Context, recordID int64) ([]storage.Row, bool, error) {
	const op = "service.recalculate.RecalculateRecord"

	record, err := s.storage.GetRecord(ctx, recordID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	form, products, err := s.fetchContext(ctx, record.FormCode)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	rows, changed := engine.Recalculate(form.Sections, record.Rows, products)
	if changed {
		if err := s.storage.UpdateRecordRows(ctx, recordID, rows); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}

	return rows, changed, nil
}

// SaveRows persists an edited row snapshot, running one dependency pass
// first so derived cells are consistent before anything hits the database.
func (s *RecalcService) SaveRows(ctx context.Context, recordID int64, rows []storage.Row) ([]storage.Row, bool, error) {
	const op = "service.recalculate.SaveRows"

	record, err := s.storage.GetRecord(ctx, recordID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	form, products, err := s.fetchContext(ctx, record.FormCode)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	recalced, changed := engine.Recalculate(form.Sections, rows, products)
	if err := s.storage.UpdateRecordRows(ctx, recordID, recalced); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return recalced, changed, nil
}

// ApplyScaling scales the record's ingredient rows from the formula catalog
// and follows with one dependency pass. Missing anchors, an unknown product
// or an unscalable quantity make it a no-op (applied=false, no error); the
// caller decides whether to tell the user.
func (s *RecalcService) ApplyScaling(ctx context.Context, recordID int64, productID string, quantity float64) ([]storage.Row, bool, error) {
	const op = "service.recalculate.ApplyScaling"

	record, err := s.storage.GetRecord(ctx, recordID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	form, products, err := s.fetchContext(ctx, record.FormCode)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	anchors, ok := engine.FindScalingAnchors(form.Sections)
	if !ok {
		return record.Rows, false, nil
	}

	product, ok := engine.FindProduct(products, productID)
	if !ok {
		return record.Rows, false, nil
	}

	if len(engine.ScaleFormula(product.Name, quantity)) == 0 {
		return record.Rows, false, nil
	}

	rows := engine.ApplyScaling(record.Rows, anchors, product.Name, quantity)
	rows, _ = engine.Recalculate(form.Sections, rows, products)

	if err := s.storage.UpdateRecordRows(ctx, recordID, rows); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return rows, true, nil
}

// fetchContext loads the form template and the product snapshot in
// parallel; both reads are independent.
func (s *RecalcService) fetchContext(ctx context.Context, formCode string) (*storage.FormTemplate, []storage.Product, error) {
	var (
		form     *storage.FormTemplate
		products []storage.Product
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		form, err = s.storage.GetFormByCode(gCtx, formCode)
		if err != nil {
			return fmt.Errorf("form: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.storage.GetProducts(gCtx)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return form, products, nil
}
