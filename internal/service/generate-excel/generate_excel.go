package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"planta-backend/internal/engine"
	"planta-backend/internal/storage"
)

type ReportStorage interface {
	GetRecord(ctx context.Context, id int64) (*storage.RecordEntry, error)
	GetFormByCode(ctx context.Context, code string) (*storage.FormTemplate, error)
}

type GenerateExcelService struct {
	storage ReportStorage
}

func NewGenerateService(storage ReportStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// GenerateExcel renders one record as a workbook: section titles merged
// over their columns on row 1, column headers on row 2, data below.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, recordID int64) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	record, err := g.storage.GetRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	form, err := g.storage.GetFormByCode(ctx, record.FormCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Registro"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	col := 1
	for _, sec := range form.Sections {
		if len(sec.Columns) == 0 {
			continue
		}

		start, _ := excelize.CoordinatesToCellName(col, 1)
		end, _ := excelize.CoordinatesToCellName(col+len(sec.Columns)-1, 1)
		f.SetCellValue(sheet, start, sec.Title)
		if len(sec.Columns) > 1 {
			f.MergeCell(sheet, start, end)
		}

		for _, c := range sec.Columns {
			cell, _ := excelize.CoordinatesToCellName(col, 2)
			f.SetCellValue(sheet, cell, c.Header)
			col++
		}
	}

	columns := engine.Flatten(form.Sections)

	if len(columns) > 0 {
		lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 2)
		f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)
	}

	for rowIdx, row := range record.Rows {
		for i, c := range columns {
			value, ok := row[c.ID]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+3)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}
