package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads an XLSX sales export. The first sheet containing
// data rows is used; sellers exporting from spreadsheet tools frequently
// leave empty leading sheets behind.
func (p *Parser) ParseWorkbook(ctx context.Context, r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if hasData(sheetRows) {
			rows = sheetRows
			sheetName = name
			break
		}
	}

	if sheetName == "" {
		return nil, fmt.Errorf("no sheet with sales data found in workbook")
	}

	p.logger.InfoContext(ctx, "reading workbook sheet",
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)))

	return p.parseRows(ctx, rows)
}

func hasData(rows [][]string) bool {
	for _, row := range rows {
		if !isBlankRow(row) {
			return true
		}
	}
	return false
}
