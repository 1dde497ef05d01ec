// Package sheet provides raw-sheet providers that turn uploaded workbooks
// into the row maps the dataset builder consumes.
package sheet

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/flightops/flight-kpi-engine/internal/domain"
)

// Provider parses an uploaded workbook into raw sheets.
type Provider interface {
	Parse(r io.Reader) ([]domain.RawSheet, error)
}

// ExcelProvider reads xlsx workbooks. Each worksheet becomes one RawSheet:
// the first non-empty row is the header, every following row a RawRow keyed
// by header text. Cells with no value are omitted from the row map so
// downstream defaults apply.
type ExcelProvider struct {
	logger zerolog.Logger
}

// NewExcelProvider creates an xlsx sheet provider.
func NewExcelProvider(logger zerolog.Logger) *ExcelProvider {
	return &ExcelProvider{
		logger: logger.With().Str("component", "excel_provider").Logger(),
	}
}

// compile-time interface check
var _ Provider = (*ExcelProvider)(nil)

// Parse reads every worksheet in the workbook. Worksheets without a header
// row are skipped; an unreadable workbook is a schema error.
func (p *ExcelProvider) Parse(r io.Reader) ([]domain.RawSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.WrapSchema("failed to open workbook: %v", err)
	}
	defer f.Close()

	var sheets []domain.RawSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			p.logger.Warn().Err(err).Str("sheet", name).Msg("skipping unreadable worksheet")
			continue
		}

		header, headerIdx := findHeader(rows)
		if header == nil {
			p.logger.Debug().Str("sheet", name).Msg("no header row, skipping worksheet")
			continue
		}

		sheet := domain.RawSheet{Name: name, Rows: []domain.RawRow{}}
		for _, cells := range rows[headerIdx+1:] {
			row := domain.RawRow{}
			for col, key := range header {
				if key == "" || col >= len(cells) {
					continue
				}
				if v := strings.TrimSpace(cells[col]); v != "" {
					row[key] = v
				}
			}
			if len(row) > 0 {
				sheet.Rows = append(sheet.Rows, row)
			}
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// findHeader locates the first row with at least one non-empty cell and
// returns its trimmed cell texts and index.
func findHeader(rows [][]string) ([]string, int) {
	for i, cells := range rows {
		header := make([]string, len(cells))
		found := false
		for col, cell := range cells {
			header[col] = strings.TrimSpace(cell)
			if header[col] != "" {
				found = true
			}
		}
		if found {
			return header, i
		}
	}
	return nil, -1
}
