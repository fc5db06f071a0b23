// Package export renders pricing data as spreadsheets for the back office.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/quote"
)

const (
	catalogSheet = "Item points"
	quoteSheet   = "Quote"
	// numFmtThousands is the builtin "#,##0" format.
	numFmtThousands = 3
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteCatalog writes the catalog grouped by category.
func WriteCatalog(w io.Writer, categories []catalog.Category) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	header := []any{"Category", "Item ID", "Item", "Points", "Default points", "Additional cost (JPY)"}
	if err := f.SetSheetRow(catalogSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	row := 2
	for _, cat := range categories {
		for _, item := range cat.Items {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []any{cat.Name, item.ID, item.Name, item.Points, item.DefaultPoints, item.AdditionalCost}
			if err := f.SetSheetRow(catalogSheet, cell, &values); err != nil {
				return fmt.Errorf("export: row %d: %w", row, err)
			}
			row++
		}
	}
	if err := styleAmounts(f, catalogSheet, "F", row-1); err != nil {
		return err
	}
	if err := f.SetColWidth(catalogSheet, "A", "C", 24); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteQuote writes a two-column breakdown of an estimate.
func WriteQuote(w io.Writer, est quote.Estimate) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", quoteSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	res := est.Result
	seasonLabel := "Season adjustment"
	if est.Season != nil {
		seasonLabel += " (" + est.Season.Name + ")"
	}
	rows := [][]any{
		{"Line", "Amount (JPY)"},
		{"Total points", res.TotalPoints},
		{"Base price", res.BasePrice},
		{"Distance price", res.DistancePrice},
		{"Options", res.OptionPrice},
		{"Item surcharges", res.FlatItemCost},
		{"Subtotal before season", res.SubtotalBeforeSeason},
		{seasonLabel, res.SeasonAdjustment},
		{"Subtotal", res.Subtotal},
		{"Tax", res.TaxAmount},
		{"Total", res.FinalPrice},
	}
	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(quoteSheet, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
	}
	if err := styleAmounts(f, quoteSheet, "B", len(rows)); err != nil {
		return err
	}
	if err := f.SetColWidth(quoteSheet, "A", "A", 32); err != nil {
		return err
	}
	return f.Write(w)
}

func styleAmounts(f *excelize.File, sheet, col string, lastRow int) error {
	if lastRow < 2 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	return f.SetCellStyle(sheet, col+"2", fmt.Sprintf("%s%d", col, lastRow), style)
}
