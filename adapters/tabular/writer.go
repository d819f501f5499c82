package tabular

import (
	"fmt"
	"io"
	"math"

	"penguinlab/domain/dataset"
	"penguinlab/internal/errors"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteXLSX writes the table as an Excel workbook: one header row followed
// by one row per observation. Missing cells are left empty.
func WriteXLSX(t *dataset.Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for c := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return errors.RenderError("invalid export coordinates", err)
		}
		if err := f.SetCellValue(exportSheet, cell, t.Columns[c].Name); err != nil {
			return errors.RenderError("failed to write export header", err)
		}
	}

	rows := t.NumRows()
	for r := 0; r < rows; r++ {
		for c := range t.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.RenderError("invalid export coordinates", err)
			}
			col := &t.Columns[c]
			if col.Kind == dataset.KindNumeric {
				v := col.Numbers[r]
				if math.IsNaN(v) {
					continue
				}
				if err := f.SetCellValue(exportSheet, cell, v); err != nil {
					return errors.RenderError(fmt.Sprintf("failed to write cell %s", cell), err)
				}
				continue
			}
			if col.Labels[r] == "" {
				continue
			}
			if err := f.SetCellValue(exportSheet, cell, col.Labels[r]); err != nil {
				return errors.RenderError(fmt.Sprintf("failed to write cell %s", cell), err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.RenderError("failed to write workbook", err)
	}
	return nil
}
