package tabular

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"penguinlab/domain/dataset"
	"penguinlab/internal/errors"

	"github.com/xuri/excelize/v2"
)

//go:embed data/penguins.csv
var bundled embed.FS

// missing tokens accepted in source files
func isMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN", "null":
		return true
	}
	return false
}

// LoadBundled parses the penguin dataset compiled into the binary.
func LoadBundled() (*dataset.Table, error) {
	raw, err := bundled.ReadFile("data/penguins.csv")
	if err != nil {
		return nil, errors.DatasetError("bundled dataset missing from binary", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, errors.DatasetError("bundled dataset is not valid CSV", err)
	}
	table, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	table.Name = "penguins"
	return table, nil
}

// DataReader handles reading Excel and CSV files into a Table
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the configured file into a Table
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DatasetError(fmt.Sprintf("data file not found: %s", r.filePath), err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
	if err != nil {
		return nil, err
	}

	table, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	table.Name = strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return table, nil
}

// readExcelRows reads the first sheet of an Excel workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DatasetError("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.DatasetError("Excel workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.DatasetError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	return rows, nil
}

// readCSVRows reads CSV data
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DatasetError("failed to open CSV file", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.DatasetError("failed to read CSV file", err)
	}
	return rows, nil
}

// parseRows converts raw string rows into a Table. Column kinds follow the
// penguin schema when the header matches; unknown columns are inferred by
// whether their non-missing cells parse as numbers.
func parseRows(rows [][]string) (*dataset.Table, error) {
	if len(rows) < 2 {
		return nil, errors.DatasetError("data file must have a header row and at least one data row", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &dataset.Table{Columns: make([]dataset.Column, len(headers))}
	for c, name := range headers {
		cells := make([]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			cell := ""
			if c < len(row) {
				cell = strings.TrimSpace(row[c])
			}
			cells = append(cells, cell)
		}

		if columnIsNumeric(name, cells) {
			numbers := make([]float64, len(cells))
			for i, cell := range cells {
				if isMissing(cell) {
					numbers[i] = math.NaN()
					continue
				}
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.DatasetError(
						fmt.Sprintf("column %q row %d: %q is not numeric", name, i+2, cell), err)
				}
				numbers[i] = v
			}
			table.Columns[c] = dataset.Column{Name: name, Kind: dataset.KindNumeric, Numbers: numbers}
			continue
		}

		labels := make([]string, len(cells))
		for i, cell := range cells {
			if isMissing(cell) {
				labels[i] = ""
				continue
			}
			labels[i] = cell
		}
		table.Columns[c] = dataset.Column{Name: name, Kind: dataset.KindCategorical, Labels: labels}
	}

	return table, nil
}

// columnIsNumeric decides the column kind. Schema columns are fixed (year
// stays categorical for modeling); anything else is numeric when every
// non-missing cell parses as a float.
func columnIsNumeric(name string, cells []string) bool {
	switch name {
	case dataset.ColSpecies, dataset.ColIsland, dataset.ColSex, dataset.ColYear:
		return false
	}
	if dataset.NumericSchema[name] {
		return true
	}

	seen := false
	for _, cell := range cells {
		if isMissing(cell) {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return seen
}
