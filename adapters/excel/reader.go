package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"retcheck/domain/returns"
	"retcheck/internal"
	"retcheck/internal/errors"
)

const utf8BOM = "\ufeff"

// ReturnsReader reads a returns column from CSV or XLSX files. The file type
// is picked from the extension: ".xlsx" goes through excelize, everything
// else is parsed as comma-separated text.
type ReturnsReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewReturnsReader creates a reader; empty config fields take their defaults
func NewReturnsReader(config ReaderConfig, logger *internal.Logger) *ReturnsReader {
	if config.Column == "" {
		config.Column = returns.DefaultColumn
	}
	if logger == nil {
		logger = internal.Discard
	}
	return &ReturnsReader{config: config, logger: logger}
}

// ReadReturns loads the configured column from path
func (r *ReturnsReader) ReadReturns(ctx context.Context, path string) (*returns.Series, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.DataAccessError("no returns file given", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.DataAccessError("read cancelled", err)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.DataAccessError(fmt.Sprintf("returns file not found: %s", path), err)
		}
		return nil, errors.DataAccessError(fmt.Sprintf("cannot stat returns file: %s", path), err)
	}

	startTime := time.Now()
	var (
		rows [][]string
		err  error
	)
	kind := fileTypeOf(path)
	switch kind {
	case fileTypeXLSX:
		rows, err = r.readXLSXRows(path)
	default:
		rows, err = r.readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[ReturnsReader] %s file read in %.2fms (%d rows)",
		kind, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	values, err := r.extractColumn(path, rows)
	if err != nil {
		return nil, err
	}
	r.logger.Info("[ReturnsReader] loaded %d observations of %q from %s", len(values), r.config.Column, path)

	return returns.NewSeries(path, r.config.Column, values), nil
}

type fileType string

const (
	fileTypeCSV  fileType = "csv"
	fileTypeXLSX fileType = "xlsx"
)

func fileTypeOf(path string) fileType {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fileTypeXLSX
	}
	return fileTypeCSV
}

func (r *ReturnsReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.DataAccessError(fmt.Sprintf("failed to open CSV file: %s", path), err)
	}
	defer file.Close()

	return parseCSV(file, path)
}

func parseCSV(src io.Reader, path string) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataAccessError(fmt.Sprintf("failed to read CSV file: %s", path), err)
	}
	return rows, nil
}

func (r *ReturnsReader) readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.DataAccessError(fmt.Sprintf("failed to open Excel file: %s", path), err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, errors.DataAccessError(fmt.Sprintf("Excel file has no sheets: %s", path), nil)
	}

	// Raw values: display text is rounded by the cell's number format
	// ("0.00", "0.00%") and would corrupt or reject stored returns.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.DataAccessError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	return rows, nil
}

// extractColumn finds the returns column in the header row and parses each
// data row. Blank trailing rows are skipped; any other blank or non-numeric
// cell is an error naming its line.
func (r *ReturnsReader) extractColumn(path string, rows [][]string) ([]float64, error) {
	if len(rows) == 0 {
		return nil, errors.DataAccessError(fmt.Sprintf("returns file is empty: %s", path), nil)
	}

	idx := columnIndex(rows[0], r.config.Column)
	if idx < 0 {
		return nil, errors.DataAccessError(
			fmt.Sprintf("column %q not found in header of %s", r.config.Column, path), nil)
	}

	r.logger.Trace("[ReturnsReader] column %q at index %d of %d header fields", r.config.Column, idx, len(rows[0]))

	dataRows := trimTrailingBlankRows(rows[1:])
	values := make([]float64, 0, len(dataRows))
	for i, row := range dataRows {
		line := i + 2
		if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
			return nil, errors.DataAccessError(
				fmt.Sprintf("row %d: missing value in column %q", line, r.config.Column), nil)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return nil, errors.DataAccessError(
				fmt.Sprintf("row %d: value %q in column %q is not numeric", line, row[idx], r.config.Column), err)
		}
		values = append(values, v)
	}
	return values, nil
}

func columnIndex(header []string, column string) int {
	want := strings.TrimSpace(column)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		if strings.EqualFold(h, want) {
			return i
		}
	}
	return -1
}

func trimTrailingBlankRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isBlankRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
