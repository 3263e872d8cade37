// Package importer parses uploaded spreadsheet files into transaction
// records. Rows that fail validation are skipped, never surfaced to the
// uploader; the reasons are still collected on the result so callers and
// tests can inspect what was dropped.
package importer

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"warehouse-backend/internal/model"
	"warehouse-backend/pkg/apperr"
)

// Fixed column layout of the upload template. An optional transaction date
// sits in column 10.
const (
	colBarcode = iota
	colProductCode
	colProductName
	colQuantity
	colUnit
	colBatchNo
	colGrnNo
	colMaterialType
	colType
	colParty
	colDate
)

// IsSpreadsheet reports whether the file name carries a recognized
// spreadsheet extension.
func IsSpreadsheet(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls")
}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Result struct {
	Transactions []model.Transaction
	Skipped      []SkippedRow
	Read         int
}

// Parse reads the first sheet of the workbook. Row 0 is always treated as a
// header. A row is accepted only if product code, product name and movement
// type are non-blank and the quantity cell parses as a number; everything
// else is dropped into Skipped.
func Parse(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, "Error reading file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Result{}, nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, "Error reading file", err)
	}

	result := &Result{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		result.Read++

		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		quantity, err := decimal.NewFromString(cell(colQuantity))
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Row: i, Reason: "quantity is not a valid number"})
			continue
		}

		transaction := model.Transaction{
			Barcode:      cell(colBarcode),
			ProductCode:  cell(colProductCode),
			ProductName:  cell(colProductName),
			Quantity:     quantity,
			Unit:         cell(colUnit),
			BatchNo:      cell(colBatchNo),
			GrnNo:        cell(colGrnNo),
			MaterialType: model.MaterialType(cell(colMaterialType)),
			Type:         model.TransactionType(cell(colType)),
			Party:        cell(colParty),
		}

		if date, ok := parseDate(cell(colDate)); ok {
			transaction.CreatedAt = date
		} else {
			transaction.CreatedAt = time.Now()
		}

		if transaction.ProductCode == "" || transaction.ProductName == "" || transaction.Type == "" {
			result.Skipped = append(result.Skipped, SkippedRow{Row: i, Reason: "missing product code, product name or type"})
			continue
		}

		result.Transactions = append(result.Transactions, transaction)
	}

	return result, nil
}

var (
	dayMonthYearSlash = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	dayMonthYearDash  = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)
	yearMonthDay      = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
)

// parseDate interprets the optional date cell. Numeric values are taken as
// spreadsheet date serials and converted to server-local time. Textual values
// try D/M/YYYY and D-M-YYYY before YYYY-M-D; the day-first reading wins, so
// an ambiguous 05/04/2023 is April 5. Anything else yields no date and the
// caller falls back to "now".
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		excelDate, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			excelDate.Year(), excelDate.Month(), excelDate.Day(),
			excelDate.Hour(), excelDate.Minute(), excelDate.Second(), 0,
			time.Local,
		), true
	}

	switch {
	case dayMonthYearSlash.MatchString(value):
		parts := strings.Split(value, "/")
		return calendarDate(parts[2], parts[1], parts[0])
	case dayMonthYearDash.MatchString(value):
		parts := strings.Split(value, "-")
		return calendarDate(parts[2], parts[1], parts[0])
	case yearMonthDay.MatchString(value):
		parts := strings.Split(value, "-")
		return calendarDate(parts[0], parts[1], parts[2])
	}
	return time.Time{}, false
}

// calendarDate builds a local midnight timestamp, rejecting values that do
// not name a real calendar day (13/13/2023 must not normalize into 2024).
func calendarDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}
