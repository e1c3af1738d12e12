package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cloo-solutions/docqa/internal/domain"
)

// extractSpreadsheet loads an xls/xlsx workbook and serializes every sheet
// as tab-separated rows, preserving sheet, row, and column order.
func extractSpreadsheet(data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeDecode, "could not open spreadsheet", err)
	}
	defer workbook.Close()

	var out string
	for i, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", domain.NewDomainErrorWithCause(domain.ErrCodeDecode, "could not read spreadsheet rows", err)
		}
		if i > 0 {
			out += "\n"
		}
		out += serializeRows(rows)
	}
	return out, nil
}

// extractCSV parses delimited text into rows and serializes them the same
// way as spreadsheets.
func extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Ragged rows are common in hand-edited CSVs; accept them.
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", domain.NewDomainErrorWithCause(domain.ErrCodeDecode, "could not parse CSV content", err)
		}
		rows = append(rows, record)
	}
	return serializeRows(rows), nil
}
