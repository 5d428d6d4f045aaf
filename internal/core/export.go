package core

import (
	"encoding/csv"
	"io"
	"strings"
)

// csvHeader matches the column layout of the original export.
var csvHeader = []string{"Description", "Amount", "Date", "Category", "User"}

// WriteCSV serializes the records to w, one row per record after a header
// row. Amounts carry exactly two decimal places, or "N/A" when the server
// total is absent. Dates use the locale-independent YYYY-MM-DD form. An
// empty record set is an error; the export never emits a header-only file.
func WriteCSV(w io.Writer, records []Expense) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range records {
		amount := "N/A"
		if e.Total != nil {
			amount = e.Total.String()
		}
		row := []string{
			e.Description,
			amount,
			e.Date.Local().Format("2006-01-02"),
			e.Category.Name,
			e.User.Name,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV is WriteCSV into a string.
func ExportCSV(records []Expense) (string, error) {
	var b strings.Builder
	if err := WriteCSV(&b, records); err != nil {
		return "", err
	}
	return b.String(), nil
}
