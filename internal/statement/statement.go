// Package statement exports account statements as XLSX workbooks.
package statement

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// SheetName is the name of the only sheet of the workbook.
const SheetName = "Statement"

var header = []interface{}{"Date", "Transaction ID", "Description", "Debit", "Credit", "Balance", "Gateway"}

// Workbook builds the statement workbook. The caller closes the returned file.
func Workbook(s domain.Statement) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]interface{}{
		{"Account Statement"},
		{"Student", s.Account.FullName, "ID", s.Account.Username},
		{"Course", s.Account.Profile.Course},
		{},
		header,
		{"", "", "Opening balance", "", "", moneypkg.Format(s.OpeningBalance), ""},
	}

	for _, t := range s.Transactions {
		debit, credit := "", ""
		if t.Amount.IsNegative() {
			debit = moneypkg.Format(t.Amount.Abs())
		} else {
			credit = moneypkg.Format(t.Amount)
		}

		rows = append(rows, []interface{}{
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.ID,
			t.Description,
			debit,
			credit,
			moneypkg.Format(t.Balance),
			t.Gateway,
		})
	}

	rows = append(rows, []interface{}{"", "", "Closing balance", "", "", moneypkg.Format(s.ClosingBalance), ""})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}

		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 18); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetColWidth(SheetName, "C", "C", 42); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// Write renders the statement workbook to w.
func Write(w io.Writer, s domain.Statement) error {
	f, err := Workbook(s)
	if err != nil {
		return fmt.Errorf("build statement workbook: %w", err)
	}
	defer f.Close()

	return f.Write(w)
}

// Filename is the suggested download name of an account's statement.
func Filename(username string) string {
	return fmt.Sprintf("statement_%s.xlsx", username)
}
