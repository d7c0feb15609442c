package services

import (
	"io"

	"github.com/xuri/excelize/v2"

	"kasatakip/internal/money"
)

// ReportSheet is the worksheet name of exported reports.
const ReportSheet = "Rapor"

var reportHeaders = []string{"Tarih", "Kasa", "Tür", "Açıklama", "Cari/Kişi", "Tutar", "Para Birimi"}

// WriteReportXLSX renders r as an Excel workbook: one row per entry followed
// by the per-currency totals.
func WriteReportXLSX(r *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ReportSheet, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, t := range r.Transactions {
		safeName, currencyName := "", ""
		if t.Safe != nil {
			safeName = t.Safe.Name
		}
		if t.Currency != nil {
			currencyName = t.Currency.Symbol
		}
		amount, _ := money.Round(t.Amount).Float64()
		values := []interface{}{
			t.TransactionDate.Format("02.01.2006 15:04"),
			safeName,
			t.Type.Label(),
			t.Description,
			t.PayeeOrPayer,
			amount,
			currencyName,
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setRow(f, row, []interface{}{"Toplamlar", "", "Gelir", "Gider", "Net"}); err != nil {
		return err
	}
	row++
	for _, cb := range r.Totals {
		values := []interface{}{
			cb.CurrencyName,
			cb.Symbol,
			money.Number(cb.Income),
			money.Number(cb.Expense),
			money.Number(cb.Balance),
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ReportSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
