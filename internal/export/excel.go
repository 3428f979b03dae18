// Package export формирует xlsx-отчёты по расчётам комиссионных.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmeshcher/commission-calculator/internal/commission"
	"github.com/mmeshcher/commission-calculator/internal/model"
)

// Имена листов и формат времени в отчётах.
const (
	HistorySheet    = "History"
	ReportSheet     = "Report"
	TimestampLayout = "2006-01-02 15:04:05"
)

// HistoryHeader — заголовок листа истории расчётов.
var HistoryHeader = []interface{}{
	"Timestamp",
	"Employee ID",
	"Full Name",
	"Locks",
	"Stocks",
	"Barrels",
	"Total Sales",
	"Tier 1",
	"Tier 2",
	"Tier 3",
	"Commission Total",
}

func newBook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// WriteHistory записывает в w книгу со списком расчётов в переданном порядке.
func WriteHistory(w io.Writer, records []model.CalculationRecord) error {
	f, err := newBook(HistorySheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := setRow(f, HistorySheet, 1, HistoryHeader); err != nil {
		return err
	}

	for i, r := range records {
		values := []interface{}{
			r.CreatedAt.Format(TimestampLayout),
			r.EmployeeID,
			r.EmployeeName,
			r.Units.Locks,
			r.Units.Stocks,
			r.Units.Barrels,
			r.Sales.InexactFloat64(),
			r.Commission.Tier1.InexactFloat64(),
			r.Commission.Tier2.InexactFloat64(),
			r.Commission.Tier3.InexactFloat64(),
			r.Commission.Total.InexactFloat64(),
		}
		if err := setRow(f, HistorySheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteReport записывает в w книгу с отчётом по одному расчёту на момент at.
func WriteReport(w io.Writer, calc model.Calculation, at time.Time) error {
	f, err := newBook(ReportSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	u := calc.Units
	rows := [][]interface{}{
		{"Report"},
		{"Date", at.Format(TimestampLayout)},
		{"ID", calc.EmployeeID},
		{"Name", calc.EmployeeName},
		{},
		{"Item", "Qty", "Price", "Total"},
		itemRow("Locks", u.Locks, commission.PriceLock.InexactFloat64()),
		itemRow("Stocks", u.Stocks, commission.PriceStock.InexactFloat64()),
		itemRow("Barrels", u.Barrels, commission.PriceBarrel.InexactFloat64()),
		{},
		{"Total Sales", calc.Sales.InexactFloat64()},
		{"Tier 1", calc.Commission.Tier1.InexactFloat64()},
		{"Tier 2", calc.Commission.Tier2.InexactFloat64()},
		{"Tier 3", calc.Commission.Tier3.InexactFloat64()},
		{"Commission", calc.Commission.Total.InexactFloat64()},
	}

	for i, values := range rows {
		if len(values) == 0 {
			continue
		}
		if err := setRow(f, ReportSheet, i+1, values); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func itemRow(name string, qty int, price float64) []interface{} {
	return []interface{}{name, qty, price, float64(qty) * price}
}
