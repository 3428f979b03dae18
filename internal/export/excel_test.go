package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mmeshcher/commission-calculator/internal/commission"
	"github.com/mmeshcher/commission-calculator/internal/model"
)

func sampleRecord(id string, at time.Time, units model.UnitCounts) model.CalculationRecord {
	sales, c := commission.Compute(units)
	return model.CalculationRecord{
		ID:           id,
		CreatedAt:    at,
		EmployeeID:   "EMP001",
		EmployeeName: "John Smith",
		Units:        units,
		Sales:        sales,
		Commission:   c,
	}
}

func readRows(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteHistory(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	records := []model.CalculationRecord{
		sampleRecord("2", at.Add(time.Minute), model.UnitCounts{Locks: 20, Stocks: 20, Barrels: 20}),
		sampleRecord("1", at, model.UnitCounts{Locks: 10, Stocks: 10, Barrels: 10}),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, records))

	rows := readRows(t, &buf, HistorySheet)
	require.Len(t, rows, 3)

	header := make([]string, len(HistoryHeader))
	for i, h := range HistoryHeader {
		header[i] = h.(string)
	}
	assert.Equal(t, header, rows[0])

	assert.Equal(t, []string{
		"2024-03-01 10:31:00", "EMP001", "John Smith", "20", "20", "20",
		"2000", "100", "120", "40", "260",
	}, rows[1])
	assert.Equal(t, []string{
		"2024-03-01 10:30:00", "EMP001", "John Smith", "10", "10", "10",
		"1000", "100", "0", "0", "100",
	}, rows[2])
}

func TestWriteHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, nil))

	rows := readRows(t, &buf, HistorySheet)
	require.Len(t, rows, 1)
	assert.Equal(t, "Timestamp", rows[0][0])
}

func TestWriteReport(t *testing.T) {
	units := model.UnitCounts{Locks: 10, Stocks: 20, Barrels: 30}
	sales, c := commission.Compute(units)
	calc := model.Calculation{
		EmployeeID:   "EMP001",
		EmployeeName: "John Smith",
		Units:        units,
		Sales:        sales,
		Commission:   c,
	}
	require.True(t, decimal.NewFromInt(1800).Equal(sales))

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, calc, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(name string) string {
		v, err := f.GetCellValue(ReportSheet, name)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Report", cell("A1"))
	assert.Equal(t, "2024-03-01 09:00:00", cell("B2"))
	assert.Equal(t, "EMP001", cell("B3"))
	assert.Equal(t, "John Smith", cell("B4"))
	assert.Equal(t, "Item", cell("A6"))
	assert.Equal(t, "Locks", cell("A7"))
	assert.Equal(t, "450", cell("D7"))
	assert.Equal(t, "600", cell("D8"))
	assert.Equal(t, "750", cell("D9"))
	assert.Equal(t, "1800", cell("B11"))
	assert.Equal(t, "120", cell("B13"))
	assert.Equal(t, "220", cell("B15"))
}
