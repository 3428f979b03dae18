// Package commission реализует расчёт суммы продаж и ступенчатой комиссии.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/commission-calculator/internal/model"
)

// Цены за единицу товара.
var (
	PriceLock   = decimal.NewFromInt(45)
	PriceStock  = decimal.NewFromInt(30)
	PriceBarrel = decimal.NewFromInt(25)
)

// Tier описывает одну ступень шкалы: ставку и ширину диапазона продаж.
// Нулевой Width означает ступень без верхней границы.
type Tier struct {
	Rate  decimal.Decimal
	Width decimal.Decimal
}

// Schedule — прогрессивная шкала: 10% с первых 1000, 15% со следующих 800,
// 20% со всего, что выше 1800.
var Schedule = [3]Tier{
	{Rate: decimal.RequireFromString("0.10"), Width: decimal.NewFromInt(1000)},
	{Rate: decimal.RequireFromString("0.15"), Width: decimal.NewFromInt(800)},
	{Rate: decimal.RequireFromString("0.20")},
}

// ComputeSalesAmount возвращает сумму продаж по количеству единиц каждого товара.
// Входные значения не проверяются.
func ComputeSalesAmount(locks, stocks, barrels int) decimal.Decimal {
	return PriceLock.Mul(decimal.NewFromInt(int64(locks))).
		Add(PriceStock.Mul(decimal.NewFromInt(int64(stocks)))).
		Add(PriceBarrel.Mul(decimal.NewFromInt(int64(barrels))))
}

// ComputeCommission применяет шкалу Schedule к сумме продаж.
// Отрицательная сумма считается нулевой.
func ComputeCommission(sales decimal.Decimal) model.CommissionBreakdown {
	remaining := sales
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var tiers [len(Schedule)]decimal.Decimal
	for i, t := range Schedule {
		if !t.Width.IsZero() && remaining.GreaterThan(t.Width) {
			tiers[i] = t.Width.Mul(t.Rate)
			remaining = remaining.Sub(t.Width)
			continue
		}
		tiers[i] = remaining.Mul(t.Rate)
		remaining = decimal.Zero
	}

	return model.CommissionBreakdown{
		Tier1: tiers[0],
		Tier2: tiers[1],
		Tier3: tiers[2],
		Total: tiers[0].Add(tiers[1]).Add(tiers[2]),
	}
}

// Compute считает сумму продаж и комиссию для набора единиц.
func Compute(units model.UnitCounts) (decimal.Decimal, model.CommissionBreakdown) {
	sales := ComputeSalesAmount(units.Locks, units.Stocks, units.Barrels)
	return sales, ComputeCommission(sales)
}
