// Package model содержит доменные сущности сервиса расчёта комиссионных.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitCounts содержит количество проданных единиц каждого вида товара.
type UnitCounts struct {
	Locks   int `json:"locks"`
	Stocks  int `json:"stocks"`
	Barrels int `json:"barrels"`
}

// CommissionBreakdown описывает комиссию в разрезе ступеней шкалы.
// Total всегда равен сумме Tier1, Tier2 и Tier3.
type CommissionBreakdown struct {
	Tier1 decimal.Decimal `json:"tier1"`
	Tier2 decimal.Decimal `json:"tier2"`
	Tier3 decimal.Decimal `json:"tier3"`
	Total decimal.Decimal `json:"total"`
}

// ValidationResult описывает результат проверки одного поля ввода.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// CalculationInput содержит сырые текстовые значения формы расчёта.
type CalculationInput struct {
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Locks      string `json:"locks"`
	Stocks     string `json:"stocks"`
	Barrels    string `json:"barrels"`
}

// Calculation содержит результат расчёта по прошедшим проверку данным.
type Calculation struct {
	EmployeeID   string
	EmployeeName string
	Units        UnitCounts
	Sales        decimal.Decimal
	Commission   CommissionBreakdown
}

// CalculationRecord — неизменяемый снимок сохранённого расчёта.
type CalculationRecord struct {
	ID           string
	CreatedAt    time.Time
	EmployeeID   string
	EmployeeName string
	Units        UnitCounts
	Sales        decimal.Decimal
	Commission   CommissionBreakdown
}

// Названия полей формы, используемые в результатах проверки.
const (
	FieldEmployeeID = "employee_id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldLocks      = "locks"
	FieldStocks     = "stocks"
	FieldBarrels    = "barrels"
)

// FormValidation содержит результаты проверки всех полей формы.
type FormValidation map[string]ValidationResult

// Valid сообщает, прошли ли проверку все поля формы.
func (f FormValidation) Valid() bool {
	for _, r := range f {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Errors возвращает сообщения об ошибках только для непрошедших полей.
func (f FormValidation) Errors() map[string]string {
	errs := make(map[string]string)
	for field, r := range f {
		if !r.Valid {
			errs[field] = r.Error
		}
	}
	return errs
}
