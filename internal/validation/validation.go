// Package validation содержит функции проверки введённых оператором данных.
package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/commission-calculator/internal/model"
)

// Сообщения об ошибках проверки.
const (
	MsgQuantityRequired   = "quantity required."
	MsgNoSpaces           = "no spaces allowed."
	MsgNumbersOnly        = "numbers only."
	MsgIntegerOnly        = "integer only."
	MsgIdentifierRequired = "identifier required."
	MsgLettersDigitsOnly  = "letters/digits only."
	MsgIdentifierShort    = "too short (3-10 characters)."
	MsgIdentifierLong     = "too long (max 10 characters)."
	MsgNoDigitsSymbols    = "no digits/symbols allowed."
	MsgNameShort          = "too short."
)

const (
	employeeIDMinLen = 3
	employeeIDMaxLen = 10
	nameMinLen       = 2
)

// Bounds задаёт допустимый диапазон количества единиц товара.
type Bounds struct {
	Min int
	Max int
}

// Диапазоны количества для каждого вида товара.
var (
	LocksBounds   = Bounds{Min: 1, Max: 70}
	StocksBounds  = Bounds{Min: 1, Max: 80}
	BarrelsBounds = Bounds{Min: 1, Max: 90}
)

var validate = validator.New()

func valid() model.ValidationResult {
	return model.ValidationResult{Valid: true}
}

func invalid(msg string) model.ValidationResult {
	return model.ValidationResult{Valid: false, Error: msg}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// parseNumber разбирает десятичную запись числа, в том числе с экспонентой.
// Бесконечность считается числом, но не целым, поэтому isInf сообщается отдельно.
func parseNumber(text string) (num decimal.Decimal, isInf bool, err error) {
	if strings.TrimLeft(text, "+-") == "Infinity" && len(text) <= len("Infinity")+1 {
		return decimal.Decimal{}, true, nil
	}
	num, err = decimal.NewFromString(text)
	return num, false, err
}

// Порядок, начиная с которого модуль числа заведомо больше любой границы.
const hugeExponent = 18

// isInteger не раскрывает экспоненту дальше числа цифр коэффициента.
func isInteger(d decimal.Decimal) bool {
	if d.IsZero() || d.Exponent() >= 0 {
		return true
	}
	if -int(d.Exponent()) > d.NumDigits() {
		return false
	}
	return d.IsInteger()
}

// compareInt сравнивает целое d с bound.
func compareInt(d decimal.Decimal, bound int) int {
	if d.IsZero() {
		d = decimal.Zero
	}
	if d.Exponent() > hugeExponent {
		return d.Sign()
	}
	return d.Cmp(decimal.NewFromInt(int64(bound)))
}

// ValidateUnitCount проверяет текстовое значение количества единиц товара.
// Правила применяются по порядку, возвращается первая найденная ошибка.
func ValidateUnitCount(text string, min, max int) model.ValidationResult {
	if isBlank(text) {
		return invalid(MsgQuantityRequired)
	}
	if hasSpace(text) {
		return invalid(MsgNoSpaces)
	}

	num, isInf, err := parseNumber(text)
	if err != nil {
		return invalid(MsgNumbersOnly)
	}
	if isInf || !isInteger(num) {
		return invalid(MsgIntegerOnly)
	}

	if compareInt(num, min) < 0 {
		return invalid(fmt.Sprintf("value must be between %d and %d.", min, max))
	}
	if compareInt(num, max) > 0 {
		return invalid(fmt.Sprintf("value must not exceed %d.", max))
	}

	return valid()
}

// ValidateBounded проверяет количество единиц с диапазоном b.
func ValidateBounded(text string, b Bounds) model.ValidationResult {
	return ValidateUnitCount(text, b.Min, b.Max)
}

// ParseUnitCount преобразует прошедшее проверку значение количества в целое число.
func ParseUnitCount(text string) (int, error) {
	num, isInf, err := parseNumber(text)
	if err != nil {
		return 0, fmt.Errorf("parse unit count %q: %w", text, err)
	}
	if isInf || !isInteger(num) ||
		compareInt(num, math.MinInt32) < 0 || compareInt(num, math.MaxInt32) > 0 {
		return 0, fmt.Errorf("unit count %q is not an integer in range", text)
	}
	return int(num.IntPart()), nil
}

// ValidateEmployeeID проверяет табельный номер сотрудника:
// только латинские буквы и цифры, от 3 до 10 символов.
func ValidateEmployeeID(text string) model.ValidationResult {
	if isBlank(text) {
		return invalid(MsgIdentifierRequired)
	}
	if hasSpace(text) {
		return invalid(MsgNoSpaces)
	}
	if err := validate.Var(text, "alphanum"); err != nil {
		return invalid(MsgLettersDigitsOnly)
	}
	if len(text) < employeeIDMinLen {
		return invalid(MsgIdentifierShort)
	}
	if len(text) > employeeIDMaxLen {
		return invalid(MsgIdentifierLong)
	}
	return valid()
}

// NormalizeEmployeeID приводит табельный номер к виду, в котором он хранится.
func NormalizeEmployeeID(text string) string {
	return strings.ToUpper(text)
}

// ValidateNameField проверяет имя или фамилию. fieldLabel подставляется
// в сообщение о незаполненном поле.
func ValidateNameField(text, fieldLabel string) model.ValidationResult {
	if isBlank(text) {
		return invalid(fieldLabel + " required.")
	}
	for _, r := range text {
		if !isNameRune(r) {
			return invalid(MsgNoDigitsSymbols)
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < nameMinLen {
		return invalid(MsgNameShort)
	}
	return valid()
}

// isNameRune допускает латиницу, тайские буквы с огласовками и тоновыми
// знаками, а также пробельные символы. Тайские цифры и знаки препинания
// не допускаются.
func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= 0x0E01 && r <= 0x0E3A:
		return true
	case r >= 0x0E40 && r <= 0x0E4E:
		return true
	default:
		return unicode.IsSpace(r)
	}
}
