package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/commission-calculator/internal/model"
)

func TestValidateUnitCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ValidationResult
	}{
		{name: "empty", text: "", want: invalid(MsgQuantityRequired)},
		{name: "whitespace only", text: "   ", want: invalid(MsgQuantityRequired)},
		{name: "embedded space", text: "1 0", want: invalid(MsgNoSpaces)},
		{name: "leading space", text: " 10", want: invalid(MsgNoSpaces)},
		{name: "tab", text: "1\t0", want: invalid(MsgNoSpaces)},
		{name: "letters", text: "abc", want: invalid(MsgNumbersOnly)},
		{name: "mixed", text: "12a", want: invalid(MsgNumbersOnly)},
		{name: "nan", text: "NaN", want: invalid(MsgNumbersOnly)},
		{name: "short infinity", text: "Inf", want: invalid(MsgNumbersOnly)},
		{name: "digit separator", text: "1_0", want: invalid(MsgNumbersOnly)},
		{name: "hex float", text: "0x1p4", want: invalid(MsgNumbersOnly)},
		{name: "infinity", text: "Infinity", want: invalid(MsgIntegerOnly)},
		{name: "negative infinity", text: "-Infinity", want: invalid(MsgIntegerOnly)},
		{name: "double sign infinity", text: "+-Infinity", want: invalid(MsgNumbersOnly)},
		{name: "fraction", text: "1.5", want: invalid(MsgIntegerOnly)},
		{name: "below min", text: "0", want: invalid("value must be between 1 and 70.")},
		{name: "negative", text: "-3", want: invalid("value must be between 1 and 70.")},
		{name: "above max", text: "71", want: invalid("value must not exceed 70.")},
		{name: "at max", text: "70", want: valid()},
		{name: "at min", text: "1", want: valid()},
		{name: "integral float", text: "5.0", want: valid()},
		{name: "exponent", text: "1e1", want: valid()},
		{name: "fractional exponent", text: "15e-1", want: invalid(MsgIntegerOnly)},
		{name: "scaled integer", text: "700e-1", want: valid()},
		{name: "large exponent", text: "1e300", want: invalid("value must not exceed 70.")},
		{name: "large negative exponent", text: "-1e300", want: invalid("value must be between 1 and 70.")},
		{name: "tiny fraction", text: "1e-2000000000", want: invalid(MsgIntegerOnly)},
		{name: "zero with exponent", text: "0e2000000000", want: invalid("value must be between 1 and 70.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateUnitCount(tt.text, 1, 70)
			if got != tt.want {
				t.Fatalf("ValidateUnitCount(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidateBounded_UsesFieldRange(t *testing.T) {
	assert.True(t, ValidateBounded("80", StocksBounds).Valid)
	assert.Equal(t, "value must not exceed 70.", ValidateBounded("80", LocksBounds).Error)
	assert.True(t, ValidateBounded("90", BarrelsBounds).Valid)
	assert.Equal(t, "value must not exceed 90.", ValidateBounded("91", BarrelsBounds).Error)
	assert.Equal(t, "value must be between 1 and 80.", ValidateBounded("0", StocksBounds).Error)
}

func TestParseUnitCount(t *testing.T) {
	n, err := ParseUnitCount("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = ParseUnitCount("1e1")
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = ParseUnitCount("x")
	assert.Error(t, err)

	_, err = ParseUnitCount("2.5")
	assert.Error(t, err)

	for _, text := range []string{"1_0", "0x1p4", "Infinity", "1e20"} {
		_, err = ParseUnitCount(text)
		assert.Error(t, err, text)
	}
}

func TestValidateEmployeeID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ValidationResult
	}{
		{name: "empty", text: "", want: invalid(MsgIdentifierRequired)},
		{name: "whitespace only", text: " \t", want: invalid(MsgIdentifierRequired)},
		{name: "embedded space", text: "EM P1", want: invalid(MsgNoSpaces)},
		{name: "symbol", text: "EMP-01", want: invalid(MsgLettersDigitsOnly)},
		{name: "non ascii letter", text: "ÉMP01", want: invalid(MsgLettersDigitsOnly)},
		{name: "too short", text: "AB", want: invalid(MsgIdentifierShort)},
		{name: "too long", text: "EMP12345678", want: invalid(MsgIdentifierLong)},
		{name: "valid", text: "EMP001", want: valid()},
		{name: "lower case", text: "emp001", want: valid()},
		{name: "exactly three", text: "A1B", want: valid()},
		{name: "exactly ten", text: "ABCDE12345", want: valid()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateEmployeeID(tt.text)
			if got != tt.want {
				t.Fatalf("ValidateEmployeeID(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmployeeID(t *testing.T) {
	assert.Equal(t, "EMP001", NormalizeEmployeeID("emp001"))
}

func TestValidateNameField(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ValidationResult
	}{
		{name: "empty", text: "", want: invalid("first name required.")},
		{name: "whitespace only", text: "  ", want: invalid("first name required.")},
		{name: "digits", text: "John123", want: invalid(MsgNoDigitsSymbols)},
		{name: "apostrophe", text: "O'Brien", want: invalid(MsgNoDigitsSymbols)},
		{name: "thai digits", text: "สมชาย๑", want: invalid(MsgNoDigitsSymbols)},
		{name: "single letter", text: "J", want: invalid(MsgNameShort)},
		{name: "single letter padded", text: " J ", want: invalid(MsgNameShort)},
		{name: "latin", text: "John", want: valid()},
		{name: "interior space", text: "Mary Ann", want: valid()},
		{name: "thai", text: "สมชาย", want: valid()},
		{name: "thai with tone mark", text: "น้ำ", want: valid()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateNameField(tt.text, "first name")
			if got != tt.want {
				t.Fatalf("ValidateNameField(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidateNameField_LabelInMessage(t *testing.T) {
	got := ValidateNameField("", "last name")
	assert.False(t, got.Valid)
	assert.Equal(t, "last name required.", got.Error)
}
