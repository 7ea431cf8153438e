package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func typeKeys(a *AmountInput, keys string) {
	for i := 0; i < len(keys); i++ {
		if keys[i] == '.' {
			a.AppendDecimal()
			continue
		}
		a.AppendDigit(keys[i])
	}
}

func TestAmountInputParsesCents(t *testing.T) {
	var a AmountInput
	typeKeys(&a, "250.5")

	assert.Equal(t, "250.5", a.String())
	assert.Equal(t, int64(25050), a.Cents())

	a.AppendDigit('7')
	assert.Equal(t, int64(25057), a.Cents())
}

func TestAmountInputRejectsThirdDecimal(t *testing.T) {
	var a AmountInput
	typeKeys(&a, "1.23")

	a.AppendDigit('9')

	assert.Equal(t, "1.23", a.String())
}

func TestAmountInputSingleDecimalPoint(t *testing.T) {
	var a AmountInput
	typeKeys(&a, "12.3")

	a.AppendDecimal()

	assert.Equal(t, "12.3", a.String())
}

func TestAmountInputLeadingDecimal(t *testing.T) {
	var a AmountInput
	a.AppendDecimal()
	a.AppendDigit('5')

	assert.Equal(t, "0.5", a.String())
	assert.Equal(t, int64(50), a.Cents())
}

func TestAmountInputBackspaceAndClear(t *testing.T) {
	var a AmountInput
	typeKeys(&a, "100.00")

	a.Backspace()
	assert.Equal(t, "100.0", a.String())
	assert.Equal(t, int64(10000), a.Cents())

	a.Clear()
	assert.Equal(t, "", a.String())
	assert.Equal(t, int64(0), a.Cents())
}

func TestAmountInputDanglingPointIsZeroFraction(t *testing.T) {
	var a AmountInput
	typeKeys(&a, "42.")

	assert.Equal(t, int64(4200), a.Cents())
}

func TestAmountInputSetFormatsCents(t *testing.T) {
	var a AmountInput
	a.Set(17250)

	assert.Equal(t, "172.50", a.String())
	assert.Equal(t, int64(17250), a.Cents())

	a.Set(23005)
	assert.Equal(t, "230.05", a.String())
}
