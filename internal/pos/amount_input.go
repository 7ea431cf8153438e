package pos

import (
	"strconv"
	"strings"
)

// AmountInput models the numeric keypad used to type a manual tender
// amount: digits, a single decimal point, backspace and clear. It only
// ever holds the manually entered amount; it never touches the ledger.
type AmountInput struct {
	value string
}

// AppendDigit adds a digit (0-9). More than two decimal places are
// rejected, as is anything that is not a digit.
func (a *AmountInput) AppendDigit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	if dot := strings.IndexByte(a.value, '.'); dot >= 0 && len(a.value)-dot > 2 {
		return
	}
	a.value += string(d)
}

// AppendDecimal adds the decimal point. A second point is ignored.
func (a *AmountInput) AppendDecimal() {
	if strings.Contains(a.value, ".") {
		return
	}
	if a.value == "" {
		a.value = "0"
	}
	a.value += "."
}

// Backspace removes the last character.
func (a *AmountInput) Backspace() {
	if a.value != "" {
		a.value = a.value[:len(a.value)-1]
	}
}

// Clear resets the input.
func (a *AmountInput) Clear() {
	a.value = ""
}

// Set replaces the input with a cent amount (used by the quick-amount presets).
func (a *AmountInput) Set(cents int64) {
	a.value = strconv.FormatInt(cents/100, 10) + "." + twoDigits(cents%100)
}

// String returns the raw typed value.
func (a *AmountInput) String() string {
	return a.value
}

// Cents parses the typed value into cents. An empty or dangling-point
// input parses as zero.
func (a *AmountInput) Cents() int64 {
	v := strings.TrimSuffix(a.value, ".")
	if v == "" {
		return 0
	}
	whole, frac := v, ""
	if dot := strings.IndexByte(v, '.'); dot >= 0 {
		whole, frac = v[:dot], v[dot+1:]
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0
	}
	cents := w * 100
	switch len(frac) {
	case 1:
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f * 10
	case 2:
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f
	}
	return cents
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
