// Package currency owns all presentation-level handling of money: turning
// amounts into display strings and recovering amounts from display strings.
// The rest of the application treats formatted amounts as opaque.
package currency

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kartika/bujet/internal/common"
)

// symbols maps ISO-ish currency codes to their display symbols.
var symbols = map[string]string{
	"IDR": "Rp",
	"USD": "$",
	"EUR": "€",
	"JPY": "¥",
	"GBP": "£",
}

// Symbol returns the display symbol for a currency code. Unknown codes fall
// back to "CODE " so amounts stay readable.
func Symbol(code string) string {
	if s, ok := symbols[strings.ToUpper(code)]; ok {
		return s
	}
	return strings.ToUpper(code) + " "
}

// Formatter renders amounts with a fixed currency symbol.
type Formatter struct {
	symbol string
}

// NewFormatter creates a formatter for the given currency code or symbol.
// A known code is translated to its symbol; anything else is used verbatim.
func NewFormatter(codeOrSymbol string) Formatter {
	if s, ok := symbols[strings.ToUpper(codeOrSymbol)]; ok {
		return Formatter{symbol: s}
	}
	return Formatter{symbol: codeOrSymbol}
}

// Symbol returns the formatter's currency symbol.
func (f Formatter) Symbol() string {
	return f.symbol
}

// Format renders an amount as "<symbol><grouped integer>", e.g. "Rp1,500,000".
func (f Formatter) Format(amount float64) string {
	return f.symbol + FormatNumber(amount)
}

// FormatNumber renders an amount with thousands separators and no decimal
// places, matching the display convention used throughout the reports.
func FormatNumber(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// Parse recovers a numeric amount from a formatted string by stripping the
// symbol and separators, e.g. "Rp1,500,000" -> 1500000.
func Parse(formatted string) (float64, error) {
	var b strings.Builder
	for _, r := range formatted {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: %q contains no digits", common.ErrInvalidAmount, formatted)
	}

	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, formatted)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %q is negative", common.ErrInvalidAmount, formatted)
	}
	return amount, nil
}

// ExtractSymbol pulls the currency symbol out of a formatted amount: every
// rune that is not a digit, separator, or decimal point. Used to preserve
// the original currency when regenerating display strings.
func ExtractSymbol(formatted string) string {
	var b strings.Builder
	for _, r := range formatted {
		if !unicode.IsDigit(r) && r != ',' && r != '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
