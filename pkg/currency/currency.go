// Package currency formats decimal monetary amounts for API responses.
// Amounts are carried as decimals end to end; formatting happens only at the
// response boundary.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Formatter struct {
	code   string
	symbol string
}

func NewFormatter(code, symbol string) *Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "GHS"
	}
	if strings.TrimSpace(symbol) == "" {
		symbol = "GH₵"
	}
	return &Formatter{code: code, symbol: symbol}
}

func (f *Formatter) Code() string { return f.code }

// Format renders an amount with thousands separators and two decimal places,
// e.g. "GH₵1,150.00". Negative amounts keep the sign ahead of the symbol.
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + f.symbol + group(amount.StringFixed(2))
}

func group(fixed string) string {
	whole, frac, _ := strings.Cut(fixed, ".")
	if len(whole) <= 3 {
		return whole + "." + frac
	}
	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String() + "." + frac
}
