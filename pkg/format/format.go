// Package format renders amounts, dates and account numbers for display.
// The locale is fixed to Mexican Spanish (es-MX) with MXN amounts.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// Currency renders a decimal as MXN currency, always with two decimals:
// 1500.5 -> "$1,500.50".
func Currency(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("$%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// Amount renders a decimal with es-MX digit grouping and no forced
// decimals, the way the public payment page shows it: 1500.5 -> "1,500.5".
func Amount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(2)))
}

// Date renders DD/MM/YYYY.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// MaskAccount hides the middle of a CLABE for list views, keeping the first
// and last four digits. Strings too short to mask are returned unchanged.
func MaskAccount(clabe string) string {
	if len(clabe) < 8 {
		return clabe
	}
	return clabe[:4] + "..." + clabe[len(clabe)-4:]
}
