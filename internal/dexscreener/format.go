package dexscreener

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	decOne      = decimal.NewFromInt(1)
	decCent     = decimal.RequireFromString("0.01")
	decThousand = decimal.NewFromInt(1_000)
	decMillion  = decimal.NewFromInt(1_000_000)
)

// FormatPrice renders a price with tiered precision: 2 decimals at or above
// 1, 4 decimals down to 0.01, 8 decimals below that. Always fixed notation,
// never exponents.
func FormatPrice(price float64) string {
	return formatPrice(decimal.NewFromFloat(price))
}

// FormatPriceString is FormatPrice for the string prices the upstream sends.
// Unparseable input renders as "0.00".
func FormatPriceString(price string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return "0.00"
	}
	return formatPrice(d)
}

func formatPrice(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(decOne):
		return d.StringFixed(2)
	case d.GreaterThanOrEqual(decCent):
		return d.StringFixed(4)
	default:
		return d.StringFixed(8)
	}
}

// FormatPriceChange renders a percentage change with two decimals and an
// explicit sign: "+" for zero or positive, "-" for negative. strconv keeps
// the sign on values that round to zero, which decimal would drop.
func FormatPriceChange(change float64) string {
	if change < 0 {
		return strconv.FormatFloat(change, 'f', 2, 64) + "%"
	}
	return "+" + strconv.FormatFloat(change, 'f', 2, 64) + "%"
}

// FormatUsdValue renders a dollar amount with M/K suffixes: $1.23M from a
// million up, $4.56K from a thousand up, plain two decimals below that.
func FormatUsdValue(value float64) string {
	d := decimal.NewFromFloat(value)
	switch {
	case d.GreaterThanOrEqual(decMillion):
		return "$" + d.Div(decMillion).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(decThousand):
		return "$" + d.Div(decThousand).StringFixed(2) + "K"
	default:
		return "$" + d.StringFixed(2)
	}
}
