package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as a dollar string with two decimal places and
// comma-grouped thousands, e.g. 1234567.5 becomes "$1,234,567.50".
func FormatUSD(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatInt renders an integer with comma-grouped thousands.
func FormatInt(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := groupThousands(decimal.NewFromInt(n).String())
	if neg {
		return "-" + s
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
