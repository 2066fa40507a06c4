package planilha

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a spreadsheet money cell. Accepts an optional "R$"
// prefix, Brazilian formatting (1.234,56) and plain decimals (1234.56).
// Amounts are magnitudes; negatives are rejected since direction is carried
// by the type column.
func parseAmount(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if v == "" {
		return decimal.Decimal{}, fmt.Errorf("missing amount")
	}

	if strings.Contains(v, ",") {
		// Comma is the decimal separator; dots are thousand separators.
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q", s)
	}

	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %q", s)
	}

	return d, nil
}
