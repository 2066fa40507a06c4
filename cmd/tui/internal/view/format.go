package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const opTimeout = 5 * time.Second

// FormatAmount renders a monetary amount with the household currency prefix.
func FormatAmount(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// OpCtx returns a context with a standard timeout for service operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
