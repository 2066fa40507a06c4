package importer

import (
	"io"

	"github.com/lbarreto/equifinance/internal/transaction"
)

// Format names a supported CSV layout.
type Format string

const (
	// FormatPlanilha is the household spreadsheet export layout
	// (Portuguese or English headers, auto-detected).
	FormatPlanilha Format = "planilha"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
