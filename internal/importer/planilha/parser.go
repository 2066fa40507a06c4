package planilha

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/lbarreto/equifinance/internal/encoding"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	// The delimiter depends on the exporting tool; try semicolon first
	// (the common choice alongside decimal commas), then comma.
	for _, comma := range []rune{';', ','} {
		rows, err := readRows(string(raw), comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no recognized header row: expected Portuguese (Data;Valor;...) or English (Date,Amount,...) columns")
}

func readRows(raw string, comma rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans the leading rows for a header matching a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows maps data rows into transaction params. Blank rows are skipped;
// a malformed cell fails the whole file with its row number so the user can
// fix the export rather than silently losing entries.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	var params []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		if isBlank(row) {
			continue
		}

		date, err := parseDate(cellValue(row, cols[p.DateCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		amount, err := parseAmount(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		txType, err := parseType(p, cellValue(row, cols[p.TypeCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		scope, err := parseScope(p, cellValue(row, cols[p.ScopeCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		owner := cellValue(row, cols[p.OwnerCol])
		if owner == "" {
			return nil, fmt.Errorf("row %d: missing owner", rowNum)
		}

		param := transaction.CreateParams{
			Amount:   amount,
			Type:     txType,
			Category: cellValue(row, cols[p.CategoryCol]),
			Date:     date,
			OwnerID:  participant.ID(strings.ToLower(owner)),
			Scope:    scope,
		}

		if idx, ok := cols[p.InstallmentsCol]; ok && p.InstallmentsCol != "" {
			if v := cellValue(row, idx); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil || n < 1 {
					return nil, fmt.Errorf("row %d: invalid installments %q", rowNum, v)
				}

				if n > 1 {
					param.Card = &transaction.CardDetails{Installments: n, StartDate: date}
				}
			}
		}

		params = append(params, param)
	}

	return params, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseType(p *Profile, s string) (transaction.Type, error) {
	v := strings.ToLower(s)

	for _, e := range p.ExpenseValues {
		if v == e {
			return transaction.TypeExpense, nil
		}
	}

	for _, inc := range p.IncomeValues {
		if v == inc {
			return transaction.TypeIncome, nil
		}
	}

	return "", fmt.Errorf("unknown transaction type %q", s)
}

func parseScope(p *Profile, s string) (transaction.Scope, error) {
	v := strings.ToLower(s)

	for _, sh := range p.SharedValues {
		if v == sh {
			return transaction.ScopeShared, nil
		}
	}

	for _, pr := range p.PrivateValues {
		if v == pr {
			return transaction.ScopePrivate, nil
		}
	}

	return "", fmt.Errorf("unknown scope %q", s)
}
