package equity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbarreto/equifinance/internal/equity"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

func tx(owner participant.ID, amount string, typ transaction.Type, scope transaction.Scope, date string) *transaction.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}

	return &transaction.Transaction{
		Amount:  decimal.RequireFromString(amount),
		Type:    typ,
		Scope:   scope,
		OwnerID: owner,
		Date:    d,
	}
}

func shareByID(t *testing.T, split equity.Split, id participant.ID) equity.Share {
	t.Helper()

	for _, s := range split.Shares {
		if s.Participant.ID == id {
			return s
		}
	}

	t.Fatalf("no share for %q", id)

	return equity.Share{}
}

func TestParsePeriod(t *testing.T) {
	p, err := equity.ParsePeriod("all")
	require.NoError(t, err)
	assert.True(t, p.IsAll())

	p, err = equity.ParsePeriod("")
	require.NoError(t, err)
	assert.True(t, p.IsAll())

	p, err = equity.ParsePeriod("2024-05")
	require.NoError(t, err)
	assert.False(t, p.IsAll())
	assert.Equal(t, "2024-05", p.String())

	_, err = equity.ParsePeriod("05/2024")
	assert.Error(t, err)

	_, err = equity.ParsePeriod("2024-13")
	assert.Error(t, err)
}

func TestSplitShared_MonthScope(t *testing.T) {
	// Scenario: two shared expenses in the same month, one each.
	ledger := []*transaction.Transaction{
		tx(participant.Leo, "100", transaction.TypeExpense, transaction.ScopeShared, "2024-05-01"),
		tx(participant.Cris, "50", transaction.TypeExpense, transaction.ScopeShared, "2024-05-02"),
	}

	split := equity.SplitShared(ledger, participant.Default(), equity.Month("2024-05"))

	assert.True(t, split.TotalShared.Equal(decimal.RequireFromString("150")))

	leo := shareByID(t, split, participant.Leo)
	cris := shareByID(t, split, participant.Cris)

	assert.True(t, leo.Total.Equal(decimal.RequireFromString("100")))
	assert.True(t, cris.Total.Equal(decimal.RequireFromString("50")))

	// Display rounding gives 66.67 / 33.33.
	assert.Equal(t, "66.67", leo.Percent.StringFixed(2))
	assert.Equal(t, "33.33", cris.Percent.StringFixed(2))

	// Full-precision percentages still sum to 100 within tolerance.
	sum, _ := leo.Percent.Add(cris.Percent).Float64()
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestSplitShared_EmptyLedger(t *testing.T) {
	split := equity.SplitShared(nil, participant.Default(), equity.All())

	assert.True(t, split.TotalShared.IsZero())

	for _, share := range split.Shares {
		assert.True(t, share.Total.IsZero())
		assert.Equal(t, "50", share.Percent.String())
	}
}

func TestSplitShared_ExcludesPrivateAndIncome(t *testing.T) {
	ledger := []*transaction.Transaction{
		tx(participant.Leo, "100", transaction.TypeExpense, transaction.ScopeShared, "2024-05-01"),
		// None of these may enter the split.
		tx(participant.Cris, "999", transaction.TypeExpense, transaction.ScopePrivate, "2024-05-02"),
		tx(participant.Leo, "5000", transaction.TypeIncome, transaction.ScopeShared, "2024-05-03"),
		tx(participant.Cris, "3000", transaction.TypeIncome, transaction.ScopePrivate, "2024-05-04"),
	}

	split := equity.SplitShared(ledger, participant.Default(), equity.All())

	assert.True(t, split.TotalShared.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, "100", shareByID(t, split, participant.Leo).Percent.String())
	assert.Equal(t, "0", shareByID(t, split, participant.Cris).Percent.String())
}

func TestSplitShared_MonthFilter(t *testing.T) {
	ledger := []*transaction.Transaction{
		tx(participant.Leo, "100", transaction.TypeExpense, transaction.ScopeShared, "2024-05-01"),
		tx(participant.Cris, "40", transaction.TypeExpense, transaction.ScopeShared, "2024-06-01"),
	}

	may := equity.SplitShared(ledger, participant.Default(), equity.Month("2024-05"))
	assert.True(t, may.TotalShared.Equal(decimal.RequireFromString("100")))

	june := equity.SplitShared(ledger, participant.Default(), equity.Month("2024-06"))
	assert.True(t, june.TotalShared.Equal(decimal.RequireFromString("40")))

	all := equity.SplitShared(ledger, participant.Default(), equity.All())
	assert.True(t, all.TotalShared.Equal(decimal.RequireFromString("140")))

	// A month with no shared spending falls back to the equal split.
	empty := equity.SplitShared(ledger, participant.Default(), equity.Month("2024-07"))
	assert.True(t, empty.TotalShared.IsZero())
	assert.Equal(t, "50", shareByID(t, empty, participant.Leo).Percent.String())
}

func TestSplitShared_PercentSumProperty(t *testing.T) {
	// Awkward amounts that do not divide evenly.
	ledger := []*transaction.Transaction{
		tx(participant.Leo, "33.33", transaction.TypeExpense, transaction.ScopeShared, "2024-05-01"),
		tx(participant.Cris, "66.67", transaction.TypeExpense, transaction.ScopeShared, "2024-05-02"),
		tx(participant.Leo, "0.01", transaction.TypeExpense, transaction.ScopeShared, "2024-05-03"),
	}

	split := equity.SplitShared(ledger, participant.Default(), equity.All())

	sum := decimal.Zero
	for _, share := range split.Shares {
		sum = sum.Add(share.Percent)
	}

	f, _ := sum.Float64()
	assert.InDelta(t, 100.0, f, 1e-9)
}

func TestSplitShared_Deterministic(t *testing.T) {
	ledger := []*transaction.Transaction{
		tx(participant.Leo, "12.34", transaction.TypeExpense, transaction.ScopeShared, "2024-05-01"),
		tx(participant.Cris, "56.78", transaction.TypeExpense, transaction.ScopeShared, "2024-05-02"),
	}

	first := equity.SplitShared(ledger, participant.Default(), equity.All())
	second := equity.SplitShared(ledger, participant.Default(), equity.All())

	assert.Equal(t, first, second)
}

func TestIncome(t *testing.T) {
	ledger := []*transaction.Transaction{
		tx(participant.Leo, "4000", transaction.TypeIncome, transaction.ScopeShared, "2024-05-05"),
		tx(participant.Cris, "3500", transaction.TypeIncome, transaction.ScopePrivate, "2024-05-06"),
		tx(participant.Cris, "200", transaction.TypeIncome, transaction.ScopeShared, "2024-06-01"),
		tx(participant.Leo, "100", transaction.TypeExpense, transaction.ScopeShared, "2024-05-07"),
	}

	sum := equity.Income(ledger, equity.Month("2024-05"), participant.Cris)

	// Household income ignores scope; expenses never count.
	assert.True(t, sum.Household.Equal(decimal.RequireFromString("7500")))
	assert.True(t, sum.Personal.Equal(decimal.RequireFromString("3500")))

	all := equity.Income(ledger, equity.All(), participant.Cris)
	assert.True(t, all.Household.Equal(decimal.RequireFromString("7700")))
	assert.True(t, all.Personal.Equal(decimal.RequireFromString("3700")))
}
