// Package monthly buckets expense history by calendar month for the
// comparative chart: shared spending per month plus each member's private
// spending. Like the equity split, everything is recomputed from the ledger
// snapshot on demand.
package monthly

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

// Key is a YYYY-MM month bucket key.
type Key = string

// KeyFor returns the bucket key for a date.
func KeyFor(date time.Time) Key {
	return date.Format("2006-01")
}

// Bucket holds one month's expense totals. Shared spending is not attributed
// to an owner at this granularity; private spending is tracked per owner.
type Bucket struct {
	Shared  decimal.Decimal
	Private map[participant.ID]decimal.Decimal
}

func newBucket(participants participant.Set) Bucket {
	private := make(map[participant.ID]decimal.Decimal, participants.Len())
	for _, p := range participants.Members() {
		private[p.ID] = decimal.Zero
	}

	return Bucket{Shared: decimal.Zero, Private: private}
}

// Stats groups expense transactions into month buckets. Months with no
// expenses are simply absent; TrailingWindow fills the gaps.
func Stats(txs []*transaction.Transaction, participants participant.Set) map[Key]Bucket {
	stats := make(map[Key]Bucket)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		key := KeyFor(tx.Date)

		bucket, ok := stats[key]
		if !ok {
			bucket = newBucket(participants)
		}

		switch {
		case tx.Scope == transaction.ScopeShared:
			bucket.Shared = bucket.Shared.Add(tx.Amount)
		case participants.Contains(tx.OwnerID):
			bucket.Private[tx.OwnerID] = bucket.Private[tx.OwnerID].Add(tx.Amount)
		}

		stats[key] = bucket
	}

	return stats
}

// Entry pairs a month key with its bucket, for ordered series.
type Entry struct {
	Key    Key
	Bucket Bucket
}

// TrailingWindow returns the n most recent calendar months ending at the
// month of now, oldest first. Every entry is present: months missing from
// stats get a zero-filled bucket so charts render a gap-free series.
func TrailingWindow(stats map[Key]Bucket, participants participant.Set, n int, now time.Time) []Entry {
	if n <= 0 {
		return nil
	}

	// Normalize to the first of the month so AddDate arithmetic never
	// skips short months.
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	window := make([]Entry, n)

	for i := n - 1; i >= 0; i-- {
		key := KeyFor(month)

		bucket, ok := stats[key]
		if !ok {
			bucket = newBucket(participants)
		}

		window[i] = Entry{Key: key, Bucket: bucket}
		month = month.AddDate(0, -1, 0)
	}

	return window
}
