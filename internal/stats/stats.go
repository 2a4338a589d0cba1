// Package stats derives presentation statistics from the transactions
// collection. Everything here is a pure function of its inputs; nothing is
// persisted.
package stats

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mononote/internal/date"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
)

// Fixed breakdown palettes. Income and expense categories draw from their
// own palette, assigned in the order categories are first encountered in the
// transaction list. Changing the order would change which color a category
// gets across runs, so it stays as-is.
var (
	IncomePalette  = []string{"#34d399", "#10b981", "#059669", "#047857", "#065f46", "#064e3b"}
	ExpensePalette = []string{"#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d"}
)

// Summary is the whole-ledger aggregate.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Total   decimal.Decimal // Income - Expense
}

// Summarize computes the ledger summary in a single pass.
func Summarize(txs []ledger.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case ledger.TypeIncome:
			income = income.Add(tx.Amount)
		case ledger.TypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	return Summary{
		Income:  income,
		Expense: expense,
		Total:   income.Sub(expense),
	}
}

// CategoryStat is one (type, category) group of a day's transactions.
type CategoryStat struct {
	Type     ledger.Type
	Category string
	Amount   decimal.Decimal
	Color    string
}

// DayStats aggregates a single calendar day.
type DayStats struct {
	Date    date.Date
	Income  decimal.Decimal
	Expense decimal.Decimal
	// TotalVolume is income plus expense, the denominator for percentage
	// displays. It is not the day's net.
	TotalVolume decimal.Decimal
	// Breakdown is sorted by amount descending.
	Breakdown []CategoryStat
	// Transactions holds the day's entries, newest first.
	Transactions []ledger.Transaction
}

// Percent returns amount as a percentage of the day's total volume, or zero
// when the day has no volume.
func (d DayStats) Percent(amount decimal.Decimal) float64 {
	if d.TotalVolume.IsZero() {
		return 0
	}

	pct, _ := amount.Div(d.TotalVolume).Mul(decimal.NewFromInt(100)).Float64()

	return pct
}

// Daily filters txs to the given calendar date and aggregates them.
func Daily(txs []ledger.Transaction, day date.Date) DayStats {
	stats := DayStats{
		Date:    day,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	type groupKey struct {
		typ      ledger.Type
		category string
	}

	groups := make(map[groupKey]int)
	nextColor := map[ledger.Type]int{}

	for _, tx := range txs {
		if tx.Date != day {
			continue
		}

		stats.Transactions = append(stats.Transactions, tx)

		switch tx.Type {
		case ledger.TypeIncome:
			stats.Income = stats.Income.Add(tx.Amount)
		case ledger.TypeExpense:
			stats.Expense = stats.Expense.Add(tx.Amount)
		default:
			continue
		}

		key := groupKey{typ: tx.Type, category: tx.Category}

		idx, ok := groups[key]
		if !ok {
			idx = len(stats.Breakdown)
			groups[key] = idx
			stats.Breakdown = append(stats.Breakdown, CategoryStat{
				Type:     tx.Type,
				Category: tx.Category,
				Amount:   decimal.Zero,
				Color:    pickColor(tx.Type, nextColor),
			})
		}

		stats.Breakdown[idx].Amount = stats.Breakdown[idx].Amount.Add(tx.Amount)
	}

	stats.TotalVolume = stats.Income.Add(stats.Expense)

	slices.SortStableFunc(stats.Breakdown, func(a, b CategoryStat) int {
		return b.Amount.Cmp(a.Amount)
	})

	slices.SortStableFunc(stats.Transactions, func(a, b ledger.Transaction) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}

		return 0
	})

	return stats
}

// pickColor hands out the next palette color for the type, wrapping around
// when a day has more categories than the palette has entries.
func pickColor(typ ledger.Type, nextColor map[ledger.Type]int) string {
	palette := ExpensePalette
	if typ == ledger.TypeIncome {
		palette = IncomePalette
	}

	color := palette[nextColor[typ]%len(palette)]
	nextColor[typ]++

	return color
}
