package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mononote/internal/date"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is a single ledger entry. Date is the user-editable calendar
// date the transaction belongs to; Timestamp is the creation instant in
// epoch milliseconds and is only used as an ordering tie-breaker.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        date.Date       `json:"date"`
	Timestamp   int64           `json:"timestamp"`
}
