package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mononote/internal/date"
	"github.com/MrJamesThe3rd/mononote/internal/ident"
)

var (
	// ErrNotFound is returned when no transaction with the requested id exists.
	ErrNotFound = errors.New("transaction not found")
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidType is returned when the type is neither income nor expense.
	ErrInvalidType = errors.New("type must be income or expense")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// Transactions returns the stored collection. It never fails: absent or
	// unreadable storage yields an empty collection.
	Transactions(ctx context.Context) []Transaction
	// SaveTransactions overwrites the stored collection.
	SaveTransactions(ctx context.Context, txs []Transaction) error
}

type Service struct {
	repo Repository
	ids  ident.Generator
}

func NewService(repo Repository, ids ident.Generator) *Service {
	return &Service{repo: repo, ids: ids}
}

type CreateParams struct {
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        date.Date
}

type UpdateParams struct {
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        date.Date
}

func validate(amount decimal.Decimal, typ Type) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if typ != TypeIncome && typ != TypeExpense {
		return ErrInvalidType
	}

	return nil
}

// Create appends a new transaction with a fresh id and creation timestamp.
// A blank description defaults to the category name.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := validate(params.Amount, params.Type); err != nil {
		return nil, err
	}

	description := params.Description
	if description == "" {
		description = params.Category
	}

	tx := Transaction{
		ID:          s.ids.NewID(),
		Amount:      params.Amount,
		Type:        params.Type,
		Category:    params.Category,
		Description: description,
		Date:        params.Date,
		Timestamp:   time.Now().UnixMilli(),
	}

	txs := s.repo.Transactions(ctx)
	txs = append(txs, tx)

	if err := s.repo.SaveTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("saving transactions: %w", err)
	}

	return &tx, nil
}

// Update mutates an existing transaction in place. The creation timestamp is
// untouched, so edited entries keep their position among same-day entries.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
	if err := validate(params.Amount, params.Type); err != nil {
		return nil, err
	}

	txs := s.repo.Transactions(ctx)

	idx := slices.IndexFunc(txs, func(tx Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	description := params.Description
	if description == "" {
		description = params.Category
	}

	txs[idx].Amount = params.Amount
	txs[idx].Type = params.Type
	txs[idx].Category = params.Category
	txs[idx].Description = description
	txs[idx].Date = params.Date

	if err := s.repo.SaveTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("saving transactions: %w", err)
	}

	updated := txs[idx]

	return &updated, nil
}

// Delete removes the transaction with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	txs := s.repo.Transactions(ctx)

	idx := slices.IndexFunc(txs, func(tx Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	txs = append(txs[:idx], txs[idx+1:]...)

	if err := s.repo.SaveTransactions(ctx, txs); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}

	return nil
}

// List returns all transactions in display order: date descending, ties
// broken by creation timestamp descending.
func (s *Service) List(ctx context.Context) []Transaction {
	txs := s.repo.Transactions(ctx)
	SortForDisplay(txs)

	return txs
}

// SortForDisplay sorts txs in place in the primary list order.
func SortForDisplay(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}

		return 0
	})
}
