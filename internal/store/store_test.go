package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mononote/internal/date"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
	"github.com/MrJamesThe3rd/mononote/internal/note"
	"github.com/MrJamesThe3rd/mononote/internal/settings"
	"github.com/MrJamesThe3rd/mononote/internal/storage"
	"github.com/MrJamesThe3rd/mononote/internal/store"
)

func newStore(t *testing.T) (*store.Store, *storage.Storage) {
	t.Helper()

	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	return store.New(kv), kv
}

func TestNotes_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	notes := []note.Note{
		{ID: "a", Content: "first", Category: "Personal", CreatedAt: 1, Color: "yellow"},
		{ID: "b", Content: "second", Category: "Work", CreatedAt: 2, Color: "blue"},
	}

	require.NoError(t, s.SaveNotes(ctx, notes))
	assert.Equal(t, notes, s.Notes(ctx))
}

func TestNotes_EmptyWhenAbsent(t *testing.T) {
	s, _ := newStore(t)
	assert.Empty(t, s.Notes(context.Background()))
}

func TestNotes_EmptyWhenCorrupt(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyNotes, "{definitely not json"))
	assert.Empty(t, s.Notes(ctx))
}

func TestTransactions_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	txs := []ledger.Transaction{{
		ID:          "t1",
		Amount:      decimal.NewFromFloat(12.5),
		Type:        ledger.TypeExpense,
		Category:    "Food",
		Description: "lunch",
		Date:        date.MustParse("2024-01-01"),
		Timestamp:   99,
	}}

	require.NoError(t, s.SaveTransactions(ctx, txs))

	got := s.Transactions(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "2024-01-01", got[0].Date.String())
}

func TestTransactions_EmptyWhenCorrupt(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyTransactions, `42`))
	assert.Empty(t, s.Transactions(ctx))
}

func TestSettings_DefaultWhenAbsent(t *testing.T) {
	s, _ := newStore(t)
	assert.Equal(t, settings.Default(), s.Settings(context.Background()))
}

func TestSettings_DefaultWhenCorrupt(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeySettings, "]["))
	assert.Equal(t, settings.Default(), s.Settings(ctx))
}

func TestSettings_MergesPartialStoredDocument(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeySettings, `{"headerQuote":"x"}`))

	got := s.Settings(ctx)
	assert.Equal(t, "x", got.HeaderQuote)
	assert.Equal(t, settings.Default().NoteCategories, got.NoteCategories)
	assert.Equal(t, settings.Default().LedgerCategories, got.LedgerCategories)
}

func TestSettings_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	cfg := settings.AppSettings{
		HeaderQuote:      "hello",
		NoteCategories:   []string{"One"},
		LedgerCategories: []string{"Two"},
	}

	require.NoError(t, s.SaveSettings(ctx, cfg))
	assert.Equal(t, cfg, s.Settings(ctx))
}

func TestReset(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveNotes(ctx, []note.Note{{ID: "a"}}))
	require.NoError(t, s.SaveTransactions(ctx, []ledger.Transaction{{ID: "t", Amount: decimal.NewFromInt(1)}}))
	require.NoError(t, s.SaveSettings(ctx, settings.AppSettings{HeaderQuote: "custom"}))

	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.Notes(ctx))
	assert.Empty(t, s.Transactions(ctx))
	assert.Equal(t, settings.Default(), s.Settings(ctx))

	// The settings key must actually exist after a reset, not merely
	// default on read.
	_, ok, err := kv.Get(ctx, store.KeySettings)
	require.NoError(t, err)
	assert.True(t, ok)
}
