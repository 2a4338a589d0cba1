package backup_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mononote/internal/backup"
	"github.com/MrJamesThe3rd/mononote/internal/date"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
	"github.com/MrJamesThe3rd/mononote/internal/note"
	"github.com/MrJamesThe3rd/mononote/internal/settings"
	"github.com/MrJamesThe3rd/mononote/internal/storage"
	"github.com/MrJamesThe3rd/mononote/internal/store"
)

func newService(t *testing.T) (*backup.Service, *store.Store, *storage.Storage) {
	t.Helper()

	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	st := store.New(kv)

	return backup.NewService(st, kv), st, kv
}

func seed(t *testing.T, st *store.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, st.SaveNotes(ctx, []note.Note{
		{ID: "n1", Content: "remember", Category: "Personal", CreatedAt: 10, Color: "yellow"},
	}))
	require.NoError(t, st.SaveTransactions(ctx, []ledger.Transaction{
		{
			ID: "t1", Amount: decimal.NewFromInt(100), Type: ledger.TypeIncome,
			Category: "Salary", Description: "pay", Date: date.MustParse("2024-01-01"), Timestamp: 20,
		},
	}))
	require.NoError(t, st.SaveSettings(ctx, settings.Default()))
}

func TestExport_DocumentShape(t *testing.T) {
	svc, st, _ := newService(t)
	seed(t, st)

	data, err := svc.Export(context.Background())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, field := range []string{"notes", "transactions", "settings", "exportDate", "version"} {
		assert.Contains(t, doc, field)
	}

	var version string
	require.NoError(t, json.Unmarshal(doc["version"], &version))
	assert.Equal(t, "1.0", version)

	var exportDate string
	require.NoError(t, json.Unmarshal(doc["exportDate"], &exportDate))
	_, err = time.Parse(time.RFC3339, exportDate)
	assert.NoError(t, err)

	// Pretty-printed, not compact.
	assert.True(t, strings.Contains(string(data), "\n  "))
}

func TestExport_EmptyStateUsesArraysAndDefaults(t *testing.T) {
	svc, _, _ := newService(t)

	data, err := svc.Export(context.Background())
	require.NoError(t, err)

	var doc backup.Document
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.NotNil(t, doc.Notes)
	assert.NotNil(t, doc.Transactions)
	assert.Equal(t, settings.Default(), doc.Settings)
	assert.Contains(t, string(data), `"notes": []`)
}

func TestImport_ExportRoundTripIsByteEquivalent(t *testing.T) {
	svc, st, kv := newService(t)
	seed(t, st)
	ctx := context.Background()

	before := map[string]string{}
	for _, key := range []string{store.KeyNotes, store.KeyTransactions, store.KeySettings} {
		value, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		before[key] = value
	}

	data, err := svc.Export(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Import(ctx, strings.NewReader(string(data))))

	for key, want := range before {
		got, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got, "stored bytes changed for %s", key)
	}
}

func TestImport_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "NotJSON", input: "definitely not json"},
		{name: "Empty", input: ""},
		{name: "NoArrays", input: `{"settings":{"headerQuote":"x"}}`},
		{name: "NotesNotArray", input: `{"notes":{"id":"a"}}`},
		{name: "TopLevelArray", input: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, kv := newService(t)
			ctx := context.Background()

			err := svc.Import(ctx, strings.NewReader(tt.input))
			assert.ErrorIs(t, err, backup.ErrInvalidBackup)

			// A rejected document leaves storage untouched.
			for _, key := range []string{store.KeyNotes, store.KeyTransactions, store.KeySettings} {
				_, ok, err := kv.Get(ctx, key)
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
}

func TestImport_NotesOnly(t *testing.T) {
	svc, st, kv := newService(t)
	ctx := context.Background()

	input := `{"notes":[{"id":"n1","content":"hi","category":"Personal","createdAt":5,"color":"blue"}]}`
	require.NoError(t, svc.Import(ctx, strings.NewReader(input)))

	notes := st.Notes(ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)

	// Transactions key is untouched.
	_, ok, err := kv.Get(ctx, store.KeyTransactions)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImport_TransactionsOnly(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	input := `{"transactions":[{"id":"t1","amount":"42","type":"expense","category":"Food","description":"x","date":"2024-01-01","timestamp":9}]}`
	require.NoError(t, svc.Import(ctx, strings.NewReader(input)))

	txs := st.Transactions(ctx)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(42)))
}

func TestImport_OverwritesVerbatimWithoutRecordValidation(t *testing.T) {
	svc, _, kv := newService(t)
	ctx := context.Background()

	// Records of unexpected shape are written through untouched.
	input := `{"notes":[{"id":"n1","unknown":true},{"surprise":1}]}`
	require.NoError(t, svc.Import(ctx, strings.NewReader(input)))

	value, ok, err := kv.Get(ctx, store.KeyNotes)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"n1","unknown":true},{"surprise":1}]`, value)
}

func TestImport_SettingsMergeOverDefaults(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	input := `{"notes":[],"settings":{"headerQuote":"x"}}`
	require.NoError(t, svc.Import(ctx, strings.NewReader(input)))

	got := st.Settings(ctx)
	assert.Equal(t, "x", got.HeaderQuote)
	assert.Equal(t, settings.Default().NoteCategories, got.NoteCategories)
	assert.Equal(t, settings.Default().LedgerCategories, got.LedgerCategories)
}

func TestImport_MissingVersionTolerated(t *testing.T) {
	svc, _, _ := newService(t)

	input := `{"notes":[],"transactions":[]}`
	assert.NoError(t, svc.Import(context.Background(), strings.NewReader(input)))
}

func TestImport_UTF8BOM(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"notes":[{"id":"n1"}]}`)...)
	require.NoError(t, svc.Import(ctx, strings.NewReader(string(input))))
	assert.Len(t, st.Notes(ctx), 1)
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "mononote_backup_2024-03-09.json", backup.Filename(at))
}
