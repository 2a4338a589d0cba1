// Package store is the typed persistence layer: it owns the three storage
// keys and the read-degradation policy. Reads never fail; an absent key, a
// storage error or a corrupt value all degrade to an empty collection or
// default settings, so the application starts usable no matter what the
// storage file contains. Writes propagate errors to the caller.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/mononote/internal/ledger"
	"github.com/MrJamesThe3rd/mononote/internal/note"
	"github.com/MrJamesThe3rd/mononote/internal/settings"
)

// Storage key namespace. Fixed; the import/export codec writes the same keys.
const (
	KeyNotes        = "notes"
	KeyTransactions = "transactions"
	KeySettings     = "settings"
)

// KV is the raw key-value storage the store persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// raw returns the stored bytes for key, or nil when the key is absent or
// unreadable.
func (s *Store) raw(ctx context.Context, key string) []byte {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		slog.Warn("storage read failed, using defaults", "key", key, "error", err)
		return nil
	}

	if !ok {
		return nil
	}

	return []byte(value)
}

// Notes returns the stored notes collection, or an empty one when the key is
// absent or its value does not parse.
func (s *Store) Notes(ctx context.Context) []note.Note {
	raw := s.raw(ctx, KeyNotes)
	if raw == nil {
		return nil
	}

	var notes []note.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		slog.Warn("stored notes are corrupt, starting empty", "error", err)
		return nil
	}

	return notes
}

// SaveNotes overwrites the stored notes collection. Contents are not
// validated; that is the caller's responsibility.
func (s *Store) SaveNotes(ctx context.Context, notes []note.Note) error {
	return s.save(ctx, KeyNotes, notes)
}

// Transactions returns the stored transactions collection, or an empty one
// when the key is absent or its value does not parse.
func (s *Store) Transactions(ctx context.Context) []ledger.Transaction {
	raw := s.raw(ctx, KeyTransactions)
	if raw == nil {
		return nil
	}

	var txs []ledger.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		slog.Warn("stored transactions are corrupt, starting empty", "error", err)
		return nil
	}

	return txs
}

// SaveTransactions overwrites the stored transactions collection.
func (s *Store) SaveTransactions(ctx context.Context, txs []ledger.Transaction) error {
	return s.save(ctx, KeyTransactions, txs)
}

// Settings returns the stored settings merged field-by-field over the
// defaults, so a partially specified stored document never produces missing
// fields. An absent or corrupt value yields the plain defaults.
func (s *Store) Settings(ctx context.Context) settings.AppSettings {
	raw := s.raw(ctx, KeySettings)
	if raw == nil {
		return settings.Default()
	}

	return settings.Merge(raw)
}

// SaveSettings overwrites the stored settings record.
func (s *Store) SaveSettings(ctx context.Context, cfg settings.AppSettings) error {
	return s.save(ctx, KeySettings, cfg)
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	return nil
}

// Reset clears every stored key and immediately re-writes default settings,
// so the application is never left without a settings record.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clearing storage: %w", err)
	}

	if err := s.SaveSettings(ctx, settings.Default()); err != nil {
		return fmt.Errorf("restoring default settings: %w", err)
	}

	return nil
}

var (
	_ note.Repository   = (*Store)(nil)
	_ ledger.Repository = (*Store)(nil)
)
