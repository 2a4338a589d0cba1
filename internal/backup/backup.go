// Package backup produces and consumes the single portable document that
// represents the entire persisted state, for manual backup and restore.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/mononote/internal/encoding"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
	"github.com/MrJamesThe3rd/mononote/internal/note"
	"github.com/MrJamesThe3rd/mononote/internal/settings"
	"github.com/MrJamesThe3rd/mononote/internal/store"
)

// Version is the document format version written on export. It is not
// checked on import.
const Version = "1.0"

// ErrInvalidBackup is returned when an imported document cannot be parsed or
// carries neither a notes nor a transactions array.
var ErrInvalidBackup = errors.New("invalid backup document")

// Store is the typed view of persisted state the codec exports from.
// Reading through it means an export always reflects the last durably
// written state, never a possibly stale in-memory one.
type Store interface {
	Notes(ctx context.Context) []note.Note
	Transactions(ctx context.Context) []ledger.Transaction
	Settings(ctx context.Context) settings.AppSettings
	SaveSettings(ctx context.Context, cfg settings.AppSettings) error
}

// KV is the raw storage the codec imports into. Imported collections are
// written verbatim, without going through entity types.
type KV interface {
	Set(ctx context.Context, key, value string) error
}

type Service struct {
	store Store
	kv    KV
}

func NewService(st Store, kv KV) *Service {
	return &Service{store: st, kv: kv}
}

// Document is the portable interchange format.
type Document struct {
	Notes        []note.Note          `json:"notes"`
	Transactions []ledger.Transaction `json:"transactions"`
	Settings     settings.AppSettings `json:"settings"`
	ExportDate   string               `json:"exportDate"`
	Version      string               `json:"version"`
}

// Export reads the three stored entities and renders them as one
// pretty-printed document. Settings are merged over defaults by the store,
// so the document always carries a complete settings record.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	doc := Document{
		Notes:        s.store.Notes(ctx),
		Transactions: s.store.Transactions(ctx),
		Settings:     s.store.Settings(ctx),
		ExportDate:   time.Now().Format(time.RFC3339),
		Version:      Version,
	}

	// Empty collections export as [], not null.
	if doc.Notes == nil {
		doc.Notes = []note.Note{}
	}

	if doc.Transactions == nil {
		doc.Transactions = []ledger.Transaction{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}

	return data, nil
}

// Filename returns the conventional name for a backup exported at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("mononote_backup_%s.json", t.Format("2006-01-02"))
}

// rawDocument defers all content parsing so imported collections can be
// written back verbatim, without per-record validation.
type rawDocument struct {
	Notes        json.RawMessage `json:"notes"`
	Transactions json.RawMessage `json:"transactions"`
	Settings     json.RawMessage `json:"settings"`
}

// Import validates and writes a backup document into storage. The document
// is valid when it parses and at least one of notes/transactions is an
// array; a present array overwrites its key verbatim, and a present settings
// object is merged over defaults. Validation completes before the first
// write, so a rejected document leaves storage untouched. In-memory state is
// not touched either; the caller reloads after a successful import.
//
// The reader is decoded to UTF-8 first: backup files round-trip through
// editors and mailers that re-encode them.
func (s *Service) Import(ctx context.Context, r io.Reader) error {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	hasNotes := isArray(doc.Notes)
	hasTransactions := isArray(doc.Transactions)

	if !hasNotes && !hasTransactions {
		return fmt.Errorf("%w: neither notes nor transactions is an array", ErrInvalidBackup)
	}

	if hasNotes {
		if err := s.writeVerbatim(ctx, store.KeyNotes, doc.Notes); err != nil {
			return err
		}
	}

	if hasTransactions {
		if err := s.writeVerbatim(ctx, store.KeyTransactions, doc.Transactions); err != nil {
			return err
		}
	}

	if isObject(doc.Settings) {
		if err := s.store.SaveSettings(ctx, settings.Merge(doc.Settings)); err != nil {
			return fmt.Errorf("importing settings: %w", err)
		}
	}

	return nil
}

// writeVerbatim stores the raw fragment under key, compacted so the stored
// bytes match what a regular save of the same value would produce.
func (s *Service) writeVerbatim(ctx context.Context, key string, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	if err := s.kv.Set(ctx, key, buf.String()); err != nil {
		return fmt.Errorf("importing %s: %w", key, err)
	}

	return nil
}

func isArray(raw json.RawMessage) bool {
	return firstByte(raw) == '['
}

func isObject(raw json.RawMessage) bool {
	return firstByte(raw) == '{'
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}
