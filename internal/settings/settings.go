// Package settings holds the singleton application settings record and the
// merge-over-defaults semantics used when loading a partially specified
// stored document.
package settings

import "encoding/json"

// AppSettings is the single process-wide settings record.
type AppSettings struct {
	HeaderQuote      string   `json:"headerQuote"`
	NoteCategories   []string `json:"noteCategories"`
	LedgerCategories []string `json:"ledgerCategories"`
}

// Default returns the hard-coded default settings. Callers receive a fresh
// copy; the category slices are never shared.
func Default() AppSettings {
	return AppSettings{
		HeaderQuote:      "Write it down, add it up.",
		NoteCategories:   []string{"Personal", "Work", "Ideas"},
		LedgerCategories: []string{"Food", "Transport", "Housing", "Salary", "Shopping", "Other"},
	}
}

// partial mirrors AppSettings with pointer fields so a missing field in a
// stored or imported document is distinguishable from a zero value.
type partial struct {
	HeaderQuote      *string   `json:"headerQuote"`
	NoteCategories   *[]string `json:"noteCategories"`
	LedgerCategories *[]string `json:"ledgerCategories"`
}

// Merge parses raw as a settings document and merges the fields that are
// present over the defaults: present fields win, absent fields keep their
// default. An unparseable document yields the plain defaults.
func Merge(raw []byte) AppSettings {
	merged := Default()

	var p partial
	if err := json.Unmarshal(raw, &p); err != nil {
		return merged
	}

	if p.HeaderQuote != nil {
		merged.HeaderQuote = *p.HeaderQuote
	}

	if p.NoteCategories != nil {
		merged.NoteCategories = Dedupe(*p.NoteCategories)
	}

	if p.LedgerCategories != nil {
		merged.LedgerCategories = Dedupe(*p.LedgerCategories)
	}

	return merged
}

// Dedupe keeps the first occurrence of each category, preserving order.
// Blank entries are dropped.
func Dedupe(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))

	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}

		seen[c] = true
		out = append(out, c)
	}

	return out
}
