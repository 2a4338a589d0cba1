package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/mononote/internal/settings"
)

func TestDefault_FreshCopies(t *testing.T) {
	a := settings.Default()
	b := settings.Default()

	a.NoteCategories[0] = "mutated"
	assert.NotEqual(t, a.NoteCategories[0], b.NoteCategories[0])
}

func TestMerge(t *testing.T) {
	defaults := settings.Default()

	tests := []struct {
		name string
		raw  string
		want settings.AppSettings
	}{
		{
			name: "AllFieldsPresent",
			raw:  `{"headerQuote":"x","noteCategories":["A"],"ledgerCategories":["B"]}`,
			want: settings.AppSettings{
				HeaderQuote:      "x",
				NoteCategories:   []string{"A"},
				LedgerCategories: []string{"B"},
			},
		},
		{
			name: "QuoteOnly",
			raw:  `{"headerQuote":"x"}`,
			want: settings.AppSettings{
				HeaderQuote:      "x",
				NoteCategories:   defaults.NoteCategories,
				LedgerCategories: defaults.LedgerCategories,
			},
		},
		{
			name: "EmptyQuoteOverrides",
			raw:  `{"headerQuote":""}`,
			want: settings.AppSettings{
				HeaderQuote:      "",
				NoteCategories:   defaults.NoteCategories,
				LedgerCategories: defaults.LedgerCategories,
			},
		},
		{
			name: "EmptyDocument",
			raw:  `{}`,
			want: defaults,
		},
		{
			name: "Unparseable",
			raw:  `{not json`,
			want: defaults,
		},
		{
			name: "UnknownFieldsIgnored",
			raw:  `{"headerQuote":"x","theme":"dark"}`,
			want: settings.AppSettings{
				HeaderQuote:      "x",
				NoteCategories:   defaults.NoteCategories,
				LedgerCategories: defaults.LedgerCategories,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, settings.Merge([]byte(tt.raw)))
		})
	}
}

func TestMerge_DedupesCategories(t *testing.T) {
	got := settings.Merge([]byte(`{"noteCategories":["A","B","A","","B","C"]}`))
	assert.Equal(t, []string{"A", "B", "C"}, got.NoteCategories)
}
