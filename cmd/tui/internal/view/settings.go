package view

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/mononote/internal/settings"
)

type settingsState int

const (
	settingsStateView settingsState = iota
	settingsStateEdit
	settingsStateConfirmReset
)

// SettingsStore is the slice of the store the settings screen needs.
type SettingsStore interface {
	SettingsReader
	SaveSettings(ctx context.Context, cfg settings.AppSettings) error
	Reset(ctx context.Context) error
}

type SettingsModel struct {
	CommonModel
	store SettingsStore

	state   settingsState
	current settings.AppSettings
	loaded  bool

	form         *huh.Form
	confirmForm  *huh.Form
	confirmReset bool

	status   string
	statusOK bool

	formQuote            string
	formNoteCategories   string
	formLedgerCategories string
}

func NewSettingsModel(store SettingsStore) SettingsModel {
	return SettingsModel{store: store}
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string {
	switch m.state {
	case settingsStateEdit:
		return "Navigate form | Esc: cancel"
	case settingsStateConfirmReset:
		return "Confirm reset"
	}

	return "Esc: back | e: edit | x: reset all data"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadSettingsCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		return m, m.loadSettingsCmd()

	case loadSettingsMsg:
		m.current = msg.settings
		m.loaded = true

		return m, nil

	case settingsSavedMsg:
		m.state = settingsStateView
		m.form = nil
		m.confirmForm = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.statusOK = false

			return m, m.loadSettingsCmd()
		}

		m.status = msg.status
		m.statusOK = true

		// Other screens re-read categories and the quote on their own loads;
		// a reset additionally wipes their data.
		return m, tea.Batch(m.loadSettingsCmd(), func() tea.Msg { return ReloadMsg{} })
	}

	switch m.state {
	case settingsStateView:
		return m.updateView(msg)
	case settingsStateEdit:
		return m.updateEdit(msg)
	case settingsStateConfirmReset:
		return m.updateConfirmReset(msg)
	}

	return m, nil
}

func (m SettingsModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back

	case "e":
		m.formQuote = m.current.HeaderQuote
		m.formNoteCategories = strings.Join(m.current.NoteCategories, ", ")
		m.formLedgerCategories = strings.Join(m.current.LedgerCategories, ", ")

		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("quote").
					Title("Header quote").
					Value(&m.formQuote),

				huh.NewInput().
					Key("noteCategories").
					Title("Note categories").
					Description("comma separated").
					Value(&m.formNoteCategories).
					Validate(validateCategories),

				huh.NewInput().
					Key("ledgerCategories").
					Title("Ledger categories").
					Description("comma separated").
					Value(&m.formLedgerCategories).
					Validate(validateCategories),
			),
		).WithWidth(64).WithShowHelp(false)

		m.state = settingsStateEdit

		return m, m.form.Init()

	case "x":
		m.confirmReset = false
		m.confirmForm = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Erase all notes, transactions and settings?").
					Description("This cannot be undone.").
					Value(&m.confirmReset),
			),
		).WithWidth(48).WithShowHelp(false)
		m.state = settingsStateConfirmReset

		return m, m.confirmForm.Init()
	}

	return m, nil
}

func validateCategories(s string) error {
	if len(splitCategories(s)) == 0 {
		return fmt.Errorf("need at least one category")
	}

	return nil
}

// splitCategories parses a comma separated list, trimming blanks and
// dropping duplicates.
func splitCategories(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return settings.Dedupe(parts)
}

func (m SettingsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = settingsStateView
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m SettingsModel) updateConfirmReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = settingsStateView
			m.confirmForm = nil

			return m, nil
		}
	}

	form, cmd := m.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirmForm = f
	}

	if m.confirmForm.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.confirmReset {
		m.state = settingsStateView
		m.confirmForm = nil

		return m, nil
	}

	return m, m.resetCmd()
}

func (m SettingsModel) View() string {
	if !m.loaded {
		return lipgloss.NewStyle().Padding(2).Render("Loading…")
	}

	var b strings.Builder

	switch m.state {
	case settingsStateEdit:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Edit Settings") + "\n\n")
		b.WriteString(m.form.View())

	case settingsStateConfirmReset:
		b.WriteString(m.confirmForm.View())

	default:
		b.WriteString(fmt.Sprintf("Header quote:      %q\n", m.current.HeaderQuote))
		b.WriteString(fmt.Sprintf("Note categories:   %s\n", strings.Join(m.current.NoteCategories, ", ")))
		b.WriteString(fmt.Sprintf("Ledger categories: %s\n", strings.Join(m.current.LedgerCategories, ", ")))
	}

	if m.status != "" {
		style := errStyle
		if m.statusOK {
			style = okStyle
		}

		b.WriteString("\n\n" + style.Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Messages

type loadSettingsMsg struct {
	settings settings.AppSettings
}

func (m SettingsModel) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return loadSettingsMsg{settings: m.store.Settings(ctx)}
	}
}

type settingsSavedMsg struct {
	status string
	err    error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	updated := settings.AppSettings{
		HeaderQuote:      strings.TrimSpace(m.formQuote),
		NoteCategories:   splitCategories(m.formNoteCategories),
		LedgerCategories: splitCategories(m.formLedgerCategories),
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.store.SaveSettings(ctx, updated); err != nil {
			return settingsSavedMsg{err: err}
		}

		return settingsSavedMsg{status: "Settings saved."}
	}
}

func (m SettingsModel) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.store.Reset(ctx); err != nil {
			return settingsSavedMsg{err: err}
		}

		return settingsSavedMsg{status: "All data erased, defaults restored."}
	}
}
