package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/mononote/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/mononote/internal/backup"
	"github.com/MrJamesThe3rd/mononote/internal/config"
	"github.com/MrJamesThe3rd/mononote/internal/ident"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
	"github.com/MrJamesThe3rd/mononote/internal/note"
	"github.com/MrJamesThe3rd/mononote/internal/storage"
	"github.com/MrJamesThe3rd/mononote/internal/store"
)

type model struct {
	appName string
	quote   string

	noteService   *note.Service
	ledgerService *ledger.Service
	backupService *backup.Service
	store         *store.Store
	backupDir     string

	currentView View

	notesView    view.NotesModel
	ledgerView   view.LedgerModel
	dailyView    view.DailyModel
	settingsView view.SettingsModel
	backupView   view.BackupModel
}

type View int

const (
	ViewMenu     View = 0
	ViewNotes    View = 1
	ViewLedger   View = 2
	ViewDaily    View = 3
	ViewSettings View = 4
	ViewBackup   View = 5
)

func initialModel(st *store.Store, backupSvc *backup.Service, cfg *config.Config) model {
	ids := ident.NewUUID()
	noteSvc := note.NewService(st, ids)
	ledgerSvc := ledger.NewService(st, ids)

	return model{
		appName:       cfg.App.Name,
		noteService:   noteSvc,
		ledgerService: ledgerSvc,
		backupService: backupSvc,
		store:         st,
		backupDir:     cfg.Backup.Dir,
		currentView:   ViewMenu,
		notesView:     view.NewNotesModel(noteSvc, st),
		ledgerView:    view.NewLedgerModel(ledgerSvc, st),
		dailyView:     view.NewDailyModel(ledgerSvc),
		settingsView:  view.NewSettingsModel(st),
	}
}

type quoteMsg string

func (m model) loadQuoteCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.StoreCtx()
		defer cancel()

		return quoteMsg(m.store.Settings(ctx).HeaderQuote)
	}
}

func (m model) Init() tea.Cmd {
	return m.loadQuoteCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case quoteMsg:
		m.quote = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewNotes
				m.notesView = view.NewNotesModel(m.noteService, m.store)

				return m, m.notesView.Init()
			case "2":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.ledgerService, m.store)

				return m, m.ledgerView.Init()
			case "3":
				m.currentView = ViewDaily
				m.dailyView = view.NewDailyModel(m.ledgerService)

				return m, m.dailyView.Init()
			case "4":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.store)

				return m, m.settingsView.Init()
			case "5":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.backupService, m.backupDir)

				return m, m.backupView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		// The quote may have changed in Settings or via a restored backup.
		return m, m.loadQuoteCmd()
	}

	switch m.currentView {
	case ViewNotes:
		var newModel tea.Model
		newModel, cmd = m.notesView.Update(msg)
		m.notesView = newModel.(view.NotesModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewDaily:
		var newModel tea.Model
		newModel, cmd = m.dailyView.Update(msg)
		m.dailyView = newModel.(view.DailyModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		header := lipgloss.NewStyle().Bold(true).Render(m.appName)
		if m.quote != "" {
			header += "\n" + lipgloss.NewStyle().Faint(true).Italic(true).Render(m.quote)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			header + "\n\n" +
				"1. Notes\n" +
				"2. Ledger\n" +
				"3. Daily Stats\n" +
				"4. Settings\n" +
				"5. Backup\n\n" +
				"q. Quit",
		)
	case ViewNotes:
		return m.notesView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewDaily:
		return m.dailyView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewBackup:
		return m.backupView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	kv, err := storage.Open(cfg.Data.Path)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	st := store.New(kv)

	// First run: persist defaults so the settings key always exists.
	if err := ensureSettings(st, kv); err != nil {
		slog.Error("failed to initialize settings", "error", err)
		os.Exit(1)
	}

	m := initialModel(st, backup.NewService(st, kv), cfg)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func ensureSettings(st *store.Store, kv *storage.Storage) error {
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, store.KeySettings)
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	if ok {
		return nil
	}

	return st.SaveSettings(ctx, st.Settings(ctx))
}
