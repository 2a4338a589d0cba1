package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/mononote/internal/backup"
)

type backupState int

const (
	backupStateMenu backupState = iota
	backupStateExportPath
	backupStateFilePick
	backupStateWorking
	backupStateResult
)

type backupAction int

const (
	backupActionExport backupAction = iota
	backupActionImport
)

type BackupModel struct {
	CommonModel
	backupService *backup.Service

	state  backupState
	action backupAction
	cursor int

	form       *huh.Form
	filePicker filepicker.Model
	spinner    spinner.Model

	dir      string
	status   string
	err      error
	imported bool
}

func NewBackupModel(svc *backup.Service, defaultDir string) BackupModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".json"}
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return BackupModel{
		backupService: svc,
		filePicker:    fp,
		spinner:       s,
		dir:           defaultDir,
	}
}

func (m BackupModel) Title() string { return "Backup" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateMenu:
		return "Esc: back | Enter: select"
	case backupStateWorking:
		return "Working..."
	case backupStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m BackupModel) Init() tea.Cmd {
	return nil
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == backupStateMenu {
			return m.updateMenu(msg)
		}

	case backupResultMsg:
		m.state = backupStateResult
		m.err = msg.err
		m.status = msg.status
		m.imported = msg.imported && msg.err == nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, nil
	}

	switch m.state {
	case backupStateExportPath:
		return m.updateExportPath(msg)
	case backupStateFilePick:
		return m.updateFilePick(msg)
	case backupStateWorking:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m BackupModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case backupStateExportPath, backupStateFilePick:
		m.state = backupStateMenu
		m.form = nil

		return m, nil

	case backupStateResult:
		m.state = backupStateMenu
		m.err = nil
		m.status = ""

		// A successful restore replaces everything the other screens cache.
		if m.imported {
			m.imported = false
			return m, func() tea.Msg { return ReloadMsg{} }
		}

		return m, nil
	}

	return m, Back
}

func (m BackupModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < 1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if m.cursor == 0 {
			m.action = backupActionExport
			m.form = m.buildDirForm()
			m.state = backupStateExportPath

			return m, m.form.Init()
		}

		m.action = backupActionImport
		m.state = backupStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m BackupModel) buildDirForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("dir").
				Title("Backup Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder(".").
				Value(&m.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BackupModel) updateExportPath(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = backupStateWorking
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.dir))
}

func (m BackupModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = backupStateWorking
		m.err = nil

		return m, tea.Batch(m.spinner.Tick, m.importCmd(path))
	}

	return m, cmd
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateMenu:
		return m.viewMenu()

	case backupStateExportPath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case backupStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select backup file to restore:\n\n%s", m.filePicker.View()),
		)

	case backupStateWorking:
		verb := "Writing backup..."
		if m.action == backupActionImport {
			verb = "Restoring backup..."
		}

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s %s", m.spinner.View(), verb),
		)

	case backupStateResult:
		return m.viewResult()
	}

	return ""
}

func (m BackupModel) viewMenu() string {
	options := []string{"Export backup", "Import backup"}

	s := "Backup:\n\n"
	for i, opt := range options {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, opt)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m BackupModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(okStyle.Render(m.status) + "\n\n(Esc to go back)")
}

// Messages

type backupResultMsg struct {
	status   string
	imported bool
	err      error
}

func (m BackupModel) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		data, err := m.backupService.Export(ctx)
		if err != nil {
			return backupResultMsg{err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return backupResultMsg{err: fmt.Errorf("creating backup directory: %w", err)}
		}

		path := filepath.Join(dir, backup.Filename(time.Now()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return backupResultMsg{err: fmt.Errorf("writing backup: %w", err)}
		}

		return backupResultMsg{status: fmt.Sprintf("Backup written to %s.", path)}
	}
}

func (m BackupModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return backupResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.backupService.Import(ctx, f); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{
			status:   fmt.Sprintf("Backup restored from %s.", filepath.Base(path)),
			imported: true,
		}
	}
}
