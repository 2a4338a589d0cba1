package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/mononote/internal/note"
	"github.com/MrJamesThe3rd/mononote/internal/settings"
)

type notesState int

const (
	notesStateBrowse notesState = iota
	notesStateForm
	notesStateConfirmDelete
)

// SettingsReader exposes the current settings to the views that need the
// configured categories or the header quote.
type SettingsReader interface {
	Settings(ctx context.Context) settings.AppSettings
}

type NotesModel struct {
	CommonModel
	noteService *note.Service
	settings    SettingsReader

	state      notesState
	table      table.Model
	notes      []note.Note
	categories []string

	form    *huh.Form
	editing string // id under edit; empty while creating

	confirmForm   *huh.Form
	confirmDelete bool

	err    error
	status string

	formContent  string
	formCategory string
	formColor    string
}

func NewNotesModel(noteSvc *note.Service, settings SettingsReader) NotesModel {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Created", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Content", Width: 50},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return NotesModel{
		noteService: noteSvc,
		settings:    settings,
		table:       t,
	}
}

func (m NotesModel) Title() string { return "Notes" }

func (m NotesModel) ShortHelp() string {
	switch m.state {
	case notesStateForm:
		return "Navigate form | Esc: cancel"
	case notesStateConfirmDelete:
		return "Confirm deletion"
	}

	return "Esc: back | n: new | e: edit | d: delete | r: refresh"
}

func (m NotesModel) Init() tea.Cmd {
	return m.loadNotesCmd()
}

func (m NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		return m, m.loadNotesCmd()

	case loadNotesMsg:
		m.notes = msg.notes
		m.categories = msg.categories
		m.refreshTable()

		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = notesStateBrowse
		m.form = nil
		m.confirmForm = nil
		m.table.Focus()

		return m, m.loadNotesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case notesStateBrowse:
		return m.updateBrowse(msg)
	case notesStateForm:
		return m.updateForm(msg)
	case notesStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m NotesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadNotesCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if n := m.selectedNote(); n != nil {
				return m.enterForm(n)
			}

			return m, nil
		case "d":
			if m.selectedNote() == nil {
				return m, nil
			}

			m.confirmDelete = false
			m.confirmForm = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Delete this note?").
						Value(&m.confirmDelete),
				),
			).WithWidth(40).WithShowHelp(false)
			m.state = notesStateConfirmDelete
			m.table.Blur()

			return m, m.confirmForm.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m NotesModel) enterForm(existing *note.Note) (tea.Model, tea.Cmd) {
	if existing != nil {
		m.editing = existing.ID
		m.formContent = existing.Content
		m.formCategory = existing.Category
		m.formColor = existing.Color
	} else {
		m.editing = ""
		m.formContent = ""
		m.formCategory = ""
		m.formColor = note.DefaultColor
	}

	categories := m.categories
	// An orphaned category on an existing note stays selectable.
	if m.formCategory != "" && !contains(categories, m.formCategory) {
		categories = append([]string{m.formCategory}, categories...)
	}

	if m.formCategory == "" && len(categories) > 0 {
		m.formCategory = categories[0]
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("content").
				Title("Content").
				Value(&m.formContent).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("content cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&m.formCategory),

			huh.NewSelect[string]().
				Key("color").
				Title("Color").
				Options(huh.NewOptions(note.Palette...)...).
				Value(&m.formColor),
		),
	).WithWidth(56).WithShowHelp(false)

	m.state = notesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m NotesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = notesStateBrowse
			m.form = nil
			m.table.Focus()

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

func (m NotesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = notesStateBrowse
			m.confirmForm = nil
			m.table.Focus()

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

	if !m.confirmDelete {
		m.state = notesStateBrowse
		m.confirmForm = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd()
}

func (m NotesModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	switch m.state {
	case notesStateForm:
		title := "New Note"
		if m.editing != "" {
			title = "Edit Note"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(60).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case notesStateConfirmDelete:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Render(m.confirmForm.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *NotesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.notes))
	for _, n := range m.notes {
		rows = append(rows, table.Row{
			ColorTag(n.Color),
			FormatCreatedAt(n.CreatedAt),
			n.Category,
			firstLine(n.Content),
		})
	}

	m.table.SetRows(rows)
}

func (m NotesModel) selectedNote() *note.Note {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.notes) {
		return nil
	}

	return &m.notes[idx]
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}

	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

// Messages

type loadNotesMsg struct {
	notes      []note.Note
	categories []string
}

func (m NotesModel) loadNotesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return loadNotesMsg{
			notes:      m.noteService.List(ctx),
			categories: m.settings.Settings(ctx).NoteCategories,
		}
	}
}

type noteSavedMsg struct {
	err error
}

func (m NotesModel) saveCmd() tea.Cmd {
	editing := m.editing
	content := m.formContent
	category := m.formCategory
	color := m.formColor

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		var err error
		if editing == "" {
			_, err = m.noteService.Create(ctx, note.CreateParams{
				Content:  content,
				Category: category,
				Color:    color,
			})
		} else {
			_, err = m.noteService.Update(ctx, editing, note.UpdateParams{
				Content:  content,
				Category: category,
				Color:    color,
			})
		}

		return noteSavedMsg{err: err}
	}
}

func (m NotesModel) deleteCmd() tea.Cmd {
	n := m.selectedNote()
	if n == nil {
		return nil
	}

	id := n.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return noteSavedMsg{err: m.noteService.Delete(ctx, id)}
	}
}
