package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mononote/internal/date"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateForm
	ledgerStateConfirmDelete
)

type LedgerModel struct {
	CommonModel
	ledgerService *ledger.Service
	settings      SettingsReader

	state        ledgerState
	table        table.Model
	transactions []ledger.Transaction
	categories   []string

	form    *huh.Form
	editing string

	confirmForm   *huh.Form
	confirmDelete bool

	err    error
	status string

	formAmount      string
	formType        string
	formCategory    string
	formDescription string
	formDate        string
}

func NewLedgerModel(ledgerSvc *ledger.Service, settings SettingsReader) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Category", Width: 14},
		{Title: "Description", Width: 30},
		{Title: "Amount", Width: 12},
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

	return LedgerModel{
		ledgerService: ledgerSvc,
		settings:      settings,
		table:         t,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	switch m.state {
	case ledgerStateForm:
		return "Navigate form | Esc: cancel"
	case ledgerStateConfirmDelete:
		return "Confirm deletion"
	}

	return "Esc: back | n: new | e: edit | d: delete | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadTransactionsCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		return m, m.loadTransactionsCmd()

	case loadTransactionsMsg:
		m.transactions = msg.transactions
		m.categories = msg.categories
		m.refreshTable()

		return m, nil

	case transactionSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = ledgerStateBrowse
		m.form = nil
		m.confirmForm = nil
		m.table.Focus()

		return m, m.loadTransactionsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateForm:
		return m.updateForm(msg)
	case ledgerStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadTransactionsCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if tx := m.selectedTransaction(); tx != nil {
				return m.enterForm(tx)
			}

			return m, nil
		case "d":
			if m.selectedTransaction() == nil {
				return m, nil
			}

			m.confirmDelete = false
			m.confirmForm = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Delete this transaction?").
						Value(&m.confirmDelete),
				),
			).WithWidth(40).WithShowHelp(false)
			m.state = ledgerStateConfirmDelete
			m.table.Blur()

			return m, m.confirmForm.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterForm(existing *ledger.Transaction) (tea.Model, tea.Cmd) {
	if existing != nil {
		m.editing = existing.ID
		m.formAmount = existing.Amount.String()
		m.formType = string(existing.Type)
		m.formCategory = existing.Category
		m.formDescription = existing.Description
		m.formDate = existing.Date.String()
	} else {
		m.editing = ""
		m.formAmount = ""
		m.formType = string(ledger.TypeExpense)
		m.formCategory = ""
		m.formDescription = ""
		m.formDate = date.Today().String()
	}

	categories := m.categories
	if m.formCategory != "" && !contains(categories, m.formCategory) {
		categories = append([]string{m.formCategory}, categories...)
	}

	if m.formCategory == "" && len(categories) > 0 {
		m.formCategory = categories[0]
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(ledger.TypeExpense)),
					huh.NewOption("Income", string(ledger.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("defaults to the category").
				Value(&m.formDescription),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder(date.Format).
				Value(&m.formDate).
				Validate(validateDate),
		),
	).WithWidth(56).WithShowHelp(false)

	m.state = ledgerStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}

	if !d.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := date.Parse(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use %s", date.Format)
	}

	return nil
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ledgerStateBrowse
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

func (m LedgerModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ledgerStateBrowse
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
		m.state = ledgerStateBrowse
		m.confirmForm = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd()
}

func (m LedgerModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	switch m.state {
	case ledgerStateForm:
		title := "New Transaction"
		if m.editing != "" {
			title = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(60).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case ledgerStateConfirmDelete:
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

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.transactions))
	for _, tx := range m.transactions {
		amount := FormatAmount(tx.Amount)
		if tx.Type == ledger.TypeIncome {
			amount = incomeStyle.Render("+" + amount)
		} else {
			amount = spendStyle.Render("-" + amount)
		}

		rows = append(rows, table.Row{
			tx.Date.String(),
			string(tx.Type),
			tx.Category,
			tx.Description,
			amount,
		})
	}

	m.table.SetRows(rows)
}

func (m LedgerModel) selectedTransaction() *ledger.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.transactions) {
		return nil
	}

	return &m.transactions[idx]
}

// Messages

type loadTransactionsMsg struct {
	transactions []ledger.Transaction
	categories   []string
}

func (m LedgerModel) loadTransactionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return loadTransactionsMsg{
			transactions: m.ledgerService.List(ctx),
			categories:   m.settings.Settings(ctx).LedgerCategories,
		}
	}
}

type transactionSavedMsg struct {
	err error
}

func (m LedgerModel) saveCmd() tea.Cmd {
	editing := m.editing
	amountText := strings.TrimSpace(m.formAmount)
	typ := ledger.Type(m.formType)
	category := m.formCategory
	description := strings.TrimSpace(m.formDescription)
	dateText := strings.TrimSpace(m.formDate)

	return func() tea.Msg {
		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return transactionSavedMsg{err: fmt.Errorf("parsing amount: %w", err)}
		}

		day, err := date.Parse(dateText)
		if err != nil {
			return transactionSavedMsg{err: fmt.Errorf("parsing date: %w", err)}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		if editing == "" {
			_, err = m.ledgerService.Create(ctx, ledger.CreateParams{
				Amount:      amount,
				Type:        typ,
				Category:    category,
				Description: description,
				Date:        day,
			})
		} else {
			_, err = m.ledgerService.Update(ctx, editing, ledger.UpdateParams{
				Amount:      amount,
				Type:        typ,
				Category:    category,
				Description: description,
				Date:        day,
			})
		}

		return transactionSavedMsg{err: err}
	}
}

func (m LedgerModel) deleteCmd() tea.Cmd {
	tx := m.selectedTransaction()
	if tx == nil {
		return nil
	}

	id := tx.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return transactionSavedMsg{err: m.ledgerService.Delete(ctx, id)}
	}
}
