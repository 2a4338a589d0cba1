package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/mononote/internal/date"
	"github.com/MrJamesThe3rd/mononote/internal/ledger"
	"github.com/MrJamesThe3rd/mononote/internal/stats"
)

const breakdownBarWidth = 24

type DailyModel struct {
	CommonModel
	ledgerService *ledger.Service

	day     date.Date
	stats   stats.DayStats
	summary stats.Summary
	loaded  bool
}

func NewDailyModel(ledgerSvc *ledger.Service) DailyModel {
	return DailyModel{
		ledgerService: ledgerSvc,
		day:           date.Today(),
	}
}

func (m DailyModel) Title() string { return "Daily" }

func (m DailyModel) ShortHelp() string {
	return "Esc: back | ←/→: previous/next day | t: today | r: refresh"
}

func (m DailyModel) Init() tea.Cmd {
	return m.loadDailyCmd()
}

func (m DailyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		return m, m.loadDailyCmd()

	case loadDailyMsg:
		m.stats = msg.stats
		m.summary = msg.summary
		m.loaded = true

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.day = m.day.Add(-1)
			return m, m.loadDailyCmd()
		case "right", "l":
			m.day = m.day.Add(1)
			return m, m.loadDailyCmd()
		case "t":
			m.day = date.Today()
			return m, m.loadDailyCmd()
		case "r":
			return m, m.loadDailyCmd()
		}
	}

	return m, nil
}

func (m DailyModel) View() string {
	if !m.loaded {
		return lipgloss.NewStyle().Padding(2).Render("Loading…")
	}

	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Render(m.day.String())
	if m.day == date.Today() {
		header += faintStyle.Render("  (today)")
	}

	b.WriteString(header + "\n\n")

	b.WriteString(fmt.Sprintf(
		"%s %s   %s %s   Volume %s\n\n",
		incomeStyle.Render("In"),
		FormatAmount(m.stats.Income),
		spendStyle.Render("Out"),
		FormatAmount(m.stats.Expense),
		FormatAmount(m.stats.TotalVolume),
	))

	if len(m.stats.Breakdown) == 0 {
		b.WriteString(faintStyle.Render("No transactions on this day.") + "\n")
	} else {
		for _, cs := range m.stats.Breakdown {
			b.WriteString(m.renderBreakdownLine(cs) + "\n")
		}

		b.WriteString("\n")

		for _, tx := range m.stats.Transactions {
			amount := FormatAmount(tx.Amount)
			if tx.Type == ledger.TypeIncome {
				amount = incomeStyle.Render("+" + amount)
			} else {
				amount = spendStyle.Render("-" + amount)
			}

			b.WriteString(fmt.Sprintf(
				"  %s  %-14s %-30s %s\n",
				faintStyle.Render(FormatClock(tx.Timestamp)),
				tx.Category,
				tx.Description,
				amount,
			))
		}
	}

	b.WriteString("\n" + faintStyle.Render(fmt.Sprintf(
		"All time: in %s, out %s, net %s",
		FormatAmount(m.summary.Income),
		FormatAmount(m.summary.Expense),
		FormatAmount(m.summary.Total),
	)))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m DailyModel) renderBreakdownLine(cs stats.CategoryStat) string {
	pct := m.stats.Percent(cs.Amount)

	filled := int(float64(breakdownBarWidth) * pct / 100)
	if filled > breakdownBarWidth {
		filled = breakdownBarWidth
	}

	bar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(cs.Color)).
		Render(strings.Repeat("█", filled) + strings.Repeat("░", breakdownBarWidth-filled))

	return fmt.Sprintf("  %-14s %s %5.1f%%  %s", cs.Category, bar, pct, FormatAmount(cs.Amount))
}

// Messages

type loadDailyMsg struct {
	stats   stats.DayStats
	summary stats.Summary
}

func (m DailyModel) loadDailyCmd() tea.Cmd {
	day := m.day

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs := m.ledgerService.List(ctx)

		return loadDailyMsg{
			stats:   stats.Daily(txs, day),
			summary: stats.Summarize(txs),
		}
	}
}
