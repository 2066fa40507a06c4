package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/equity"
	"github.com/lbarreto/equifinance/internal/monthly"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

const equityBarWidth = 50

// DashboardModel renders the derived figures: the equity split bar, the
// monthly comparison series, and the income summary for the active viewer.
// Everything is recomputed from the ledger on every load.
type DashboardModel struct {
	CommonModel
	txService *transaction.Service
	viewer    participant.ID

	historyMonths int
	periodIdx     int // 0 = all time, 1..historyMonths = that many months back

	split   equity.Split
	window  []monthly.Entry
	income  equity.IncomeSummary
	loading bool
	err     error
}

func NewDashboardModel(txSvc *transaction.Service, viewer participant.ID, historyMonths int) DashboardModel {
	return DashboardModel{
		txService:     txSvc,
		viewer:        viewer,
		historyMonths: historyMonths,
		loading:       true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }
func (m DashboardModel) ShortHelp() string {
	return "Esc: back | m: cycle period | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.split = msg.split
		m.window = msg.window
		m.income = msg.income

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "m":
			m.periodIdx = (m.periodIdx + 1) % (m.historyMonths + 1)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

// period maps the cycling index onto a concrete period: index 0 is all time,
// index k is the month k-1 steps back from the current one.
func (m DashboardModel) period() equity.Period {
	if m.periodIdx == 0 {
		return equity.All()
	}

	month := time.Now().AddDate(0, -(m.periodIdx - 1), 0)

	return equity.Month(monthly.KeyFor(month))
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	sections := []string{
		lipgloss.NewStyle().Bold(true).Render("Equity Split — " + m.periodLabel()),
		m.viewEquity(),
		"",
		lipgloss.NewStyle().Bold(true).Render("Monthly Comparison"),
		m.viewMonthly(),
		"",
		lipgloss.NewStyle().Bold(true).Render("Income — " + m.periodLabel()),
		m.viewIncome(),
		"",
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) periodLabel() string {
	p := m.period()
	if p.IsAll() {
		return "All Time"
	}

	return p.String()
}

// viewEquity draws one horizontal bar whose colored segments are sized by
// each participant's share of the shared spending.
func (m DashboardModel) viewEquity() string {
	var bar strings.Builder

	used := 0
	for i, share := range m.split.Shares {
		width := int(share.Percent.Mul(decimal.NewFromInt(equityBarWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
		if i == len(m.split.Shares)-1 {
			width = equityBarWidth - used
		}

		if width < 0 {
			width = 0
		}

		used += width

		bar.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(share.Participant.Color)).
			Render(strings.Repeat("█", width)))
	}

	labels := make([]string, 0, len(m.split.Shares))
	for _, share := range m.split.Shares {
		labels = append(labels, fmt.Sprintf("%s %s%%  (%s)",
			lipgloss.NewStyle().Foreground(lipgloss.Color(share.Participant.Color)).Render(share.Participant.DisplayName),
			share.Percent.StringFixed(1),
			FormatAmount(share.Total),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		bar.String(),
		fmt.Sprintf("Total shared: %s", FormatAmount(m.split.TotalShared)),
		strings.Join(labels, "   "),
	)
}

// viewMonthly draws one row per month of the trailing window with mini bars
// for shared spending and each participant's private spending.
func (m DashboardModel) viewMonthly() string {
	max := decimal.Zero

	for _, e := range m.window {
		if e.Bucket.Shared.GreaterThan(max) {
			max = e.Bucket.Shared
		}

		for _, v := range e.Bucket.Private {
			if v.GreaterThan(max) {
				max = v
			}
		}
	}

	participants := m.txService.Participants().Members()
	rows := make([]string, 0, len(m.window))

	for _, e := range m.window {
		lines := []string{
			fmt.Sprintf("%s  shared  %s %s", e.Key, miniBar(e.Bucket.Shared, max, "245"), FormatAmount(e.Bucket.Shared)),
		}

		for _, p := range participants {
			v := e.Bucket.Private[p.ID]
			lines = append(lines, fmt.Sprintf("%s  %-6s  %s %s",
				strings.Repeat(" ", len(e.Key)),
				p.DisplayName[:min(6, len(p.DisplayName))],
				miniBar(v, max, p.Color),
				FormatAmount(v),
			))
		}

		rows = append(rows, strings.Join(lines, "\n"))
	}

	return strings.Join(rows, "\n\n")
}

func (m DashboardModel) viewIncome() string {
	return fmt.Sprintf("Household: %s   Personal: %s",
		FormatAmount(m.income.Household),
		FormatAmount(m.income.Personal),
	)
}

const miniBarWidth = 20

func miniBar(v, max decimal.Decimal, color string) string {
	width := 0

	if max.IsPositive() {
		width = int(v.Mul(decimal.NewFromInt(miniBarWidth)).Div(max).Round(0).IntPart())
	}

	if width > miniBarWidth {
		width = miniBarWidth
	}

	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", width))

	return filled + lipgloss.NewStyle().Faint(true).Render(strings.Repeat("░", miniBarWidth-width))
}

// Messages

type dashboardLoadMsg struct {
	split  equity.Split
	window []monthly.Entry
	income equity.IncomeSummary
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	period := m.period()
	months := m.historyMonths
	viewer := m.viewer

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		txs, err := m.txService.All(ctx)
		if err != nil {
			return dashboardLoadMsg{err: err}
		}

		participants := m.txService.Participants()

		return dashboardLoadMsg{
			split:  equity.SplitShared(txs, participants, period),
			window: monthly.TrailingWindow(monthly.Stats(txs, participants), participants, months, time.Now()),
			income: equity.Income(txs, period, viewer),
		}
	}
}
