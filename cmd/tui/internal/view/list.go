package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

// ListModel shows the transactions visible to the active viewer, newest
// first: every shared transaction plus the viewer's private ones. The other
// participant's private entries never reach this screen.
type ListModel struct {
	CommonModel
	txService *transaction.Service
	viewer    participant.ID

	table table.Model
	txs   []*transaction.Transaction

	// 0 = all time, 1 = this month, 2 = last month
	dateFilterIdx int

	loading bool
	err     error
}

func NewListModel(txSvc *transaction.Service, viewer participant.ID) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 16},
		{Title: "Owner", Width: 11},
		{Title: "Scope", Width: 8},
		{Title: "Card", Width: 8},
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

	return ListModel{
		txService: txSvc,
		viewer:    viewer,
		table:     t,
		loading:   true,
	}
}

func (m ListModel) Title() string { return "Transactions" }
func (m ListModel) ShortHelp() string {
	return "Esc: back | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf("Viewing as %s | [d] Date: %s",
		activeStyle(string(m.viewer)),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// monthFilterKey returns the month the current date filter selects, or ""
// for all time.
func (m ListModel) monthFilterKey() string {
	now := time.Now()

	switch m.dateFilterIdx {
	case 1:
		return now.Format("2006-01")
	case 2:
		return now.AddDate(0, -1, 0).Format("2006-01")
	}

	return ""
}

func (m *ListModel) refreshTable() {
	monthKey := m.monthFilterKey()

	rows := make([]table.Row, 0, len(m.txs))

	for _, tx := range m.txs {
		if monthKey != "" && tx.MonthKey() != monthKey {
			continue
		}

		card := ""
		if tx.Card != nil {
			card = fmt.Sprintf("%dx", tx.Card.Installments)
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.Category,
			string(tx.OwnerID),
			string(tx.Scope),
			card,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		txs, err := m.txService.VisibleTo(ctx, m.viewer)

		return loadListMsg{txs: txs, err: err}
	}
}
