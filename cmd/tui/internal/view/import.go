package view

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lbarreto/equifinance/internal/importer"
	"github.com/lbarreto/equifinance/internal/transaction"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateResult
)

// ImportModel drives the two-step spreadsheet import: parse the file into a
// preview, let the user deselect rows, then write the kept rows to the
// ledger in one batch.
type ImportModel struct {
	CommonModel
	txService     *transaction.Service
	importService *importer.Service

	state      importState
	filePicker filepicker.Model

	rows        []transaction.CreateParams
	previewList list.Model
	selected    map[int]bool

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:     txSvc,
		importService: impSvc,
		filePicker:    fp,
		selected:      make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Spreadsheet" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.rows = msg.rows
		m.selected = make(map[int]bool, len(m.rows))
		m.state = importStatePreview

		items := make([]list.Item, len(m.rows))
		for i, row := range m.rows {
			m.selected[i] = true
			items[i] = previewItem{params: row, index: i}
		}

		delegate := previewDelegate{selected: &m.selected}
		m.previewList = list.New(items, delegate, 80, 20)
		m.previewList.Title = "Rows To Import"
		m.previewList.SetShowStatusBar(false)
		m.previewList.SetFilteringEnabled(false)
		m.previewList.SetShowHelp(false)

		return m, nil

	case importDoneMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Parsing %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview:
		m.state = importStateFilePick
		m.rows = nil
		m.selected = make(map[int]bool)

		return m, nil
	case importStateResult:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.previewList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.rows {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.rows {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.previewList, cmd = m.previewList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select spreadsheet to import:\n\n%s", m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.previewList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	color := "46"
	if m.err != nil {
		color = "196"
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type parseResultMsg struct {
	rows []transaction.CreateParams
	err  error
}

type importDoneMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Import(importer.FormatPlanilha, f)
		if err != nil {
			return parseResultMsg{err: err}
		}

		return parseResultMsg{rows: rows}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	rows := m.rows
	selected := m.selected

	return func() tea.Msg {
		var params []transaction.CreateParams

		for i, row := range rows {
			if selected[i] {
				params = append(params, row)
			}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		txs, err := m.txService.CreateBatch(ctx, params)
		if err != nil {
			return importDoneMsg{err: err}
		}

		return importDoneMsg{count: len(txs)}
	}
}

// Preview list item

type previewItem struct {
	params transaction.CreateParams
	index  int
}

func (i previewItem) Title() string       { return "" }
func (i previewItem) Description() string { return "" }
func (i previewItem) FilterValue() string { return "" }

// Preview list delegate

type previewDelegate struct {
	selected *map[int]bool
}

func (d previewDelegate) Height() int                             { return 2 }
func (d previewDelegate) Spacing() int                            { return 0 }
func (d previewDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d previewDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(previewItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	p := item.params

	card := ""
	if p.Card != nil {
		card = fmt.Sprintf(" %dx", p.Card.Installments)
	}

	line1 := fmt.Sprintf("%s%s %s  %s  %s%s",
		cursor, checkbox,
		FormatDate(p.Date),
		FormatAmount(p.Amount),
		p.Category,
		card,
	)

	line2 := fmt.Sprintf("      %s / %s / %s", p.Type, p.OwnerID, p.Scope)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
