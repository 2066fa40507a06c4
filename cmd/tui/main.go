package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/lbarreto/equifinance/cmd/tui/internal/view"
	"github.com/lbarreto/equifinance/internal/category"
	"github.com/lbarreto/equifinance/internal/config"
	"github.com/lbarreto/equifinance/internal/importer"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
	txStore "github.com/lbarreto/equifinance/internal/transaction/store"
)

type model struct {
	txService     *transaction.Service
	importService *importer.Service
	registry      *category.Registry

	participants  participant.Set
	viewer        participant.ID
	historyMonths int

	currentView View

	profileView   view.ProfileModel
	dashboardView view.DashboardModel
	entryView     view.EntryModel
	listView      view.ListModel
	importView    view.ImportModel
}

type View int

const (
	ViewProfile   View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewEntry     View = 3
	ViewList      View = 4
	ViewImport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	roster, err := cfg.Roster()
	if err != nil {
		slog.Error("failed to resolve participants", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(), roster)
	impSvc := importer.NewService()
	registry := category.NewRegistry(category.Defaults()...)

	return model{
		txService:     txSvc,
		importService: impSvc,
		registry:      registry,
		participants:  roster,
		historyMonths: cfg.Dashboard.HistoryMonths,
		currentView:   ViewProfile,
		profileView:   view.NewProfileModel(roster),
		importView:    view.NewImportModel(txSvc, impSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.profileView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.ViewerChosenMsg:
		m.viewer = msg.Viewer
		m.currentView = ViewMenu

		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "p":
				m.currentView = ViewProfile
				m.profileView = view.NewProfileModel(m.participants)

				return m, m.profileView.Init()
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.txService, m.viewer, m.historyMonths)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewEntry
				m.entryView = view.NewEntryModel(m.txService, m.registry, m.viewer)

				return m, m.entryView.Init()
			case "3":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService, m.viewer)

				return m, m.listView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.importService)

				return m, m.importView.Init()
			}
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewProfile:
		return m.profileView.View()
	case ViewMenu:
		return m.viewMenu()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewEntry:
		return m.entryView.View()
	case ViewList:
		return m.listView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func (m model) viewMenu() string {
	name := string(m.viewer)
	if p, err := m.participants.Lookup(m.viewer); err == nil {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(p.DisplayName)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("EquiFinance — %s\n\n", name) +
			"1. Dashboard\n" +
			"2. New Transaction\n" +
			"3. Transactions\n" +
			"4. Import Spreadsheet\n\n" +
			"p. Switch Profile\n" +
			"q. Quit",
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
