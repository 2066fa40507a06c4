package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lbarreto/equifinance/internal/participant"
)

// ProfileModel is the opening screen: who is using the app right now. The
// choice only scopes what the other screens show; it is not a login.
type ProfileModel struct {
	CommonModel
	participants participant.Set

	cursor int
}

func NewProfileModel(participants participant.Set) ProfileModel {
	return ProfileModel{participants: participants}
}

func (m ProfileModel) Title() string     { return "Who is here?" }
func (m ProfileModel) ShortHelp() string { return "←/→: move | Enter: select | q: quit" }

func (m ProfileModel) Init() tea.Cmd {
	return nil
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	members := m.participants.Members()

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "up", "h", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "down", "l", "j", "tab":
		if m.cursor < len(members)-1 {
			m.cursor++
		}
	case "enter":
		chosen := members[m.cursor].ID
		return m, func() tea.Msg { return ViewerChosenMsg{Viewer: chosen} }
	}

	return m, nil
}

func (m ProfileModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Who is here?")

	pills := make([]string, 0, m.participants.Len())

	for i, p := range m.participants.Members() {
		style := lipgloss.NewStyle().
			Padding(1, 4).
			Margin(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			Foreground(lipgloss.Color(p.Color))

		if i == m.cursor {
			style = style.
				BorderForeground(lipgloss.Color(p.Color)).
				Bold(true)
		} else {
			style = style.BorderForeground(lipgloss.Color("240"))
		}

		pills = append(pills, style.Render(p.DisplayName))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, pills...)

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", row, "", lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())),
	)
}
