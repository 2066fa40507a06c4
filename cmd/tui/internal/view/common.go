package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lbarreto/equifinance/internal/participant"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// ViewerChosenMsg is emitted by the profile screen when a participant is
// picked. The root model keeps it and stamps it on every view it opens.
type ViewerChosenMsg struct {
	Viewer participant.ID
}
