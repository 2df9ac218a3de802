package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var landingButtonStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(lipgloss.Color("208")).
	Foreground(lipgloss.Color("208")).
	Bold(true).
	Padding(1, 4)

// LandingModel is the entry screen: a single call-to-action that opens
// the ticket form.
type LandingModel struct {
	client string // store-name pre-fill carried into the form
	width  int
	height int
}

// NewLandingModel creates the landing screen.
func NewLandingModel(client string) LandingModel {
	return LandingModel{client: client}
}

// Init initializes the model.
func (m LandingModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m LandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			return m, func() tea.Msg { return openFormMsg{} }
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return QuitMsg{} }
		}
	}

	return m, nil
}

// View renders the landing screen.
func (m LandingModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	button := landingButtonStyle.Render("Support Ticket")
	hint := DimStyle.Render("enter: report a screen issue • q: quit")
	content := lipgloss.JoinVertical(lipgloss.Center, button, "", hint)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
