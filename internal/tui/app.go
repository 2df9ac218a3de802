package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/warrick/screendesk/internal/monday"
	"github.com/warrick/screendesk/internal/ticket"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenLanding AppScreen = iota
	ScreenForm
)

// AppModel is the root Bubble Tea model that manages screen transitions:
// the landing screen, then the ticket form.
type AppModel struct {
	// Dependencies
	svc      monday.Service
	ctx      context.Context
	client   string // store-name pre-fill (from --client)
	boardURL string

	// Current state
	currentScreen AppScreen
	currentModel  tea.Model
	err           error
}

// NewAppModel creates the root model. client, when non-empty, pre-fills
// the store name the way the web portal's ?client= parameter did.
func NewAppModel(svc monday.Service, ctx context.Context, client, boardURL string) AppModel {
	landing := NewLandingModel(client)
	return AppModel{
		svc:           svc,
		ctx:           ctx,
		client:        client,
		boardURL:      boardURL,
		currentScreen: ScreenLanding,
		currentModel:  landing,
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return m.currentModel.Init()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case openFormMsg:
		m.currentScreen = ScreenForm
		prefill := ""
		if m.client != "" {
			prefill = m.client + " Test"
		}
		store := ticket.NewStore(prefill)
		form := NewFormModel(store, ticket.NewSubmitter(m.svc), m.ctx, m.boardURL)
		m.currentModel = form
		return m, form.Init()
	}

	// Delegate to current screen's model
	if m.currentModel != nil {
		var cmd tea.Cmd
		m.currentModel, cmd = m.currentModel.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to quit", m.err))
	}
	if m.currentModel != nil {
		return m.currentModel.View()
	}
	return ""
}
