package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateInput    State = "input"
	StateSending  State = "sending"
	StateComplete State = "complete"
	StateError    State = "error"
)

const maxLogs = 5

// Model is the TUI state
type Model struct {
	Client *StudyClient

	State     State
	Input     string
	Link      string
	Response  string
	Err       error
	Connected bool
	Started   time.Time
	Logs      []string
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client: NewStudyClient(serverURL),
		State:  StateInput,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return checkHealth(m.Client)
}

// AddLog appends a line to the activity log, keeping the last few
func (m Model) AddLog(msg string) Model {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > maxLogs {
		m.Logs = m.Logs[len(m.Logs)-maxLogs:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateInput:
		input := m.Input
		if input == "" {
			input = InfoStyle.Render(TextPlaceholder)
		}
		return TextPrompt + input + CursorStyle.Render(" ")
	case StateSending:
		return StatusStyle.Render(fmt.Sprintf("⏳ Fetching transcript and generating study guide for %s...", m.Link))
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}
