package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case HealthMsg:
		return m.handleHealth(msg)
	case SummaryMsg:
		return m.handleSummary(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.State {
	case StateInput:
		return m.handleInputKey(msg)
	case StateComplete, StateError:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "n", "enter":
			m.State = StateInput
			m.Input = ""
			m.Response = ""
			m.Err = nil
		}
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		link := strings.TrimSpace(m.Input)
		if link == "" {
			return m, nil
		}
		m.Link = link
		m.State = StateSending
		m.Started = time.Now()
		m = m.AddLog("Submitted " + link)
		return m, requestSummary(m.Client, link)
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Input += " "
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
	}
	return m, nil
}

// handleHealth records whether the server answered
func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	m.Connected = msg.Err == nil
	if msg.Err != nil {
		m = m.AddLog(fmt.Sprintf("Server not reachable: %v", msg.Err))
	} else {
		m = m.AddLog("Connected to server")
	}
	return m, nil
}

// handleSummary processes the server response
func (m Model) handleSummary(msg SummaryMsg) (tea.Model, tea.Cmd) {
	elapsed := time.Since(m.Started).Round(100 * time.Millisecond)
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		m = m.AddLog(fmt.Sprintf("Failed after %s", elapsed))
		return m, nil
	}
	m.State = StateComplete
	m.Response = msg.Response
	m = m.AddLog(fmt.Sprintf("Study guide received in %s (%d chars)", elapsed, len([]rune(msg.Response))))
	return m, nil
}
