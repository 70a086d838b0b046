package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// checkHealth creates a command that pings the server
func checkHealth(client *StudyClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return HealthMsg{Err: client.Health(ctx)}
	}
}

// requestSummary creates a command that submits link for summarizing
func requestSummary(client *StudyClient, link string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Summarize(context.Background(), link)
		return SummaryMsg{Link: link, Response: resp, Err: err}
	}
}
