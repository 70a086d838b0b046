package tui

import (
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")
	if m.Connected {
		b.WriteString(InfoStyle.Render("🌐 " + m.Client.baseURL))
	} else {
		b.WriteString(ErrorStyle.Render("❌ Not connected to " + m.Client.baseURL))
	}
	b.WriteString("\n\n")

	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateComplete && m.Response != "" {
		b.WriteString(BoxStyle.Render(strings.TrimSpace(m.Response)))
		b.WriteString("\n\n")
	}

	switch m.State {
	case StateInput:
		b.WriteString(InfoStyle.Render(TextFooterInput))
	case StateSending:
		b.WriteString(InfoStyle.Render(TextFooterWait))
	default:
		b.WriteString(HighlightStyle.Render(TextFooterResult))
	}

	return b.String()
}
