package tui

// HealthMsg reports the result of the startup health check
type HealthMsg struct {
	Err error
}

// SummaryMsg carries the server's answer for a submitted link
type SummaryMsg struct {
	Link     string
	Response string
	Err      error
}
