package tui

// UI Text Constants
const (
	TextTitle        = "📚 StudyBot"
	TextPrompt       = "YouTube link: "
	TextPlaceholder  = "https://www.youtube.com/watch?v=..."
	TextFooterInput  = "Enter to submit | Esc or Ctrl+C to quit"
	TextFooterWait   = "Ctrl+C to quit"
	TextFooterResult = "Enter or 'n' for a new link | 'q' to quit"
)
