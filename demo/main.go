package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"studybot/demo/tui"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	defaultURL := os.Getenv("STUDYBOT_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	serverURL := flag.String("url", defaultURL, "StudyBot API URL")
	flag.Parse()

	program := tea.NewProgram(tui.NewModel(*serverURL))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
