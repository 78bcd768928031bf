package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pushpitasaha/thinkbot-AI/api"
	"github.com/pushpitasaha/thinkbot-AI/config"
	"github.com/pushpitasaha/thinkbot-AI/model"
	"github.com/pushpitasaha/thinkbot-AI/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		errorModal := ui.NewErrorModal("Configuration Error",
			fmt.Sprintf("Failed to load configuration:\n\n%v\n\n"+
				"Check %s or the THINKBOT_* environment variables.",
				err, config.GetSettingsFilePath()))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, runErr := p.Run(); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	client, err := api.NewClient(cfg.BaseURL(), cfg.RequestTimeout)
	if err != nil {
		errorModal := ui.NewErrorModal("Configuration Error",
			fmt.Sprintf("Invalid backend URL:\n\n%v", err))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, runErr := p.Run(); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		os.Exit(1)
	}
	session := model.NewSession(cfg, client)

	p := tea.NewProgram(
		ui.NewAppView(session, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
