package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stocklab.io/inventory-chat/internal/config"
	"stocklab.io/inventory-chat/internal/core"
	"stocklab.io/inventory-chat/internal/gateway"
	"stocklab.io/inventory-chat/internal/logging"
	"stocklab.io/inventory-chat/internal/state"
	"stocklab.io/inventory-chat/internal/ui"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Command line override for the API base URL
	apiFlag := flag.String("api", "", "Override the inventory API base URL")
	flag.Parse()

	apiBase := config.AppConfig.APIBaseURL
	if *apiFlag != "" {
		apiBase = *apiFlag
	}

	// The TUI owns the terminal, so logs go to a file.
	log := logging.New(config.AppConfig.LogFile, config.AppConfig.LogLevel)
	defer log.Sync()

	log.Info("client starting", zap.String("api_base", apiBase))

	gw := gateway.NewClient(apiBase, time.Duration(config.AppConfig.HTTPTimeout)*time.Second, log)
	session := state.New()
	synchronizer := core.NewSynchronizer(gw, session, log)
	chatService := core.NewChatService(gw, synchronizer, session, log)

	model := ui.New(session, synchronizer, chatService, apiBase, log)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Error("TUI exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	log.Info("client exiting")
}
