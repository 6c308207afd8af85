package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskflow/pkg/api"
	"taskflow/pkg/cli"
	"taskflow/pkg/config"
	"taskflow/pkg/query"
	"taskflow/pkg/session"
	"taskflow/pkg/ui"
	"taskflow/pkg/utils"
)

func main() {
	args := cli.ParseArgs()

	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	// Load configuration
	cfg, styles, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(cfg.SessionFile)
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeoutSeconds)*time.Second, sess)

	// Headless commands run without the TUI
	if cli.HandleCommands(client, sess, args) {
		return
	}

	// The -view flag seeds the task list with a saved view
	var initial *query.State
	if args.View != "" {
		initial, err = query.ParseView(args.View)
		if err != nil {
			fmt.Printf("Error parsing view: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(ui.NewModel(client, sess, cfg, styles, initial), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
