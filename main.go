package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tobedone/pkg/cli"
	"tobedone/pkg/config"
	"tobedone/pkg/controller"
	"tobedone/pkg/database"
	"tobedone/pkg/prefs"
	"tobedone/pkg/repository"
	"tobedone/pkg/ui"
	"tobedone/pkg/utils"
)

func main() {
	// Parse command line arguments
	args := cli.ParseArgs()

	// Initialize the logging system
	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	// Load configuration and styles
	cfg, styles, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Override with command-line flag if provided
	if args.Database != "" {
		cfg.Database = args.Database
	}

	// Connect to database
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	// Ensure database schema
	if err := database.RunMigrations(ctx, db); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	repo := repository.New(db)

	// Check for non-interactive CLI commands first
	if cli.HandleCommands(db, repo, args) {
		return
	}

	// Interactive mode: all live subscriptions are scoped to the
	// program's lifetime
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefStore := prefs.NewStore(cfg.Preferences)
	list := controller.NewList(ctx, repo, prefStore)

	p := tea.NewProgram(ui.NewModel(repo, list, cfg, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
