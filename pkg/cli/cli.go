package cli

import (
	"database/sql"
	"flag"

	"tobedone/pkg/commands"
	"tobedone/pkg/repository"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Database   string
	Verbose    bool

	// Note operations
	AddNote      string
	PriorityFlag int

	// Database operations
	PurgeFlag  bool
	YesFlag    bool
	DoneFlag   bool
	UndoneFlag bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	args := &Args{}

	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&args.Database, "database", "", "Path to database file")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Note operations
	flag.StringVar(&args.AddNote, "add", "", "Add a new note with the given content")
	flag.IntVar(&args.PriorityFlag, "priority", 0, "Priority for -add / filter for -purge (1-5)")

	// Database operations
	flag.BoolVar(&args.PurgeFlag, "purge", false, "Delete notes matching the given filters")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")
	flag.BoolVar(&args.DoneFlag, "done", false, "Restrict -purge to done notes")
	flag.BoolVar(&args.UndoneFlag, "undone", false, "Restrict -purge to pending notes")

	// Import/Export operations
	flag.StringVar(&args.ImportFile, "import", "", "Import notes from file (txt lines split title from content at the first ': ', so a title containing ': ' is truncated there)")
	flag.StringVar(&args.ExportFile, "export", "", "Export notes to file")
	flag.StringVar(&args.TypeFlag, "type", "json", "Export file type (json, txt)")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(db *sql.DB, repo *repository.Repository, args *Args) bool {
	if args.AddNote != "" {
		commands.HandleAddNote(repo, args.AddNote, args.PriorityFlag)
		return true
	}

	if args.PurgeFlag {
		commands.HandlePurgeCommand(db, args.DoneFlag, args.UndoneFlag, args.PriorityFlag, args.YesFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(repo, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(db, args.ExportFile, args.TypeFlag)
		return true
	}

	// No CLI command was handled
	return false
}
