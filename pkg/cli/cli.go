package cli

import (
	"flag"
	"fmt"
	"os"

	"taskflow/pkg/api"
	"taskflow/pkg/commands"
	"taskflow/pkg/session"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// Initial task list view (url encoded query, e.g. "filter=Pending&page=2")
	View string

	// Task operations
	AddTask  string
	DateFlag string

	// Purge operations
	Purge      bool
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

	// Define command line flags
	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")
	flag.StringVar(&args.View, "view", "", "Open the task list with this view (url encoded query)")

	// Task operations
	flag.StringVar(&args.AddTask, "add", "", "Add a new task")
	flag.StringVar(&args.DateFlag, "date", "", "Date for task (YYYY-MM-DD format)")

	// Purge operations
	flag.BoolVar(&args.Purge, "purge", false, "Delete matching tasks")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")
	flag.BoolVar(&args.DoneFlag, "done", false, "Filter completed tasks")
	flag.BoolVar(&args.UndoneFlag, "undone", false, "Filter uncompleted tasks")

	// Import/Export operations
	flag.StringVar(&args.ImportFile, "import", "", "Import tasks from file")
	flag.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	flag.StringVar(&args.TypeFlag, "type", "json", "Export file type (json, txt)")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command
// was handled. Every command talks to the API, so a saved session is
// required.
func HandleCommands(client *api.Client, sess *session.Store, args *Args) bool {
	if args.AddTask == "" && !args.Purge && args.ImportFile == "" && args.ExportFile == "" {
		// No CLI command was handled
		return false
	}

	sess.Initialize()
	if !sess.Authenticated() {
		fmt.Println("Not logged in. Start the app without flags and log in first.")
		os.Exit(1)
	}

	if args.AddTask != "" {
		commands.HandleAddTask(client, args.AddTask, args.DateFlag)
		return true
	}

	if args.Purge {
		commands.HandlePurgeCommand(client, args.DateFlag, args.YesFlag, args.DoneFlag, args.UndoneFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(client, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(client, args.ExportFile, args.TypeFlag)
		return true
	}

	return false
}
