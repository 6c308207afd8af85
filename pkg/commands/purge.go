package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"taskflow/pkg/api"
)

// HandlePurgeCommand processes the --purge command. It deletes matching
// tasks one by one since the API has no bulk delete.
func HandlePurgeCommand(client *api.Client, dateStr string, skipConfirm, doneOnly, undoneOnly bool) {
	tasks, err := fetchAllTasks(client)
	if err != nil {
		fmt.Printf("Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	var targets []api.Task
	for _, task := range tasks {
		if dateStr != "" && task.DueDate.Format("2006-01-02") != dateStr {
			continue
		}
		if doneOnly && task.Status != api.StatusDone {
			continue
		}
		if undoneOnly && task.Status == api.StatusDone {
			continue
		}
		targets = append(targets, task)
	}

	if len(targets) == 0 {
		fmt.Println("No matching tasks.")
		return
	}

	// Show confirmation unless --yes flag is used
	if !skipConfirm {
		fmt.Printf("Are you sure you want to delete %d task(s)? (y/N): ", len(targets))
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	var deleted int
	for _, task := range targets {
		if err := client.DeleteTask(context.Background(), task.ID); err != nil {
			fmt.Printf("Error deleting task '%s': %v\n", task.Title, err)
			continue
		}
		deleted++
	}

	fmt.Printf("Successfully deleted %d task(s)\n", deleted)
}
