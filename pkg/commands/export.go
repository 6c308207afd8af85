package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"taskflow/pkg/api"
)

const exportPageSize = 100

// HandleExportCommand processes --export commands
func HandleExportCommand(client *api.Client, filename, exportType string) {
	tasks, err := fetchAllTasks(client)
	if err != nil {
		fmt.Printf("Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	var content []byte

	switch exportType {
	case "json":
		content, err = json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling tasks to JSON: %v\n", err)
			os.Exit(1)
		}
	case "txt":
		var lines []string
		var lastDate string
		for _, task := range tasks {
			dateStr := task.DueDate.Format("02.01.2006")
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}

			status := " "
			if task.Status == api.StatusDone {
				status = "x"
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s", status, task.Title))
		}
		content = []byte(strings.TrimSpace(strings.Join(lines, "\n")))
	default:
		fmt.Printf("Unknown export type: %s\n", exportType)
		os.Exit(1)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully exported %d task(s) to %s\n", len(tasks), filename)
}

// fetchAllTasks pages through the task list endpoint until the server
// reports no further pages.
func fetchAllTasks(client *api.Client) ([]api.Task, error) {
	var tasks []api.Task

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("search", "")
		params.Set("page", strconv.Itoa(page))
		params.Set("limit", strconv.Itoa(exportPageSize))

		result, err := client.ListTasks(context.Background(), params)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, result.Tasks...)

		if page >= result.TotalPages || len(result.Tasks) == 0 {
			break
		}
	}

	return tasks, nil
}
