package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskflow/pkg/api"
)

// HandleImportCommand processes --import commands
func HandleImportCommand(client *api.Client, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	var tasksAdded int
	if strings.HasSuffix(filename, ".json") {
		tasksAdded = importJSON(client, content)
	} else {
		tasksAdded = importText(client, content)
	}

	fmt.Printf("Successfully imported %d task(s) from %s\n", tasksAdded, filename)
}

// importJSON reads a previously exported JSON dump and recreates the
// tasks through the API. Server-assigned fields are ignored.
func importJSON(client *api.Client, content []byte) int {
	var tasks []api.Task
	if err := json.Unmarshal(content, &tasks); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	var added int
	for _, task := range tasks {
		input := api.TaskInput{
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
		}
		if input.Status == "" {
			input.Status = api.StatusTodo
		}
		if input.Priority == "" {
			input.Priority = api.PriorityMedium
		}
		if !task.DueDate.IsZero() {
			input.DueDate = task.DueDate.Format("2006-01-02")
		}

		if _, err := client.CreateTask(context.Background(), input); err != nil {
			fmt.Printf("Error adding task '%s': %v\n", task.Title, err)
			continue
		}
		added++
	}
	return added
}

// importText parses the plain text export format: date header lines
// followed by "- [ ] title" task lines.
func importText(client *api.Client, content []byte) int {
	lines := strings.Split(string(content), "\n")
	var currentDate time.Time
	var added int

	dateRegex := regexp.MustCompile(`(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?`)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Date header in DD.MM.YYYY: or YYYY-MM-DD: format
		if dateMatch := dateRegex.FindStringSubmatch(line); dateMatch != nil && !strings.HasPrefix(line, "- ") {
			var day, month, year int
			if dateMatch[1] != "" {
				day, _ = strconv.Atoi(dateMatch[1])
				month, _ = strconv.Atoi(dateMatch[2])
				year, _ = strconv.Atoi(dateMatch[3])
			} else {
				year, _ = strconv.Atoi(dateMatch[4])
				month, _ = strconv.Atoi(dateMatch[5])
				day, _ = strconv.Atoi(dateMatch[6])
			}
			currentDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			continue
		}

		if !strings.HasPrefix(line, "- ") {
			continue
		}
		taskText := strings.TrimPrefix(line, "- ")
		if taskText == "" {
			continue
		}

		status := api.StatusTodo
		if strings.HasPrefix(taskText, "[x]") {
			status = api.StatusDone
			taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[x]"))
		} else if strings.HasPrefix(taskText, "[ ]") {
			taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[ ]"))
		}
		if taskText == "" {
			continue
		}

		input := api.TaskInput{
			Title:    taskText,
			Status:   status,
			Priority: api.PriorityMedium,
		}
		if !currentDate.IsZero() {
			input.DueDate = currentDate.Format("2006-01-02")
		}

		if _, err := client.CreateTask(context.Background(), input); err != nil {
			fmt.Printf("Error adding task '%s': %v\n", taskText, err)
			continue
		}
		added++
	}

	return added
}
