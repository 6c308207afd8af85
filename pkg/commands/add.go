package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"taskflow/pkg/api"
)

// HandleAddTask processes the --add command
func HandleAddTask(client *api.Client, taskText string, dateStr string) {
	if dateStr != "" {
		// Validate the date before sending it along.
		if _, err := time.Parse("2006-01-02", dateStr); err != nil {
			fmt.Printf("Error parsing date: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Default to today
		dateStr = time.Now().Format("2006-01-02")
	}

	input := api.TaskInput{
		Title:    taskText,
		DueDate:  dateStr,
		Status:   api.StatusTodo,
		Priority: api.PriorityMedium,
	}

	task, err := client.CreateTask(context.Background(), input)
	if err != nil {
		fmt.Printf("Error adding task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Task added: %s\n", task.Title)
}
