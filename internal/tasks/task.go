// Package tasks holds the task model and the reload, mutate, persist, render
// cycle that every task operation goes through.
package tasks

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned when a task's text trims to nothing.
var ErrEmptyText = errors.New("task text is empty")

// EmptyTextMessage is what the user sees for ErrEmptyText.
const EmptyTextMessage = "Task cannot be empty!"

type Task struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Normalize trims raw and rejects empty or whitespace-only text.
func Normalize(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func indexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
