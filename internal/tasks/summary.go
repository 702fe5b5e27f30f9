package tasks

import "fmt"

// Counts returns the number of tasks and how many of them are done.
func Counts(tasks []Task) (total, done int) {
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	return len(tasks), done
}

// Summary renders the one-line count shown under the list.
func Summary(tasks []Task) string {
	total, done := Counts(tasks)
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("You have %d %s — %d completed.", total, noun, done)
}
