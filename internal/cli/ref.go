package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasklist/internal/tasks"
)

var (
	errNoTask        = errors.New("no matching task")
	errAmbiguousTask = errors.New("task reference is ambiguous")
)

// resolveRef finds the task a command-line reference points at. A number
// without leading zeros that falls inside the list is a 1-based position.
// Anything else is matched as an id prefix, with or without the "t_"
// prefix, so ids like "019a..." stay reachable by their digits.
func resolveRef(list []tasks.Task, ref string) (tasks.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return tasks.Task{}, fmt.Errorf("%w: empty reference", errNoTask)
	}

	if n, ok := position(ref, len(list)); ok {
		return list[n-1], nil
	}

	var matches []tasks.Task
	for _, t := range list {
		if strings.HasPrefix(t.ID, ref) || strings.HasPrefix(strings.TrimPrefix(t.ID, "t_"), ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		if isAllDigits(ref) {
			return tasks.Task{}, fmt.Errorf("%w: no task at position or id prefix %s", errNoTask, ref)
		}
		return tasks.Task{}, fmt.Errorf("%w: %s", errNoTask, ref)
	case 1:
		return matches[0], nil
	default:
		return tasks.Task{}, fmt.Errorf("%w: %s matches %d tasks", errAmbiguousTask, ref, len(matches))
	}
}

func position(ref string, n int) (int, bool) {
	if !isAllDigits(ref) || ref[0] == '0' {
		return 0, false
	}
	pos, err := strconv.Atoi(ref)
	if err != nil || pos < 1 || pos > n {
		return 0, false
	}
	return pos, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
