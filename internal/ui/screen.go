package ui

import "tasklist/internal/tasks"

const placeholderText = "No tasks yet — add your first one!"

type row struct {
	id   string
	text string
	done bool
}

// screen is the part of the view the store writes into. Render throws the
// previous rows away and rebuilds them from the collection it is given.
type screen struct {
	rows    []row
	summary string
	errMsg  string
	errGen  int
}

func newScreen() *screen {
	return &screen{summary: tasks.Summary(nil)}
}

func (s *screen) Render(ts []tasks.Task) {
	if len(ts) == 0 {
		s.rows = nil
		s.UpdateSummary(nil)
		return
	}
	rows := make([]row, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, row{id: t.ID, text: t.Text, done: t.Done})
	}
	s.rows = rows
	s.UpdateSummary(ts)
}

func (s *screen) UpdateSummary(ts []tasks.Task) {
	s.summary = tasks.Summary(ts)
}

// ShowError replaces the current error. Each call gets a new generation so
// that only the latest error's timer can hide it.
func (s *screen) ShowError(msg string) {
	s.errMsg = msg
	s.errGen++
}

func (s *screen) clearError(gen int) {
	if gen == s.errGen {
		s.errMsg = ""
	}
}

func (s *screen) indexOf(id string) int {
	for i, r := range s.rows {
		if r.id == id {
			return i
		}
	}
	return -1
}
