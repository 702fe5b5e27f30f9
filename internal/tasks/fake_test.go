package tasks

import (
	"errors"
	"fmt"
	"testing"

	"tasklist/internal/storage"
)

// recordingView keeps what the store last rendered.
type recordingView struct {
	rendered  []Task
	renders   int
	summary   []Task
	summaries int
	errors    []string
}

func (v *recordingView) Render(tasks []Task) {
	v.rendered = append([]Task(nil), tasks...)
	v.renders++
	v.UpdateSummary(tasks)
}

func (v *recordingView) UpdateSummary(tasks []Task) {
	v.summary = append([]Task(nil), tasks...)
	v.summaries++
}

func (v *recordingView) ShowError(msg string) {
	v.errors = append(v.errors, msg)
}

var errBackend = errors.New("disk on fire")

type failingKV struct {
	getErr error
	setErr error
}

func (f failingKV) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f failingKV) Set(string, string) error         { return f.setErr }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t_%d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *recordingView) {
	t.Helper()
	kv := storage.NewMemory()
	view := &recordingView{}
	return NewStore(kv, DefaultKey, view, WithIDFunc(sequentialIDs())), kv, view
}

func stored(t *testing.T, kv KV) []Task {
	t.Helper()
	tasks, err := NewPersistence(kv, DefaultKey).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return tasks
}

func newMemKV() *storage.Memory {
	return storage.NewMemory()
}
