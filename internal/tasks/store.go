package tasks

import (
	"errors"
	"fmt"
	"log/slog"
)

const maxIDAttempts = 8

// View is the presentation side of the store. Render rebuilds the whole
// list from the given collection and then refreshes the summary from it.
type View interface {
	Render(tasks []Task)
	UpdateSummary(tasks []Task)
	ShowError(msg string)
}

// Store runs every operation as a full reload, mutate, persist, render
// cycle. It keeps no collection between calls, so the last writer to the
// backend wins when several processes share it.
type Store struct {
	persist *Persistence
	view    View
	newID   func() string
	log     *slog.Logger
}

type Option func(*Store)

// WithIDFunc replaces NewID as the identifier source.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func NewStore(kv KV, key string, view View, opts ...Option) *Store {
	s := &Store{
		persist: NewPersistence(kv, key),
		view:    view,
		newID:   NewID,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.persist.OnSave(view.UpdateSummary)
	return s
}

// Add prepends a new task with the trimmed text. Empty text is reported to
// the view and returned as ErrEmptyText without touching storage.
func (s *Store) Add(raw string) (Task, error) {
	text, err := Normalize(raw)
	if err != nil {
		s.view.ShowError(EmptyTextMessage)
		return Task{}, err
	}
	tasks, err := s.load()
	if err != nil {
		return Task{}, err
	}
	id, err := s.uniqueID(tasks)
	if err != nil {
		s.view.ShowError(fmt.Sprintf("add failed: %v", err))
		return Task{}, err
	}
	t := Task{ID: id, Text: text}
	tasks = append([]Task{t}, tasks...)
	if err := s.commit(tasks); err != nil {
		return Task{}, err
	}
	s.log.Debug("task added", "id", t.ID)
	return t, nil
}

// Remove deletes the task with id. An unknown id leaves the collection as is
// but is still persisted and rendered.
func (s *Store) Remove(id string) error {
	tasks, err := s.load()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := s.commit(kept); err != nil {
		return err
	}
	s.log.Debug("task removed", "id", id)
	return nil
}

// Toggle flips the done flag of the task with id. Unknown ids are ignored.
func (s *Store) Toggle(id string) error {
	tasks, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(tasks, id)
	if idx == -1 {
		return nil
	}
	tasks[idx].Done = !tasks[idx].Done
	if err := s.commit(tasks); err != nil {
		return err
	}
	s.log.Debug("task toggled", "id", id, "done", tasks[idx].Done)
	return nil
}

// Edit commits raw as the new text of the task with id. Empty text keeps the
// old text and returns ErrEmptyText, but the collection is still persisted
// and rendered.
func (s *Store) Edit(id, raw string) error {
	tasks, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(tasks, id)
	if idx == -1 {
		return nil
	}
	text, verr := Normalize(raw)
	if verr != nil {
		s.view.ShowError(EmptyTextMessage)
	} else {
		tasks[idx].Text = text
	}
	if err := s.commit(tasks); err != nil {
		return err
	}
	if verr != nil {
		return verr
	}
	s.log.Debug("task edited", "id", id)
	return nil
}

// ClearCompleted removes every done task and returns how many were removed.
func (s *Store) ClearCompleted() (int, error) {
	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	removed := len(tasks) - len(kept)
	if err := s.commit(kept); err != nil {
		return 0, err
	}
	s.log.Debug("completed tasks cleared", "removed", removed)
	return removed, nil
}

// Get looks up a single task.
func (s *Store) Get(id string) (Task, bool, error) {
	tasks, err := s.load()
	if err != nil {
		return Task{}, false, err
	}
	idx := indexOf(tasks, id)
	if idx == -1 {
		return Task{}, false, nil
	}
	return tasks[idx], true, nil
}

// List returns the stored collection without rendering it.
func (s *Store) List() ([]Task, error) {
	return s.load()
}

// Refresh renders the stored collection.
func (s *Store) Refresh() ([]Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	s.view.Render(tasks)
	return tasks, nil
}

func (s *Store) load() ([]Task, error) {
	tasks, err := s.persist.Load()
	if err != nil {
		s.log.Error("load failed", "key", s.persist.Key(), "err", err)
		s.view.ShowError(fmt.Sprintf("load failed: %v", err))
		return nil, err
	}
	return tasks, nil
}

func (s *Store) commit(tasks []Task) error {
	if err := s.persist.Save(tasks); err != nil {
		s.log.Error("save failed", "key", s.persist.Key(), "err", err)
		s.view.ShowError(fmt.Sprintf("save failed: %v", err))
		return err
	}
	s.view.Render(tasks)
	return nil
}

func (s *Store) uniqueID(tasks []Task) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && indexOf(tasks, id) == -1 {
			return id, nil
		}
	}
	return "", errors.New("no unique task id available")
}
