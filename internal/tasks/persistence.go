package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultKey is the storage key the whole collection lives under.
const DefaultKey = "tasks"

// KV is the key-value backend the collection is persisted in.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Persistence reads and writes the full collection as one JSON blob.
type Persistence struct {
	kv     KV
	key    string
	onSave func([]Task)
}

func NewPersistence(kv KV, key string) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{kv: kv, key: key}
}

// OnSave registers fn to run with the saved collection after every
// successful Save.
func (p *Persistence) OnSave(fn func([]Task)) {
	p.onSave = fn
}

func (p *Persistence) Key() string {
	return p.key
}

// Load returns the stored collection. A missing or malformed blob yields an
// empty collection and no error; only backend failures are reported.
func (p *Persistence) Load() ([]Task, error) {
	raw, ok, err := p.kv.Get(p.key)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", p.key, err)
	}
	if !ok {
		return []Task{}, nil
	}
	return decode(raw), nil
}

// Save overwrites the stored blob with tasks.
func (p *Persistence) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := p.kv.Set(p.key, string(data)); err != nil {
		return fmt.Errorf("writing %q: %w", p.key, err)
	}
	if p.onSave != nil {
		p.onSave(tasks)
	}
	return nil
}

func decode(raw string) []Task {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []Task{}
	}
	tasks := make([]Task, 0, len(records))
	for _, rec := range records {
		if !bytes.HasPrefix(bytes.TrimSpace(rec), []byte("{")) {
			return []Task{}
		}
		var t Task
		if err := json.Unmarshal(rec, &t); err != nil {
			return []Task{}
		}
		tasks = append(tasks, t)
	}
	return tasks
}
