package tasks

import (
	"errors"
	"reflect"
	"testing"
)

func TestPersistence_LoadMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "not json", raw: "{{nope"},
		{name: "object", raw: `{"id":"a","text":"x"}`},
		{name: "string", raw: `"tasks"`},
		{name: "array of numbers", raw: `[1,2,3]`},
		{name: "array with null", raw: `[null]`},
		{name: "wrong field type", raw: `[{"id":"a","text":"x","done":"yes"}]`},
		{name: "json null", raw: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kv := newMemKV()
			kv.Set(DefaultKey, tt.raw)
			got, err := NewPersistence(kv, DefaultKey).Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Load() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestPersistence_LoadAbsent(t *testing.T) {
	t.Parallel()

	got, err := NewPersistence(newMemKV(), "").Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %#v, want empty", got)
	}
}

func TestPersistence_LoadPartialRecords(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	kv.Set(DefaultKey, `[{"id":"t_1","text":"a"},{"id":"t_2","text":"b","done":true,"extra":1}]`)
	got, err := NewPersistence(kv, DefaultKey).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []Task{{ID: "t_1", Text: "a"}, {ID: "t_2", Text: "b", Done: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	p := NewPersistence(kv, DefaultKey)
	want := []Task{{ID: "t_2", Text: "Walk dog"}, {ID: "t_1", Text: "Buy milk", Done: true}}
	if err := p.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	blob, _, _ := kv.Get(DefaultKey)

	loaded, err := p.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := p.Save(loaded); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	again, _, _ := kv.Get(DefaultKey)
	if again != blob {
		t.Errorf("save(load()) changed blob:\n%s\n%s", blob, again)
	}
	if got, _ := p.Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestPersistence_CorruptThenEmptySave(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	kv.Set(DefaultKey, "garbage")
	p := NewPersistence(kv, DefaultKey)

	tasks, _ := p.Load()
	if err := p.Save(tasks); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if blob, _, _ := kv.Get(DefaultKey); blob != "[]" {
		t.Errorf("blob = %q, want []", blob)
	}
	if got, _ := p.Load(); len(got) != 0 {
		t.Errorf("Load() = %+v, want empty", got)
	}
}

func TestPersistence_SaveNilWritesEmptyArray(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	if err := NewPersistence(kv, "custom").Save(nil); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if blob, ok, _ := kv.Get("custom"); !ok || blob != "[]" {
		t.Errorf("blob = (%q, %v), want ([], true)", blob, ok)
	}
}

func TestPersistence_OnSave(t *testing.T) {
	t.Parallel()

	p := NewPersistence(newMemKV(), DefaultKey)
	var seen []Task
	calls := 0
	p.OnSave(func(tasks []Task) {
		calls++
		seen = tasks
	})

	want := []Task{{ID: "t_1", Text: "a"}}
	if err := p.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if calls != 1 || !reflect.DeepEqual(seen, want) {
		t.Errorf("hook called %d times with %+v", calls, seen)
	}
}

func TestPersistence_BackendErrors(t *testing.T) {
	t.Parallel()

	p := NewPersistence(failingKV{getErr: errBackend, setErr: errBackend}, DefaultKey)
	called := false
	p.OnSave(func([]Task) { called = true })

	if _, err := p.Load(); !errors.Is(err, errBackend) {
		t.Errorf("Load() error = %v, want %v", err, errBackend)
	}
	if err := p.Save(nil); !errors.Is(err, errBackend) {
		t.Errorf("Save() error = %v, want %v", err, errBackend)
	}
	if called {
		t.Error("OnSave hook ran after a failed save")
	}
}
