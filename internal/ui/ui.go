package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/tasks"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type clearErrorMsg struct {
	gen int
}

type Model struct {
	store      *tasks.Store
	screen     *screen
	cfg        config.Config
	log        *slog.Logger
	errTimeout time.Duration
	cursor     int
	mode       mode
	input      textinput.Model
	canSubmit  bool
	edit       textinput.Model
	editID     string
	editOrig   string
	editShown  string
	status     string
	confirmDel bool
	pendingDel *row
}

// Run starts the terminal UI against kv and blocks until the user quits.
func Run(kv tasks.KV, cfg config.Config, logger *slog.Logger) error {
	m, err := New(kv, cfg, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithReportFocus())
	_, err = program.Run()
	return err
}

// New builds the model and renders the stored collection once.
func New(kv tasks.KV, cfg config.Config, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	scr := newScreen()
	store := tasks.NewStore(kv, cfg.StorageKey, scr, tasks.WithLogger(logger))
	if _, err := store.Refresh(); err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Width = 40

	// No limit on the edit field: the stored text may be longer than
	// anything the add field accepts.
	ed := textinput.New()
	ed.CharLimit = 0
	ed.Width = 40

	status := fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit, '%s' to delete.",
		cfg.Keys.Add, keyName(cfg.Keys.Toggle), cfg.Keys.Edit, cfg.Keys.Delete)

	return Model{
		store:      store,
		screen:     scr,
		cfg:        cfg,
		log:        logger,
		errTimeout: cfg.ErrorTimeoutDuration(),
		cursor:     clampCursor(0, len(scr.rows)),
		mode:       modeList,
		input:      ti,
		edit:       ed,
		status:     status,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update schedules the auto-hide for any error raised while handling msg.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	gen := m.screen.errGen
	next, cmd := m.update(msg)
	if m.screen.errGen != gen {
		cmd = tea.Batch(cmd, clearErrorAfter(m.errTimeout, m.screen.errGen))
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearErrorMsg:
		m.screen.clearError(msg.gen)
	case tea.BlurMsg:
		if m.mode == modeEdit {
			return m.finishEdit(true)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.edit.Width = msg.Width - 16
	}
	return m, nil
}

func clearErrorAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearErrorMsg{gen: gen}
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.clearInput()
		m.input.Blur()
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		if _, err := m.store.Add(m.input.Value()); err != nil {
			return m, nil
		}
		m.clearInput()
		m.cursor = 0
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.canSubmit = strings.TrimSpace(m.input.Value()) != ""
		return m, cmd
	}
}

func (m *Model) clearInput() {
	m.input.SetValue("")
	m.canSubmit = false
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.screen.rows) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.screen.rows))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.screen.rows))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.status = "Add mode: type a task and press Enter, Esc to leave"
		cmd := m.input.Focus()
		return m, cmd
	case m.cfg.Keys.Toggle:
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.Toggle(r.id); err != nil {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.screen.rows))
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.cfg.ConfirmDelete {
			m.confirmDel = true
			m.pendingDel = &r
			m.status = fmt.Sprintf("Delete \"%s\"? y/n", r.text)
			return m, nil
		}
		return m.remove(r.id)
	case m.cfg.Keys.Edit:
		return m.startEdit()
	case m.cfg.Keys.ClearDone:
		n, err := m.store.ClearCompleted()
		if err != nil {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.screen.rows))
		m.status = fmt.Sprintf("Cleared %d completed", n)
	}
	return m, nil
}

func (m Model) remove(id string) (tea.Model, tea.Cmd) {
	if err := m.store.Remove(id); err != nil {
		return m, nil
	}
	m.cursor = clampCursor(m.cursor, len(m.screen.rows))
	m.status = "Deleted task"
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	pending := m.pendingDel
	m.confirmDel = false
	m.pendingDel = nil
	switch key {
	case "y", "Y":
		if pending == nil {
			m.status = "Nothing to delete"
			return m, nil
		}
		return m.remove(pending.id)
	default:
		m.status = "Delete cancelled"
		return m, nil
	}
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		m.status = "No tasks to edit"
		return m, nil
	}
	t, found, err := m.store.Get(r.id)
	if err != nil || !found {
		return m, nil
	}
	m.log.Debug("edit started", "id", t.ID)
	m.editID = t.ID
	m.editOrig = t.Text
	m.edit.SetValue(t.Text)
	m.editShown = m.edit.Value()
	m.edit.CursorEnd()
	m.mode = modeEdit
	m.status = "Editing: Enter or Tab to save, Esc to discard"
	cmd := m.edit.Focus()
	return m, cmd
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Confirm, "tab":
		return m.finishEdit(true)
	case m.cfg.Keys.Cancel:
		return m.finishEdit(false)
	default:
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}
}

// finishEdit leaves edit mode. Saving goes through Store.Edit; discarding
// re-renders from storage without writing. The field flattens tabs and
// newlines, so an untouched field saves the original text.
func (m Model) finishEdit(save bool) (tea.Model, tea.Cmd) {
	id := m.editID
	value := m.edit.Value()
	if value == m.editShown {
		value = m.editOrig
	}
	m.editID, m.editOrig, m.editShown = "", "", ""
	m.mode = modeList
	m.edit.Blur()

	if !save {
		m.log.Debug("edit discarded", "id", id)
		if _, err := m.store.Refresh(); err == nil {
			m.status = "Edit discarded"
		}
		m.cursor = clampCursor(m.cursor, len(m.screen.rows))
		return m, nil
	}

	err := m.store.Edit(id, value)
	switch {
	case err == nil:
		m.status = "Saved task"
	case errors.Is(err, tasks.ErrEmptyText):
		m.status = "Edit not saved"
	}
	if i := m.screen.indexOf(id); i >= 0 {
		m.cursor = i
	}
	m.cursor = clampCursor(m.cursor, len(m.screen.rows))
	return m, nil
}

func (m Model) selected() (row, bool) {
	if len(m.screen.rows) == 0 {
		return row{}, false
	}
	return m.screen.rows[clampCursor(m.cursor, len(m.screen.rows))], true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTaskList())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.screen.summary))
	b.WriteString("\n---\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	if m.screen.errMsg != "" {
		b.WriteString(errorStyle.Render(m.screen.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderTaskList() string {
	if len(m.screen.rows) == 0 {
		return dimStyle.Render(placeholderText) + "\n"
	}
	var b strings.Builder
	for i, r := range m.screen.rows {
		cursor := " "
		if m.cursor == i && m.mode != modeAdd {
			cursor = ">"
		}

		checkbox := "[ ]"
		if r.done {
			checkbox = checkDoneStyle.Render("[x]")
		}

		text := r.text
		switch {
		case r.id == m.editID && m.mode == modeEdit:
			text = m.edit.View()
		case r.done:
			text = doneStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s  %s\n", cursor, checkbox, text,
			dimStyle.Render(fmt.Sprintf("[%s]edit [%s]delete", m.cfg.Keys.Edit, m.cfg.Keys.Delete))))
	}
	return b.String()
}

func (m Model) renderInput() string {
	button := buttonDisabledStyle.Render("[ Add ]")
	if m.canSubmit {
		button = buttonStyle.Render("[ Add ]")
	}
	return m.input.View() + "  " + button
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s clear done • %s quit",
		k.Up, k.Down, k.Add, keyName(k.Toggle), k.Edit, k.Delete, k.ClearDone, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
