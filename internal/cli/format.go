package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"tasklist/internal/tasks"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

func writeTasks(w io.Writer, format string, list []tasks.Task) error {
	if list == nil {
		list = []tasks.Task{}
	}
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	case formatMarkdown:
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(markdownChecklist(list))
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, markdown, json or yaml)", format)
	}
}

func markdownChecklist(list []tasks.Task) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	if len(list) == 0 {
		b.WriteString("_" + emptyListText + "_\n")
	}
	for _, t := range list {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s\n", box, t.Text)
	}
	b.WriteString("\n" + tasks.Summary(list) + "\n")
	return b.String()
}
