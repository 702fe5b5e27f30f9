package cli

import (
	"fmt"
	"io"

	"tasklist/internal/tasks"
)

const emptyListText = "No tasks yet — add your first one!"

// textView prints the list as numbered rows followed by the summary.
// The numbers are the positions accepted as task references.
type textView struct {
	out     io.Writer
	errOut  io.Writer
	summary string
}

func newTextView(out, errOut io.Writer) *textView {
	return &textView{out: out, errOut: errOut, summary: tasks.Summary(nil)}
}

func (v *textView) Render(list []tasks.Task) {
	if len(list) == 0 {
		fmt.Fprintln(v.out, emptyListText)
		v.UpdateSummary(nil)
	} else {
		for i, t := range list {
			box := "[ ]"
			if t.Done {
				box = "[x]"
			}
			fmt.Fprintf(v.out, "%3d. %s %s\n", i+1, box, t.Text)
		}
		v.UpdateSummary(list)
	}
	fmt.Fprintln(v.out, v.summary)
}

func (v *textView) UpdateSummary(list []tasks.Task) {
	v.summary = tasks.Summary(list)
}

func (v *textView) ShowError(msg string) {
	fmt.Fprintln(v.errOut, msg)
}
