package out

import (
	"fmt"
	"io"
)

// ConsoleCue rings the terminal bell when a session completes in the
// foreground. Backgrounded completions are covered by scheduled alerts.
type ConsoleCue struct {
	w io.Writer
}

func NewConsoleCue(w io.Writer) *ConsoleCue {
	return &ConsoleCue{w: w}
}

func (c *ConsoleCue) Completion() {
	fmt.Fprint(c.w, "\a")
}
