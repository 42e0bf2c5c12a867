package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown to the printer's writer. Headless mode prints
// the raw markdown; otherwise glamour renders it for the terminal.
func (p *Printer) Markdown(md string) {
	if p.headless {
		fmt.Fprintln(p.w, md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprintln(p.w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintln(p.w, md)
		return
	}
	fmt.Fprint(p.w, out)
}
