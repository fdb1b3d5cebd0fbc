package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skipStyle = lipgloss.NewStyle().Faint(true)
)

// Progress prints one numbered line per finished step:
//
//	[1/4] submodule: https://github.com/Aandreba/zag -> zag
//	[2/4] build-script: skipped (import already present)
type Progress struct {
	out   io.Writer
	total int
	n     int
	mu    sync.Mutex
}

// NewProgress creates a progress printer for total steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done reports a step that did its work.
func (p *Progress) Done(label, detail string) {
	p.step(doneStyle.Render(label), detail)
}

// Skip reports a step that had nothing to do.
func (p *Progress) Skip(label, reason string) {
	p.step(label, skipStyle.Render("skipped ("+reason+")"))
}

func (p *Progress) step(label, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	if detail == "" {
		_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", p.n, p.total, label)
		return
	}
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s: %s\n", p.n, p.total, label, detail)
}

// Log prints an informational line between steps.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
