package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/backmassage/heic2jpg/internal/term"
)

// Progress renders the live batch progress line: percentage plus
// completed/total counts. On an interactive terminal the line is redrawn in
// place with a carriage return; otherwise each update is a plain line, which
// keeps piped and logged output readable.
//
// All methods are mutex-guarded so the progress surface stays coherent even
// if callers race, but the intended usage is a single reporting goroutine:
// Clear before printing a log line, Draw after, Step per completed file.
type Progress struct {
	mu          sync.Mutex
	out         io.Writer
	total       int
	done        int
	interactive bool
	shown       bool // an in-place line is currently on screen
}

// NewProgress creates a progress indicator for total files writing to out.
// interactive selects in-place redraw (pass term.IsTerminal(os.Stdout)).
func NewProgress(total int, out io.Writer, interactive bool) *Progress {
	return &Progress{out: out, total: total, interactive: interactive}
}

// Step records one completed file and redraws.
func (p *Progress) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	p.draw()
}

// Clear removes the in-place line so a log line can be printed without
// colliding with it. No-op in non-interactive mode.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive && p.shown {
		fmt.Fprint(p.out, "\r\033[2K")
		p.shown = false
	}
}

// Draw (re)renders the current state.
func (p *Progress) Draw() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draw()
}

// Finish clears the in-place line after the last file; in non-interactive
// mode the final Step already emitted the 100% line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive && p.shown {
		fmt.Fprint(p.out, "\r\033[2K")
		p.shown = false
	}
}

// Line returns the rendered progress text without decoration, e.g.
// "Progress:  45% (9/20)".
func (p *Progress) Line() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.line()
}

func (p *Progress) line() string {
	pct := 0
	if p.total > 0 {
		pct = p.done * 100 / p.total
	}
	return fmt.Sprintf("Progress: %3d%% (%d/%d)", pct, p.done, p.total)
}

// draw must be called with the mutex held.
func (p *Progress) draw() {
	if p.total == 0 {
		return
	}
	if p.interactive {
		fmt.Fprint(p.out, "\r"+term.Cyan+p.line()+term.NC)
		p.shown = true
		return
	}
	fmt.Fprintln(p.out, p.line())
}
