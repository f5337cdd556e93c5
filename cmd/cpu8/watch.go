package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/cpu8/cpu"
)

const (
	WATCH_CLEAR      = "\x1b[H\x1b[2J" // Home, then clear screen.
	WATCH_ROW_CELLS  = 16
	WATCH_MIN_HEIGHT = 12 // Register dump plus a memory row.
)

// Watcher redraws the CPU state on a terminal.
type Watcher struct {
	Output io.Writer
	Height int // Terminal lines, or 0 for no memory dump.
}

// NewWatcher returns a watcher on out, if out is a terminal.
func NewWatcher(out *os.File) (watcher *Watcher, ok bool) {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	watcher = &Watcher{Output: out}

	_, height, err := term.GetSize(fd)
	if err == nil {
		watcher.Height = height
	}

	ok = true
	return
}

// Refresh clears the screen and prints the registers, then as much of
// memory as fits.
func (w *Watcher) Refresh(c *cpu.Cpu) {
	fmt.Fprint(w.Output, WATCH_CLEAR+w.Render(c))
}

// Render formats the registers and memory rows.
func (w *Watcher) Render(c *cpu.Cpu) (text string) {
	var sb strings.Builder

	sb.WriteString(c.String())

	if w.Height < WATCH_MIN_HEIGHT {
		return sb.String()
	}

	rows := w.Height - WATCH_MIN_HEIGHT + 1
	for row := 0; row < rows && row*WATCH_ROW_CELLS < len(c.Memory); row++ {
		base := row * WATCH_ROW_CELLS
		fmt.Fprintf(&sb, "%02x:", base)
		for addr := base; addr < base+WATCH_ROW_CELLS && addr < len(c.Memory); addr++ {
			mark := ' '
			switch addr {
			case int(c.Pc):
				mark = '>'
			case int(c.Sp):
				mark = '^'
			}
			fmt.Fprintf(&sb, "%c%02x", mark, c.Memory[addr])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
