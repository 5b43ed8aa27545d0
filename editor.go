// Package vie is a small modal text editor in the style of vi. It keeps the
// document as a list of lines, draws a scrolling window of it with VT100
// escape sequences and interprets count-prefixed, operator+movement
// commands read one byte at a time from a raw terminal.
package vie

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Version is the release printed by "vie -version".
const Version = "0.1.0"

// Mode selects how keystrokes are interpreted.
type Mode int

const (
	ModeCommand Mode = iota
	ModeInsert
	ModeReplace
)

func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeInsert:
		return "insert"
	case ModeReplace:
		return "replace"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// legend is the text shown on the status line while in mode m.
func (m Mode) legend() string {
	switch m {
	case ModeCommand:
		return ""
	case ModeInsert:
		return "--- INSERT ---"
	case ModeReplace:
		return "--- REPLACE ---"
	}
	return ""
}

// Config holds the collaborators of an Editor. Zero fields get defaults:
// standard input and output, the size of the terminal on standard output
// and a logger that discards everything.
type Config struct {
	Input  io.Reader
	Output io.Writer
	// Size returns the total rows and columns of the terminal.
	Size   func() (rows, cols int)
	Logger *log.Logger
}

// Editor holds the complete state of the editor.
type Editor struct {
	doc *Document

	// cursor: document line, its node, 1-based visible column and the
	// number of leading characters hidden off the left edge
	lineNo int
	cur    LineRef
	col    int
	shift  int

	// viewport
	row      int // screen row of the cursor, 1..rows
	rows     int // rows for text
	realRows int
	cols     int

	mode     Mode
	status   string
	filename string
	dirty    bool
	quit     bool

	in      *bufio.Reader
	scr     *screen
	size    func() (int, int)
	log     *log.Logger
	tty     *terminal
	resized atomic.Bool
}

// fatalError carries an internal consistency violation up to Run.
type fatalError struct {
	msg string
}

func (f *fatalError) Error() string {
	return f.msg
}

// New creates an editor holding a single empty line.
func New(cfg Config) *Editor {
	e := &Editor{
		doc:  NewDocument(),
		size: cfg.Size,
		log:  cfg.Logger,
	}
	in := cfg.Input
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok {
		e.tty = newTerminal(int(f.Fd()))
	}
	e.in = bufio.NewReader(in)
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	e.scr = newScreen(out)
	if e.size == nil {
		e.size = func() (int, int) {
			return windowSize(int(os.Stdout.Fd()))
		}
	}
	if e.log == nil {
		e.log = log.New(io.Discard, "", 0)
	}
	e.updateWindowSize()
	e.doc.link(NoLine, nil)
	e.resetCursor()
	return e
}

// Filename returns the current file name, which may be empty.
func (e *Editor) Filename() string {
	return e.filename
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Cursor returns the document line and the 1-based column of the cursor
// within the whole line.
func (e *Editor) Cursor() (line, col int) {
	return e.lineNo, e.col + e.shift
}

// setStatus sets a one-shot status message shown by the next status update.
func (e *Editor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
}

// abort reports a broken internal invariant. Run recovers it and shuts down.
func (e *Editor) abort(format string, args ...any) {
	panic(&fatalError{msg: fmt.Sprintf(format, args...)})
}

func (e *Editor) resetCursor() {
	e.lineNo = 1
	e.cur = e.doc.Head()
	e.col = 1
	e.shift = 0
	e.row = 1
}

func (e *Editor) updateWindowSize() {
	rows, cols := e.size()
	e.realRows = max(rows, 1)
	e.rows = max(rows-1, 1)
	e.cols = max(cols, 1)
}

// handleResize re-queries the terminal size, keeps the cursor inside the
// new bounds and redraws everything. It only runs between two dispatches.
func (e *Editor) handleResize() {
	e.updateWindowSize()
	e.log.Printf("resize: %dx%d", e.cols, e.realRows)
	if e.row > e.rows {
		e.row = e.rows
	}
	p := e.pos()
	e.shift = 0
	e.col = 1
	e.placeColumn(p)
	e.setupScreen()
	e.redrawScreen()
}

// setupScreen disables line wrap and keeps the status row out of the
// scroll region.
func (e *Editor) setupScreen() {
	e.scr.lineWrap(false)
	e.scr.setScrollRegion(1, e.rows)
}

// readKey blocks until one byte of input is available.
func (e *Editor) readKey() (byte, error) {
	return e.in.ReadByte()
}

// nextKey reads the next byte of a multi-key command. Running out of input
// counts as Escape.
func (e *Editor) nextKey() byte {
	c, err := e.readKey()
	if err != nil {
		return keyEsc
	}
	return c
}

func (e *Editor) flush() {
	if err := e.scr.flush(); err != nil {
		e.abort("write to terminal: %v", err)
	}
}

// Run enables raw mode, draws the screen and processes keys until the user
// quits. The terminal is restored on every way out, including SIGINT,
// SIGTERM and internal errors.
func (e *Editor) Run() (err error) {
	if e.tty != nil {
		if err := e.tty.enableRawMode(); err != nil {
			return err
		}
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			e.resized.Store(true)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		if _, ok := <-sigCh; ok {
			e.restoreTerminal()
			os.Exit(1)
		}
	}()

	defer func() {
		signal.Stop(winch)
		signal.Stop(sigCh)
		close(winch)
		close(sigCh)
		r := recover()
		e.shutdown()
		if r == nil {
			return
		}
		f, ok := r.(*fatalError)
		if !ok {
			panic(r)
		}
		e.log.Printf("abort: %s", f.msg)
		err = f
	}()

	e.scr.altScreen(true)
	e.setupScreen()
	e.redrawScreen()
	e.flush()
	for !e.quit {
		if e.resized.Swap(false) {
			e.handleResize()
			e.flush()
		}
		c, err := e.readKey()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		e.dispatch(c)
		e.flush()
	}
	return nil
}

// shutdown clears the status row, restores the terminal and frees the
// document.
func (e *Editor) shutdown() {
	e.scr.moveTo(e.realRows, 1)
	e.scr.eraseLine()
	e.restoreTerminal()
	e.doc.DestroyAll()
}

func (e *Editor) restoreTerminal() {
	e.scr.resetScrollRegion()
	e.scr.lineWrap(true)
	e.scr.altScreen(false)
	e.scr.flush()
	if e.tty != nil {
		e.tty.disableRawMode()
	}
}
