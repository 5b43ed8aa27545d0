package vie

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Key constants
const (
	keyNull      = 0
	ctrlC        = 3
	ctrlG        = 7
	ctrlH        = 8
	ctrlL        = 12
	keyNewline   = 10
	keyEnter     = 13
	keyEsc       = 27
	keyBackspace = 127
)

// ErrNotTTY is returned by Run when the input is a file that is not a terminal.
var ErrNotTTY = errors.New("tty is required")

// terminal remembers the settings of a tty so raw mode can be undone.
type terminal struct {
	fd          int
	origTermios unix.Termios
	rawmode     bool
}

func newTerminal(fd int) *terminal {
	return &terminal{fd: fd}
}

// enableRawMode puts the terminal into raw, unbuffered, non-echoing mode.
// Reads block until one byte is available.
func (t *terminal) enableRawMode() error {
	if t.rawmode {
		return nil
	}
	if !term.IsTerminal(t.fd) {
		return ErrNotTTY
	}
	orig, err := unix.IoctlGetTermios(t.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.origTermios = *orig

	raw := *orig
	// Input modes
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON | unix.INLCR | unix.IGNCR
	// Output modes
	raw.Oflag &^= unix.OPOST
	// Control modes
	raw.Cflag &^= unix.CSIZE
	raw.Cflag |= unix.CS8
	// Local modes
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN | unix.ISIG
	// Control chars
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	t.rawmode = true
	return nil
}

// disableRawMode restores the terminal to its original mode.
func (t *terminal) disableRawMode() error {
	if !t.rawmode {
		return nil
	}
	t.rawmode = false
	return unix.IoctlSetTermios(t.fd, ioctlWriteTermios, &t.origTermios)
}

// windowSize returns the rows and columns of the terminal on fd. A terminal
// that cannot be queried is assumed to be 24x80.
func windowSize(fd int) (int, int) {
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols == 0 || rows == 0 {
		return 24, 80
	}
	return rows, cols
}
