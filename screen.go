package vie

import (
	"bytes"
	"io"
	"strconv"
)

// screen collects VT100 output for one dispatch cycle and writes it to the
// terminal in a single call.
type screen struct {
	out io.Writer
	ab  bytes.Buffer
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

// moveTo positions the cursor at a 1-based row and column.
func (s *screen) moveTo(row, col int) {
	s.ab.WriteString("\x1b[")
	s.ab.WriteString(strconv.Itoa(row))
	s.ab.WriteByte(';')
	s.ab.WriteString(strconv.Itoa(col))
	s.ab.WriteByte('f')
}

func (s *screen) clear() {
	s.ab.WriteString("\x1b[H\x1b[J")
}

func (s *screen) eraseLine() {
	s.ab.WriteString("\x1b[2K")
}

// scrollUp moves the contents of the scroll region up by one row.
func (s *screen) scrollUp() {
	s.ab.WriteString("\x1b[S")
}

// scrollDown moves the contents of the scroll region down by one row.
func (s *screen) scrollDown() {
	s.ab.WriteString("\x1b[T")
}

// setScrollRegion limits scrolling to rows top..bottom.
func (s *screen) setScrollRegion(top, bottom int) {
	s.ab.WriteString("\x1b[")
	s.ab.WriteString(strconv.Itoa(top))
	s.ab.WriteByte(';')
	s.ab.WriteString(strconv.Itoa(bottom))
	s.ab.WriteByte('r')
}

func (s *screen) resetScrollRegion() {
	s.ab.WriteString("\x1b[r")
}

func (s *screen) lineWrap(on bool) {
	if on {
		s.ab.WriteString("\x1b[?7h")
	} else {
		s.ab.WriteString("\x1b[?7l")
	}
}

// altScreen switches to and from the alternate screen buffer.
func (s *screen) altScreen(on bool) {
	if on {
		s.ab.WriteString("\x1b[?1049h")
	} else {
		s.ab.WriteString("\x1b[?1049l")
	}
}

func (s *screen) write(p []byte) {
	s.ab.Write(p)
}

func (s *screen) writeString(str string) {
	s.ab.WriteString(str)
}

// flush sends everything collected so far.
func (s *screen) flush() error {
	if s.ab.Len() == 0 {
		return nil
	}
	_, err := s.out.Write(s.ab.Bytes())
	s.ab.Reset()
	return err
}
