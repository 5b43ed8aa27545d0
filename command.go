package vie

import (
	"strings"
)

const (
	// maxCommandLen bounds a colon command.
	maxCommandLen = 128
	// maxCount caps a typed repeat count.
	maxCount = 1 << 20
)

// dispatch interprets one keystroke read by the main loop.
func (e *Editor) dispatch(c byte) {
	switch e.mode {
	case ModeCommand:
		e.command(c)
	case ModeInsert, ModeReplace:
		// insert and replace read their own keys and return in ModeCommand
		e.abort("dispatch: key %d arrived in %s mode", c, e.mode)
	}
	e.updateStatus()
}

func isCountDigit(c byte, count int) bool {
	return (c >= '1' && c <= '9') || (c == '0' && count > 0)
}

// readCount accumulates a repeat count starting with c and returns it with
// the first key that is not part of it.
func (e *Editor) readCount(c byte) (int, byte) {
	count := 0
	for isCountDigit(c, count) {
		count = min(count*10+int(c-'0'), maxCount)
		c = e.nextKey()
	}
	return count, c
}

// command executes one Command mode command starting with key c, reading
// more keys when the command needs them.
func (e *Editor) command(c byte) {
	count, c := e.readCount(c)
	explicit := count > 0
	n := max(count, 1)

	switch c {
	case keyEsc, ctrlC:
	case 'h', 'j', 'k', 'l', '0', '$', 'G', 'H', 'M', 'L',
		'w', 'b', 'e', 'W', 'B', 'E', '(', ')', '{', '}':
		m, err := e.resolveMotion(c, n, explicit, false)
		if err != nil {
			e.setStatus("%s: %c", capitalize(err.Error()), c)
			return
		}
		e.moveBy(m)
	case 'x':
		e.deleteChars('l', n)
	case 'X':
		e.deleteChars('h', n)
	case 'd':
		e.operatorDelete(n, explicit)
	case 'J':
		e.join(n)
	case 'i', 'a', 'I', 'A', 'o', 'O':
		e.startInsert(c)
	case 'r':
		e.replace(n)
	case ':':
		e.colon()
	case ctrlL:
		e.redrawText()
	case ctrlG:
		e.fileInfo()
	default:
		e.setStatus("Unknown key %d", c)
	}
}

// operatorDelete reads the movement after "d" and deletes what it covers.
// A count typed after the operator multiplies the one before it.
func (e *Editor) operatorDelete(count int, explicit bool) {
	more, c := e.readCount(e.nextKey())
	if more > 0 {
		count = min(count*more, maxCount)
		explicit = true
	}
	switch c {
	case keyEsc, ctrlC:
		return
	case 'd':
		e.deleteMotion(lineSpan(count - 1))
		return
	}
	m, err := e.resolveMotion(c, count, explicit, true)
	if err != nil {
		e.setStatus("%s: %c", capitalize(err.Error()), c)
		return
	}
	if e.deleteMotion(m) == 0 && m.kind == charMotion {
		e.setStatus("Nothing to delete")
	}
}

// deleteMotion deletes from the cursor to the destination of m and returns
// how many lines or characters went away.
func (e *Editor) deleteMotion(m Motion) int {
	switch m.kind {
	case noMotion:
		return 0
	case lineMotion:
		from := e.lineNo + min(m.lines, 0)
		requested := abs(m.lines) + 1
		if from < 1 {
			from = 1
		}
		last := min(e.lineNo+max(m.lines, 0), e.doc.Len())
		deleted := e.deleteLines(from, last-from+1)
		if deleted == requested {
			e.setStatus("Deleted %d %s at %d", deleted, plural(deleted, "line"), from)
		} else {
			e.setStatus("Deleted %d of %d %s at %d", deleted, requested, plural(requested, "line"), from)
		}
		return deleted
	case charMotion:
		target := max(min(e.lineNo+m.lines, e.doc.Len()), 1)
		if target != e.lineNo {
			return e.deleteSpan(target, m.pos)
		}
		p := e.pos()
		return e.deleteInLine(min(p, m.pos), max(p, m.pos))
	}
	return 0
}

// deleteInLine deletes positions start..end-1 of the current line and
// leaves the cursor at start.
func (e *Editor) deleteInLine(start, end int) int {
	deleted := e.doc.DeleteBytes(e.cur, start-1, end-start)
	if deleted > 0 {
		e.dirty = true
	}
	if e.placeColumn(start) {
		e.redrawText()
	} else {
		e.redrawLine(e.cur, e.row)
	}
	return deleted
}

// deleteLines removes n lines starting at document line from and leaves
// the cursor on the line that took their place.
func (e *Editor) deleteLines(from, n int) int {
	want := e.pos()
	top := e.topLine()
	ref := e.doc.advance(e.cur, from-e.lineNo)
	deleted := 0
	for deleted < n && ref != NoLine {
		next := e.doc.Next(ref)
		sole := e.doc.Len() == 1
		e.doc.Delete(ref)
		deleted++
		if sole {
			break
		}
		ref = next
	}
	e.dirty = true

	e.lineNo = min(from, e.doc.Len())
	e.cur, _ = e.doc.WalkTo(e.lineNo)
	e.row = max(e.lineNo-top+1, 1)
	if e.topLine() != top {
		e.settleColumn(want, true)
		return deleted
	}
	e.settleColumn(want, false)
	e.redrawRange(from-top+1, e.rows)
	return deleted
}

// deleteSpan deletes the characters from the cursor to position endPos of
// document line endLine, joining what is left of the two end lines.
func (e *Editor) deleteSpan(endLine, endPos int) int {
	startLine, startPos := e.lineNo, e.pos()
	if endLine < startLine {
		startLine, startPos, endLine, endPos = endLine, endPos, startLine, startPos
	}

	top := e.topLine()
	first := e.doc.advance(e.cur, startLine-e.lineNo)
	last := e.doc.advance(e.cur, endLine-e.lineNo)
	startPos = max(min(startPos, e.doc.LineLen(first)+1), 1)
	endText := e.doc.Text(last)
	endPos = max(min(endPos, len(endText)+1), 1)
	tail := append([]byte(nil), endText[endPos-1:]...)

	deleted := e.doc.LineLen(first) - (startPos - 1)
	e.doc.Truncate(first, startPos-1)
	for ref := e.doc.Next(first); ref != NoLine; {
		next := e.doc.Next(ref)
		deleted += e.doc.LineLen(ref) + 1
		e.doc.Delete(ref)
		if ref == last {
			break
		}
		ref = next
	}
	deleted -= len(tail)
	e.doc.Append(first, tail)
	e.dirty = true

	e.cur = first
	e.lineNo = startLine
	e.row = max(startLine-top+1, 1)
	e.placeColumn(startPos)
	e.redrawText()
	return deleted
}

// deleteChars implements x (key 'l') and X (key 'h'). Running out of
// characters before count is reached is reported.
func (e *Editor) deleteChars(key byte, count int) {
	m, _ := e.resolveMotion(key, count, false, true)
	deleted := e.deleteMotion(m)
	switch {
	case deleted == 0:
		e.setStatus("Nothing to delete")
	case deleted < count:
		e.setStatus("Deleted %d of %d characters", deleted, count)
	}
}

// join appends the following lines to the current one, separated by a
// single space. A count of n joins n lines. The cursor ends up at the last
// join point.
func (e *Editor) join(count int) {
	requested := max(count-1, 1)
	joined := 0
	at := 0
	for ; joined < requested; joined++ {
		next := e.doc.Next(e.cur)
		if next == NoLine {
			break
		}
		at = e.doc.LineLen(e.cur)
		if at > 0 && e.doc.LineLen(next) > 0 {
			e.doc.Append(e.cur, []byte{' '})
		}
		e.doc.Join(e.cur)
	}
	if joined == 0 {
		e.setStatus("Cannot join: no line below")
		return
	}
	e.dirty = true
	if joined < requested {
		e.setStatus("Joined %d of %d lines", joined+1, requested+1)
	}
	if e.placeColumn(at + 1) {
		e.redrawText()
		return
	}
	e.redrawRange(e.row, e.rows)
}

// colon reads and runs a colon command.
func (e *Editor) colon() {
	line, ok := e.readCommandLine()
	if !ok {
		return
	}
	e.execColon(line)
}

// readCommandLine echoes ":" on the status row and collects a command
// until Enter. Escape, or Backspace on an empty line, cancels.
func (e *Editor) readCommandLine() (string, bool) {
	e.scr.moveTo(e.realRows, 1)
	e.scr.eraseLine()
	e.scr.writeString(":")
	e.flush()
	cmd := make([]byte, 0, maxCommandLen)
	for {
		c := e.nextKey()
		switch {
		case c == keyEsc || c == ctrlC:
			return "", false
		case c == keyBackspace || c == ctrlH:
			if len(cmd) == 0 {
				return "", false
			}
			cmd = cmd[:len(cmd)-1]
			e.scr.writeString("\b \b")
		case c == keyEnter || c == keyNewline:
			return string(cmd), true
		case c < 32 || c > 126:
		default:
			cmd = append(cmd, c)
			e.scr.write([]byte{c})
			if len(cmd) == maxCommandLen {
				return string(cmd), true
			}
		}
		e.flush()
	}
}

// execColon runs q, q!, w [name] and wq [name].
func (e *Editor) execColon(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	if len(fields) > 2 {
		e.setStatus("Too many file names")
		return
	}
	name := ""
	if len(fields) == 2 {
		name = fields[1]
	}
	switch fields[0] {
	case "q", "q!":
		if name != "" {
			e.setStatus("Trailing characters: %s", name)
			return
		}
		e.quit = true
	case "w":
		e.Save(name)
	case "wq":
		if e.Save(name) == nil {
			e.quit = true
		}
	default:
		e.setStatus("Not an editor command: %s", line)
	}
}

// fileInfo shows the file name, whether it is modified and where the
// cursor is.
func (e *Editor) fileInfo() {
	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if e.dirty {
		modified = " [Modified]"
	}
	e.setStatus("%q%s %d %s --%d%%--", name, modified, e.doc.Len(),
		plural(e.doc.Len(), "line"), e.lineNo*100/e.doc.Len())
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
