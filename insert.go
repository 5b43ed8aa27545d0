package vie

// startInsert enters Insert mode the way key c asks for and runs it until
// Escape.
func (e *Editor) startInsert(c byte) {
	e.mode = ModeInsert
	shifted := false
	switch c {
	case 'a':
		if e.doc.LineLen(e.cur) > 0 {
			shifted = e.placeColumn(e.pos() + 1)
		}
	case 'A':
		shifted = e.placeColumn(e.doc.LineLen(e.cur) + 1)
	case 'I':
		shifted = e.placeColumn(1)
	case 'o':
		e.openLine(true)
	case 'O':
		e.openLine(false)
	}
	if shifted {
		e.redrawText()
	}
	e.insert()
}

// insert is the Insert mode loop. Printable bytes go into the line at the
// cursor, Enter splits the line and Backspace deletes to the left. It
// returns in Command mode after Escape.
func (e *Editor) insert() {
	e.mode = ModeInsert
	e.updateStatus()
	e.flush()
	for {
		c, err := e.readKey()
		if err != nil {
			c = keyEsc
		}
		switch {
		case c == keyNull:
			continue
		case c == keyEsc || c == ctrlC:
			e.leaveInsert()
			return
		case c == keyEnter || c == keyNewline:
			e.splitLine()
		case c == keyBackspace || c == ctrlH:
			e.backspace()
		case c < 32 || c > 126:
			e.setStatus("Invalid char entered: %d", c)
		default:
			e.insertChar(c)
		}
		e.updateStatus()
		e.flush()
	}
}

// leaveInsert returns to Command mode with the cursor on a character.
func (e *Editor) leaveInsert() {
	e.mode = ModeCommand
	p := e.pos()
	if p > 1 {
		p--
	}
	if e.placeColumn(p) {
		e.redrawText()
	}
}

func (e *Editor) insertChar(c byte) {
	p := e.pos()
	if err := e.doc.InsertByte(e.cur, p-1, c); err != nil {
		e.abort("insert at %d,%d: %v", e.lineNo, p, err)
	}
	e.dirty = true
	if e.placeColumn(p + 1) {
		e.redrawText()
		return
	}
	e.redrawLine(e.cur, e.row)
}

// backspace deletes the character left of the cursor. At the start of a
// line it does nothing; lines are not joined.
func (e *Editor) backspace() {
	p := e.pos()
	if p == 1 {
		return
	}
	e.doc.DeleteBytes(e.cur, p-2, 1)
	e.dirty = true
	if e.placeColumn(p - 1) {
		e.redrawText()
		return
	}
	e.redrawLine(e.cur, e.row)
}

// splitLine breaks the current line at the cursor. The tail becomes a new
// line below and the cursor moves to its start.
func (e *Editor) splitLine() {
	prev := e.cur
	next, err := e.doc.Split(e.cur, e.pos()-1)
	if err != nil {
		e.abort("split at %d,%d: %v", e.lineNo, e.pos(), err)
	}
	e.dirty = true
	e.cur = next
	e.lineNo++
	shifted := e.shift != 0
	e.shift = 0
	e.col = 1

	switch {
	case e.row < e.rows:
		e.row++
		if shifted {
			e.redrawText()
		} else {
			e.redrawRange(e.row-1, e.rows)
		}
	case shifted:
		e.redrawText()
	default:
		e.scr.scrollUp()
		if e.row > 1 {
			e.redrawLine(prev, e.row-1)
		}
		e.redrawLine(e.cur, e.row)
	}
}

// openLine adds an empty line below or above the cursor line and moves the
// cursor to it.
func (e *Editor) openLine(below bool) {
	var ref LineRef
	var err error
	from := e.row
	if below {
		ref, err = e.doc.InsertAfterLine(e.cur, nil)
		e.lineNo++
		if e.row < e.rows {
			e.row++
			from = e.row
		} else {
			e.scr.scrollUp()
			from = e.rows
		}
	} else if prev := e.doc.Prev(e.cur); prev != NoLine {
		ref, err = e.doc.InsertAfterLine(prev, nil)
	} else {
		ref, err = e.doc.InsertAfter(0, nil)
	}
	if err != nil {
		e.abort("open line at %d: %v", e.lineNo, err)
	}
	e.dirty = true
	e.cur = ref
	shifted := e.shift != 0
	e.shift = 0
	e.col = 1
	if shifted {
		e.redrawText()
		return
	}
	e.redrawRange(from, e.rows)
}

// replace reads one character and writes it over the character under the
// cursor, count times, advancing after each.
func (e *Editor) replace(count int) {
	e.mode = ModeReplace
	e.updateStatus()
	e.flush()
	c := e.nextKey()
	e.mode = ModeCommand
	switch {
	case c == keyEsc || c == ctrlC:
		return
	case c < 32 || c > 126:
		e.setStatus("Invalid char entered: %d", c)
		return
	}

	p := e.pos()
	n := e.doc.LineLen(e.cur)
	done := 0
	for ; done < count && p-1+done < n; done++ {
		e.doc.Overwrite(e.cur, p-1+done, c)
	}
	if done == 0 {
		e.setStatus("Nothing to replace")
		return
	}
	e.dirty = true
	if done < count {
		e.setStatus("Replaced %d of %d characters", done, count)
	}
	if e.placeColumn(p + done) {
		e.redrawText()
		return
	}
	e.redrawLine(e.cur, e.row)
}
