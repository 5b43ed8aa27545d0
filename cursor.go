package vie

// pos is the cursor position within the whole current line, 1-based.
func (e *Editor) pos() int {
	return e.shift + e.col
}

// topLine is the document line shown on the first screen row.
func (e *Editor) topLine() int {
	return e.lineNo - e.row + 1
}

// lineLimit is the largest cursor position allowed on the current line. In
// Command mode the cursor rests on a character; elsewhere it may sit just
// past the end of the text.
func (e *Editor) lineLimit() int {
	n := e.doc.LineLen(e.cur)
	switch e.mode {
	case ModeCommand:
		return max(n, 1)
	case ModeInsert, ModeReplace:
		return n + 1
	}
	return max(n, 1)
}

// placeColumn moves the cursor to position p on the current line, clamped
// to the line, and adjusts the shift so the cursor stays on screen. It
// reports whether the shift changed, in which case the caller must redraw
// the text.
func (e *Editor) placeColumn(p int) bool {
	p = max(min(p, e.lineLimit()), 1)
	old := e.shift
	switch {
	case p <= e.shift:
		e.shift = p - 1
	case p-e.shift > e.cols:
		e.shift = p - e.cols
	}
	e.col = p - e.shift
	return e.shift != old
}

// moveBy moves the cursor to the destination of a movement.
func (e *Editor) moveBy(m Motion) {
	switch m.kind {
	case noMotion:
	case lineMotion:
		e.gotoLine(e.lineNo + m.lines)
	case charMotion:
		if m.lines != 0 {
			e.gotoLine(e.lineNo + m.lines)
		}
		if e.placeColumn(m.pos) {
			e.redrawText()
		}
	}
}

// gotoLine makes document line target current, keeping the column where
// the line allows. Short moves step through the lines and scroll the
// terminal one row at a time; long ones recenter and redraw.
func (e *Editor) gotoLine(target int) {
	target = max(min(target, e.doc.Len()), 1)
	if target == e.lineNo {
		return
	}
	want := e.pos()
	top := e.topLine()
	visible := target >= top && target < top+e.rows
	delta := target - e.lineNo
	if visible || (delta < e.rows && -delta < e.rows) {
		for e.lineNo < target {
			e.stepDown()
		}
		for e.lineNo > target {
			e.stepUp()
		}
		e.settleColumn(want, false)
		return
	}

	e.cur = e.doc.advance(e.cur, delta)
	e.lineNo = target
	top = max(target-e.rows/2, 1)
	e.row = target - top + 1
	e.settleColumn(want, true)
}

// stepDown moves to the next line. At the last screen row the text scrolls
// up one row and the new line is drawn in the freed row.
func (e *Editor) stepDown() {
	next := e.doc.Next(e.cur)
	if next == NoLine {
		return
	}
	e.cur = next
	e.lineNo++
	if e.row < e.rows {
		e.row++
		return
	}
	e.scr.scrollUp()
	e.redrawLine(e.cur, e.row)
}

// stepUp moves to the previous line, scrolling down at the first row.
func (e *Editor) stepUp() {
	prev := e.doc.Prev(e.cur)
	if prev == NoLine {
		return
	}
	e.cur = prev
	e.lineNo--
	if e.row > 1 {
		e.row--
		return
	}
	e.scr.scrollDown()
	e.redrawLine(e.cur, e.row)
}

// settleColumn places the cursor at position want after a vertical move.
// The shift is dropped when the new line is shorter than it. A clamped
// column redraws the line; a changed shift redraws the text.
func (e *Editor) settleColumn(want int, redraw bool) {
	shifted := false
	if e.shift > 0 && e.doc.LineLen(e.cur) < e.shift {
		e.shift = 0
		shifted = true
	}
	if e.placeColumn(want) {
		shifted = true
	}
	switch {
	case redraw || shifted:
		e.redrawText()
	case e.pos() != want:
		e.redrawLine(e.cur, e.row)
	}
}

// screenLine resolves H, M and L to a document line. For H and L the count
// counts rows from the top or bottom of the screen.
func (e *Editor) screenLine(key byte, count int) int {
	top := e.topLine()
	last := min(top+e.rows-1, e.doc.Len())
	switch key {
	case 'H':
		return min(top+count-1, last)
	case 'L':
		return max(last-count+1, top)
	}
	return top + (last-top)/2
}

// advance walks n lines forward (or back for negative n) from ref,
// stopping at either end of the document.
func (d *Document) advance(ref LineRef, n int) LineRef {
	for ; n > 0; n-- {
		next := d.Next(ref)
		if next == NoLine {
			break
		}
		ref = next
	}
	for ; n < 0; n++ {
		prev := d.Prev(ref)
		if prev == NoLine {
			break
		}
		ref = prev
	}
	return ref
}
