package vie

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// positionWidth is the room kept at the right of the status row for the
// cursor position and the scroll indicator.
const positionWidth = 21

// redrawLine draws a line on screen row y, starting at the shift and cut
// at the terminal width.
func (e *Editor) redrawLine(ref LineRef, y int) {
	if !e.doc.Valid(ref) {
		e.abort("redraw: no line %d for row %d", ref, y)
	}
	text := e.doc.Text(ref)
	e.scr.moveTo(y, 1)
	e.scr.eraseLine()
	if e.shift >= len(text) {
		return
	}
	text = text[e.shift:]
	if len(text) > e.cols {
		text = text[:e.cols]
	}
	e.scr.write(text)
}

// redrawRange draws screen rows start..end. Rows past the end of the
// document show a tilde. The screen is cleared first only when the range
// covers every text row.
func (e *Editor) redrawRange(start, end int) {
	start = max(start, 1)
	end = min(end, e.rows)
	if start > end {
		return
	}
	if e.topLine() < 1 {
		e.abort("viewport: line %d cannot be on row %d", e.lineNo, e.row)
	}
	if start == 1 && end == e.rows {
		e.scr.clear()
	}
	ref := e.lineAtRow(start)
	for y := start; y <= end; y++ {
		if ref == NoLine {
			e.scr.moveTo(y, 1)
			e.scr.eraseLine()
			e.scr.writeString("~")
			continue
		}
		e.redrawLine(ref, y)
		ref = e.doc.Next(ref)
	}
}

// lineAtRow finds the line shown on screen row y by walking from the
// cursor line, or NoLine below the end of the document.
func (e *Editor) lineAtRow(y int) LineRef {
	ref := e.cur
	for n := y - e.row; n > 0 && ref != NoLine; n-- {
		ref = e.doc.Next(ref)
	}
	for n := y - e.row; n < 0 && ref != NoLine; n++ {
		ref = e.doc.Prev(ref)
	}
	return ref
}

// redrawText draws every text row.
func (e *Editor) redrawText() {
	e.redrawRange(1, e.rows)
}

func (e *Editor) redrawScreen() {
	e.redrawText()
	e.updateStatus()
}

// updateStatus writes the last terminal row: the pending message or the
// mode legend, the cursor position and how far into the document the
// screen is. The message is shown once. The cursor is put back afterwards.
func (e *Editor) updateStatus() {
	e.scr.moveTo(e.realRows, 1)
	e.scr.eraseLine()
	msg := e.status
	if msg == "" {
		msg = e.mode.legend()
	}
	e.status = ""
	width := e.cols
	if width > positionWidth {
		width -= positionWidth
	}
	e.scr.writeString(runewidth.Truncate(msg, width, ""))

	e.scr.moveTo(e.realRows, max(e.cols-20, 1))
	e.scr.writeString(strconv.Itoa(e.lineNo) + "," + strconv.Itoa(e.pos()))
	e.scr.moveTo(e.realRows, max(e.cols-5, 1))
	e.scr.writeString(e.scrollPosition())

	e.scr.moveTo(e.row, e.col)
}

// scrollPosition is "Top" when the first line is on screen, "Bot" when the
// last one is and otherwise the line count as a percentage of the first
// visible line.
func (e *Editor) scrollPosition() string {
	top := e.topLine()
	if top < 1 {
		e.abort("status: top line is invalid (%d)", top)
	}
	switch {
	case top == 1:
		return "Top"
	case top+e.rows-1 >= e.doc.Len():
		return "Bot"
	}
	return strconv.Itoa(e.doc.Len()*100/top) + "%"
}
