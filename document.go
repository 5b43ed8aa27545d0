package vie

import "errors"

// textChunk is the allocation granularity for line text.
const textChunk = 32

var (
	// ErrLineRange is returned when a line position is outside the document.
	ErrLineRange = errors.New("line position out of range")
	// ErrNoLine is returned when a LineRef does not refer to a live line.
	ErrNoLine = errors.New("no such line")
)

// LineRef identifies a line in a Document. The zero value refers to no line.
// A LineRef stays valid until the line it names is deleted.
type LineRef int32

// NoLine is the LineRef that refers to no line.
const NoLine LineRef = 0

// line is one slot of the arena. prev and next are references into the same
// arena, so deleting a line never leaves a dangling pointer behind.
type line struct {
	text []byte
	prev LineRef
	next LineRef
	live bool
}

// Document is an ordered collection of text lines, stored as a doubly linked
// list threaded through an arena of slots.
type Document struct {
	slots []line // slot 0 is never used, so that NoLine is the zero value
	free  []LineRef
	head  LineRef
	count int
}

// NewDocument returns an empty document. Callers normally add at least one
// line before handing it to an Editor.
func NewDocument() *Document {
	return &Document{slots: make([]line, 1)}
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return d.count
}

// Head returns the first line, or NoLine for an empty document.
func (d *Document) Head() LineRef {
	return d.head
}

// Valid reports whether ref names a live line.
func (d *Document) Valid(ref LineRef) bool {
	return ref > 0 && int(ref) < len(d.slots) && d.slots[ref].live
}

// Next returns the line after ref, or NoLine.
func (d *Document) Next(ref LineRef) LineRef {
	if !d.Valid(ref) {
		return NoLine
	}
	return d.slots[ref].next
}

// Prev returns the line before ref, or NoLine.
func (d *Document) Prev(ref LineRef) LineRef {
	if !d.Valid(ref) {
		return NoLine
	}
	return d.slots[ref].prev
}

// Text returns the bytes of a line. The slice aliases the line's buffer and
// is only valid until the next mutation of that line.
func (d *Document) Text(ref LineRef) []byte {
	if !d.Valid(ref) {
		return nil
	}
	return d.slots[ref].text
}

// LineLen returns the length of a line in bytes.
func (d *Document) LineLen(ref LineRef) int {
	return len(d.Text(ref))
}

// Cap returns the allocated capacity of a line's text buffer.
func (d *Document) Cap(ref LineRef) int {
	return cap(d.Text(ref))
}

// WalkTo returns the line at the given 1-based ordinal.
func (d *Document) WalkTo(n int) (LineRef, bool) {
	if n < 1 || n > d.count {
		return NoLine, false
	}
	ref := d.head
	for i := 1; i < n; i++ {
		ref = d.slots[ref].next
	}
	return ref, true
}

// InsertAfter creates a line holding a copy of text after the line at
// ordinal pos. Position 0 inserts before the first line.
func (d *Document) InsertAfter(pos int, text []byte) (LineRef, error) {
	if pos < 0 || pos > d.count {
		return NoLine, ErrLineRange
	}
	if pos == 0 {
		return d.link(NoLine, text), nil
	}
	prev, _ := d.WalkTo(pos)
	return d.link(prev, text), nil
}

// InsertAfterLine is InsertAfter for a line reference the caller already
// holds, which avoids walking the list.
func (d *Document) InsertAfterLine(ref LineRef, text []byte) (LineRef, error) {
	if !d.Valid(ref) {
		return NoLine, ErrNoLine
	}
	return d.link(ref, text), nil
}

// link allocates a slot and splices it in after prev (or at the head).
func (d *Document) link(prev LineRef, text []byte) LineRef {
	var ref LineRef
	if n := len(d.free); n > 0 {
		ref = d.free[n-1]
		d.free = d.free[:n-1]
	} else {
		d.slots = append(d.slots, line{})
		ref = LineRef(len(d.slots) - 1)
	}

	buf := make([]byte, len(text), roundChunk(len(text)+1))
	copy(buf, text)
	l := line{text: buf, prev: prev, live: true}
	if prev == NoLine {
		l.next = d.head
		d.head = ref
	} else {
		l.next = d.slots[prev].next
		d.slots[prev].next = ref
	}
	if l.next != NoLine {
		d.slots[l.next].prev = ref
	}
	d.slots[ref] = l
	d.count++
	return ref
}

// Delete removes a line. The sole remaining line is emptied in place instead,
// so a document that had lines never becomes empty.
func (d *Document) Delete(ref LineRef) error {
	if !d.Valid(ref) {
		return ErrNoLine
	}
	l := &d.slots[ref]
	if d.count == 1 {
		l.text = make([]byte, 0, textChunk)
		return nil
	}
	if l.prev == NoLine {
		d.head = l.next
	} else {
		d.slots[l.prev].next = l.next
	}
	if l.next != NoLine {
		d.slots[l.next].prev = l.prev
	}
	*l = line{}
	d.free = append(d.free, ref)
	d.count--
	return nil
}

// DestroyAll releases every line.
func (d *Document) DestroyAll() {
	d.slots = make([]line, 1)
	d.free = nil
	d.head = NoLine
	d.count = 0
}

// InsertByte inserts c before byte offset at.
func (d *Document) InsertByte(ref LineRef, at int, c byte) error {
	if !d.Valid(ref) {
		return ErrNoLine
	}
	l := &d.slots[ref]
	if at < 0 || at > len(l.text) {
		return ErrLineRange
	}
	d.grow(ref, len(l.text)+1)
	l.text = l.text[:len(l.text)+1]
	copy(l.text[at+1:], l.text[at:])
	l.text[at] = c
	return nil
}

// Overwrite replaces the byte at offset at.
func (d *Document) Overwrite(ref LineRef, at int, c byte) error {
	if !d.Valid(ref) {
		return ErrNoLine
	}
	l := &d.slots[ref]
	if at < 0 || at >= len(l.text) {
		return ErrLineRange
	}
	l.text[at] = c
	return nil
}

// DeleteBytes removes up to n bytes starting at offset at and returns how
// many were removed.
func (d *Document) DeleteBytes(ref LineRef, at, n int) int {
	if !d.Valid(ref) {
		return 0
	}
	l := &d.slots[ref]
	if at < 0 || at >= len(l.text) || n <= 0 {
		return 0
	}
	if at+n > len(l.text) {
		n = len(l.text) - at
	}
	l.text = append(l.text[:at], l.text[at+n:]...)
	return n
}

// Truncate shortens a line to n bytes. The capacity is kept.
func (d *Document) Truncate(ref LineRef, n int) {
	if !d.Valid(ref) {
		return
	}
	l := &d.slots[ref]
	if n >= 0 && n < len(l.text) {
		l.text = l.text[:n]
	}
}

// Append adds text to the end of a line.
func (d *Document) Append(ref LineRef, text []byte) {
	if !d.Valid(ref) || len(text) == 0 {
		return
	}
	l := &d.slots[ref]
	d.grow(ref, len(l.text)+len(text))
	l.text = append(l.text, text...)
}

// Split moves the bytes from offset at onwards into a new line inserted
// directly after ref, and returns the new line.
func (d *Document) Split(ref LineRef, at int) (LineRef, error) {
	if !d.Valid(ref) {
		return NoLine, ErrNoLine
	}
	text := d.slots[ref].text
	if at < 0 || at > len(text) {
		return NoLine, ErrLineRange
	}
	tail := d.link(ref, text[at:])
	d.Truncate(ref, at)
	return tail, nil
}

// Join appends the line after ref to ref and removes it. It reports false
// when ref is the last line.
func (d *Document) Join(ref LineRef) bool {
	next := d.Next(ref)
	if next == NoLine {
		return false
	}
	d.Append(ref, d.slots[next].text)
	d.Delete(next)
	return true
}

// grow makes sure the line can hold need bytes. Capacity doubles from the
// current length and is always a whole number of chunks.
func (d *Document) grow(ref LineRef, need int) {
	l := &d.slots[ref]
	if need <= cap(l.text) {
		return
	}
	size := 2 * len(l.text)
	if size < need+1 {
		size = need + 1
	}
	buf := make([]byte, len(l.text), roundChunk(size))
	copy(buf, l.text)
	l.text = buf
}

func roundChunk(n int) int {
	if n < textChunk {
		return textChunk
	}
	return (n + textChunk - 1) / textChunk * textChunk
}
