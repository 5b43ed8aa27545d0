package vie

import "errors"

var (
	errMotionNotImplemented = errors.New("movement not implemented")
	errUnknownMotion        = errors.New("unknown movement")
)

type motionKind int

const (
	noMotion motionKind = iota
	lineMotion
	charMotion
)

// Motion is the resolved scope of a movement, relative to the cursor. A
// line motion covers whole lines from the cursor line to lines away. A
// char motion ends at position pos of the line lines away. The keys handled
// today only produce char motions on the cursor line; the cross-line form
// is what the word, sentence and paragraph movements will resolve to.
type Motion struct {
	kind  motionKind
	lines int
	pos   int
}

func lineSpan(lines int) Motion {
	return Motion{kind: lineMotion, lines: lines}
}

func charSpan(lines, pos int) Motion {
	return Motion{kind: charMotion, lines: lines, pos: pos}
}

// resolveMotion turns movement key c, repeated count times, into a Motion.
// explicit says whether the count was typed. For an operator target (op)
// char motions may end one past the last character, since the
// destination is exclusive.
func (e *Editor) resolveMotion(c byte, count int, explicit, op bool) (Motion, error) {
	p := e.pos()
	n := e.doc.LineLen(e.cur)
	switch c {
	case 'j':
		return lineSpan(count), nil
	case 'k':
		return lineSpan(-count), nil
	case 'G':
		target := e.doc.Len()
		if explicit {
			target = min(count, target)
		}
		return lineSpan(target - e.lineNo), nil
	case 'H', 'M', 'L':
		return lineSpan(e.screenLine(c, count) - e.lineNo), nil
	case 'h':
		return charSpan(0, max(p-count, 1)), nil
	case 'l':
		limit := e.lineLimit()
		if op {
			limit = n + 1
		}
		return charSpan(0, min(p+count, limit)), nil
	case '0':
		return charSpan(0, 1), nil
	case '$':
		if op {
			return charSpan(0, n+1), nil
		}
		return charSpan(0, max(n, 1)), nil
	case 'w', 'b', 'e', 'W', 'B', 'E', '(', ')', '{', '}':
		return Motion{}, errMotionNotImplemented
	}
	return Motion{}, errUnknownMotion
}
