package vie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newDocument(lines ...string) *Document {
	d := NewDocument()
	last := NoLine
	for _, l := range lines {
		last = d.link(last, []byte(l))
	}
	return d
}

func TestInsertAfter(t *testing.T) {
	d := newDocument("one", "three")

	ref, err := d.InsertAfter(1, []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(d.Text(ref)))

	_, err = d.InsertAfter(0, []byte("zero"))
	require.NoError(t, err)
	_, err = d.InsertAfter(4, []byte("four"))
	require.NoError(t, err)

	assert.Equal(t, []string{"zero", "one", "two", "three", "four"}, docLines(d))
	assert.Equal(t, 5, d.Len())

	_, err = d.InsertAfter(6, nil)
	assert.ErrorIs(t, err, ErrLineRange)
	_, err = d.InsertAfter(-1, nil)
	assert.ErrorIs(t, err, ErrLineRange)
	_, err = d.InsertAfterLine(NoLine, nil)
	assert.ErrorIs(t, err, ErrNoLine)
}

func TestInsertCopiesText(t *testing.T) {
	d := NewDocument()
	text := []byte("abc")
	ref, err := d.InsertAfter(0, text)
	require.NoError(t, err)
	text[0] = 'x'
	assert.Equal(t, "abc", string(d.Text(ref)))
}

func TestWalkTo(t *testing.T) {
	d := newDocument("a", "b", "c")
	for i, want := range []string{"a", "b", "c"} {
		ref, ok := d.WalkTo(i + 1)
		require.True(t, ok)
		assert.Equal(t, want, string(d.Text(ref)))
	}
	_, ok := d.WalkTo(0)
	assert.False(t, ok)
	_, ok = d.WalkTo(4)
	assert.False(t, ok)
}

func TestDeleteHeadPromotesSuccessor(t *testing.T) {
	d := newDocument("a", "b", "c")
	head := d.Head()
	next := d.Next(head)

	require.NoError(t, d.Delete(head))
	assert.Equal(t, next, d.Head())
	assert.Equal(t, NoLine, d.Prev(next))
	assert.False(t, d.Valid(head))
	assert.Equal(t, []string{"b", "c"}, docLines(d))
}

func TestDeleteLastAndMiddle(t *testing.T) {
	d := newDocument("a", "b", "c", "d")
	last, _ := d.WalkTo(4)
	mid, _ := d.WalkTo(2)

	require.NoError(t, d.Delete(last))
	require.NoError(t, d.Delete(mid))
	assert.Equal(t, []string{"a", "c"}, docLines(d))
	assert.ErrorIs(t, d.Delete(mid), ErrNoLine)
}

func TestDeleteSoleLineEmptiesIt(t *testing.T) {
	d := newDocument("only")
	ref := d.Head()

	require.NoError(t, d.Delete(ref))
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, ref, d.Head())
	assert.Equal(t, []string{""}, docLines(d))
}

func TestDeletedSlotsAreReused(t *testing.T) {
	d := newDocument("a", "b", "c")
	slots := len(d.slots)
	ref, _ := d.WalkTo(2)
	require.NoError(t, d.Delete(ref))

	_, err := d.InsertAfter(2, []byte("d"))
	require.NoError(t, err)
	assert.Len(t, d.slots, slots)
	assert.Equal(t, []string{"a", "c", "d"}, docLines(d))
}

func TestDestroyAll(t *testing.T) {
	d := newDocument("a", "b")
	ref := d.Head()
	d.DestroyAll()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, NoLine, d.Head())
	assert.False(t, d.Valid(ref))
	assert.Empty(t, docLines(d))
}

func TestCapacityGrowsInChunks(t *testing.T) {
	d := NewDocument()
	ref, err := d.InsertAfter(0, nil)
	require.NoError(t, err)
	assert.Equal(t, textChunk, d.Cap(ref))

	ref, err = d.InsertAfter(1, []byte(strings.Repeat("x", 40)))
	require.NoError(t, err)
	assert.Equal(t, 64, d.Cap(ref))

	d.Append(ref, []byte(strings.Repeat("y", 30)))
	assert.Equal(t, 70, d.LineLen(ref))
	assert.Equal(t, 96, d.Cap(ref))

	for i := 0; i < 200; i++ {
		require.NoError(t, d.InsertByte(ref, 0, 'z'))
		assert.Zero(t, d.Cap(ref)%textChunk)
		assert.GreaterOrEqual(t, d.Cap(ref), d.LineLen(ref))
	}
}

func TestInsertByte(t *testing.T) {
	d := newDocument("ac")
	ref := d.Head()
	require.NoError(t, d.InsertByte(ref, 1, 'b'))
	require.NoError(t, d.InsertByte(ref, 3, 'd'))
	require.NoError(t, d.InsertByte(ref, 0, '_'))
	assert.Equal(t, "_abcd", string(d.Text(ref)))
	assert.ErrorIs(t, d.InsertByte(ref, 7, 'x'), ErrLineRange)
	assert.ErrorIs(t, d.InsertByte(NoLine, 0, 'x'), ErrNoLine)
}

func TestOverwrite(t *testing.T) {
	d := newDocument("abc")
	ref := d.Head()
	require.NoError(t, d.Overwrite(ref, 2, 'x'))
	assert.Equal(t, "abx", string(d.Text(ref)))
	assert.ErrorIs(t, d.Overwrite(ref, 3, 'y'), ErrLineRange)
}

func TestDeleteBytesClamps(t *testing.T) {
	d := newDocument("abcdef")
	ref := d.Head()
	assert.Equal(t, 2, d.DeleteBytes(ref, 1, 2))
	assert.Equal(t, "adef", string(d.Text(ref)))
	assert.Equal(t, 2, d.DeleteBytes(ref, 2, 10))
	assert.Equal(t, "ad", string(d.Text(ref)))
	assert.Equal(t, 0, d.DeleteBytes(ref, 2, 1))
	assert.Equal(t, 0, d.DeleteBytes(ref, 0, 0))
}

func TestSplitAndJoin(t *testing.T) {
	d := newDocument("hello world", "next")
	ref := d.Head()

	tail, err := d.Split(ref, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", " world", "next"}, docLines(d))
	assert.Equal(t, tail, d.Next(ref))

	_, err = d.Split(ref, 6)
	assert.ErrorIs(t, err, ErrLineRange)

	assert.True(t, d.Join(ref))
	assert.Equal(t, []string{"hello world", "next"}, docLines(d))
	assert.False(t, d.Valid(tail))

	last, _ := d.WalkTo(2)
	assert.False(t, d.Join(last))
}

func TestTruncate(t *testing.T) {
	d := newDocument("abcdef")
	ref := d.Head()
	c := d.Cap(ref)
	d.Truncate(ref, 2)
	assert.Equal(t, "ab", string(d.Text(ref)))
	assert.Equal(t, c, d.Cap(ref))
	d.Truncate(ref, 5)
	assert.Equal(t, "ab", string(d.Text(ref)))
}

// TestDocumentMatchesModel drives random edits against a slice of strings
// and checks the list stays consistent in both directions.
func TestDocumentMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		model := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,12}`), 1, 6).Draw(t, "lines")
		d := newDocument(model...)

		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			n := len(model)
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				pos := rapid.IntRange(0, n).Draw(t, "pos")
				text := rapid.StringMatching(`[a-z]{0,40}`).Draw(t, "text")
				_, err := d.InsertAfter(pos, []byte(text))
				require.NoError(t, err)
				model = append(model[:pos], append([]string{text}, model[pos:]...)...)
			case 1:
				pos := rapid.IntRange(1, n).Draw(t, "pos")
				ref, _ := d.WalkTo(pos)
				require.NoError(t, d.Delete(ref))
				if n == 1 {
					model = []string{""}
				} else {
					model = append(model[:pos-1], model[pos:]...)
				}
			case 2:
				pos := rapid.IntRange(1, n).Draw(t, "pos")
				ref, _ := d.WalkTo(pos)
				at := rapid.IntRange(0, len(model[pos-1])).Draw(t, "at")
				_, err := d.Split(ref, at)
				require.NoError(t, err)
				s := model[pos-1]
				model = append(model[:pos], append([]string{s[at:]}, model[pos:]...)...)
				model[pos-1] = s[:at]
			case 3:
				pos := rapid.IntRange(1, n).Draw(t, "pos")
				ref, _ := d.WalkTo(pos)
				joined := d.Join(ref)
				require.Equal(t, pos < n, joined)
				if joined {
					model[pos-1] += model[pos]
					model = append(model[:pos], model[pos+1:]...)
				}
			case 4:
				pos := rapid.IntRange(1, n).Draw(t, "pos")
				ref, _ := d.WalkTo(pos)
				at := rapid.IntRange(0, len(model[pos-1])).Draw(t, "at")
				require.NoError(t, d.InsertByte(ref, at, 'Q'))
				s := model[pos-1]
				model[pos-1] = s[:at] + "Q" + s[at:]
			case 5:
				pos := rapid.IntRange(1, n).Draw(t, "pos")
				ref, _ := d.WalkTo(pos)
				s := model[pos-1]
				at := rapid.IntRange(0, len(s)).Draw(t, "at")
				cnt := rapid.IntRange(0, 5).Draw(t, "count")
				got := d.DeleteBytes(ref, at, cnt)
				want := min(cnt, len(s)-at)
				require.Equal(t, want, got)
				model[pos-1] = s[:at] + s[at+want:]
			}

			require.Equal(t, model, docLines(d))
			require.Equal(t, len(model), d.Len())
			var back []string
			for ref, ok := d.WalkTo(d.Len()); ok && ref != NoLine; ref = d.Prev(ref) {
				back = append([]string{string(d.Text(ref))}, back...)
			}
			require.Equal(t, model, back)
			for ref := d.Head(); ref != NoLine; ref = d.Next(ref) {
				require.Zero(t, d.Cap(ref)%textChunk)
			}
		}
	})
}
