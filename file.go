package vie

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoFileName is returned by Save when neither an argument nor the
// editor's current file name says where to write.
var ErrNoFileName = errors.New("no file name specified")

// ReadFrom appends one line per newline-terminated record read from r. A
// single trailing "\n", "\r" or "\r\n" is stripped from each record.
func (d *Document) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	last := d.tail()
	var total int64
	for {
		rec, err := br.ReadBytes('\n')
		total += int64(len(rec))
		if len(rec) > 0 {
			rec = bytes.TrimSuffix(rec, []byte{'\n'})
			rec = bytes.TrimSuffix(rec, []byte{'\r'})
			last = d.link(last, rec)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo writes every line followed by a single "\n".
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for ref := d.head; ref != NoLine; ref = d.slots[ref].next {
		n, err := bw.Write(d.slots[ref].text)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return total, err
		}
		total++
	}
	return total, bw.Flush()
}

// tail returns the last line, or NoLine.
func (d *Document) tail() LineRef {
	ref := d.head
	if ref == NoLine {
		return NoLine
	}
	for d.slots[ref].next != NoLine {
		ref = d.slots[ref].next
	}
	return ref
}

// Open loads a file into the editor. A file that cannot be read leaves the
// editor with a single empty line and the name recorded as a new file; the
// read error, if any other than "does not exist", is returned for logging.
func (e *Editor) Open(filename string) error {
	e.filename = filename
	e.dirty = false
	e.doc.DestroyAll()
	err := e.load(filename)
	if err != nil {
		e.doc.DestroyAll()
	}
	read := e.doc.Len()
	if read == 0 {
		e.doc.link(NoLine, nil)
	}
	e.resetCursor()

	switch {
	case err == nil:
		e.setStatus("%q %d %s", filename, read, plural(read, "line"))
		e.log.Printf("loaded %s: %d lines", filename, read)
	case errors.Is(err, os.ErrNotExist):
		e.setStatus("%q [New File]", filename)
		return nil
	default:
		e.setStatus("%q [New File]", filename)
		e.log.Printf("open %s: %v", filename, err)
		return err
	}
	return nil
}

func (e *Editor) load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := e.doc.ReadFrom(f); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	return nil
}

// Save writes the buffer to filename, or to the current file name when
// filename is empty. The editor adopts filename if it had none.
func (e *Editor) Save(filename string) error {
	if filename == "" {
		filename = e.filename
	}
	if filename == "" {
		e.setStatus("cannot save: %v", ErrNoFileName)
		return ErrNoFileName
	}
	n, err := e.writeFile(filename)
	if err != nil {
		e.setStatus("cannot save: %v", err)
		e.log.Printf("save %s: %v", filename, err)
		return err
	}
	if e.filename == "" {
		e.filename = filename
	}
	if filename == e.filename {
		e.dirty = false
	}
	e.setStatus("%q %dL, %dB written", filename, e.doc.Len(), n)
	e.log.Printf("saved %s: %d lines, %d bytes", filename, e.doc.Len(), n)
	return nil
}

func (e *Editor) writeFile(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}
	n, err := e.doc.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
