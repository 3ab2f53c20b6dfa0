// Package protocol implements the line-oriented wire protocol: a
// request is one newline-terminated line of whitespace-separated
// tokens, a reply is the component's return string followed by a
// newline (spec.md §6). There is no binary framing, no request id, no
// length prefix — deliberately not RESP-compatible.
package protocol

import (
	"bufio"
	"io"

	"github.com/google/uuid"
)

const defaultBufSize = 64 * 1024

// Reader wraps a bufio.Reader for line framing.
type Reader struct {
	rd *bufio.Reader
}

// NewReader creates a new Reader with a 64 KiB buffer.
func NewReader(r io.Reader) *Reader {
	return &Reader{rd: bufio.NewReaderSize(r, defaultBufSize)}
}

// ReadLine reads one record up to and including the terminating '\n',
// returning the line with the trailing '\n' stripped. A trailing '\r'
// (as from a CRLF-sending client) is deliberately left in place — the
// source's framing never strips it (spec.md §9) and neither does this.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.rd.ReadString('\n')
	if err != nil {
		return "", err
	}
	return line[:len(line)-1], nil
}

// Writer wraps a bufio.Writer for line framing.
type Writer struct {
	wr *bufio.Writer
}

// NewWriter creates a new Writer with a 64 KiB buffer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{wr: bufio.NewWriterSize(w, defaultBufSize)}
}

// WriteLine writes reply followed by a single '\n' and flushes. A
// multi-line reply (entries already joined with internal '\n's per
// spec.md §6) is written as one record terminated by exactly one
// trailing newline.
func (w *Writer) WriteLine(reply string) error {
	if _, err := w.wr.WriteString(reply); err != nil {
		return err
	}
	if err := w.wr.WriteByte('\n'); err != nil {
		return err
	}
	return w.wr.Flush()
}

// ConnID is an opaque per-connection identifier threaded through log
// lines so a reader can correlate records from one client across a
// session, replacing a bare incrementing counter with a value that
// carries no ordering information to leak.
type ConnID uuid.UUID

// NewConnID mints a fresh connection id.
func NewConnID() ConnID {
	return ConnID(uuid.New())
}

func (c ConnID) String() string {
	return uuid.UUID(c).String()
}
