package parser

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Writer adapts a Tokenizer to byte-oriented, arbitrarily chunked input.
// It implements io.Writer and io.ReaderFrom; a UTF-8 sequence split
// across Write calls is held back until its remaining bytes arrive, so
// chunk boundaries never corrupt a rune.
type Writer struct {
	tok     *Tokenizer
	pending []byte
}

// NewWriter creates a Writer feeding a fresh Tokenizer that delivers
// events to h.
func NewWriter(h EventHandler) *Writer {
	return &Writer{tok: NewTokenizer(h)}
}

// Tokenizer exposes the underlying tokenizer, e.g. to attach a logger.
func (w *Writer) Tokenizer() *Tokenizer {
	return w.tok
}

func (w *Writer) Write(p []byte) (int, error) {
	data := p
	if len(w.pending) > 0 {
		data = append(w.pending, p...)
		w.pending = nil
	}

	for len(data) > 0 {
		if !utf8.FullRune(data) {
			w.pending = append([]byte(nil), data...)
			break
		}
		r, size := utf8.DecodeRune(data)
		w.tok.processRune(r)
		data = data[size:]
	}

	return len(p), nil
}

// ReadFrom streams r through the tokenizer until EOF.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			total += int64(n)
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, werr
			}
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, errors.Wrap(err, "read input stream")
		}
	}
}

// Close signals end of input. A dangling partial UTF-8 sequence is
// replaced with U+FFFD, and any pending trailing text is flushed.
func (w *Writer) Close() error {
	if len(w.pending) > 0 {
		w.tok.processRune(utf8.RuneError)
		w.pending = nil
	}
	w.tok.End()
	return nil
}
