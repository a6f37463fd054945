package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineSource yields input lines without their terminators. It returns io.EOF
// once exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// ReaderSource reads newline-terminated lines of any length from a reader.
type ReaderSource struct {
	r *bufio.Reader
}

// NewReaderSource returns a LineSource over r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

// ReadLine implements LineSource. A final line without a newline is still
// returned before io.EOF.
func (s *ReaderSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// SliceSource yields a fixed list of lines.
type SliceSource struct {
	lines []string
}

// NewSliceSource returns a LineSource over lines.
func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{lines: lines}
}

// NewStringSource splits text into lines.
func NewStringSource(text string) *SliceSource {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return NewSliceSource()
	}
	return NewSliceSource(strings.Split(text, "\n")...)
}

// ReadLine implements LineSource.
func (s *SliceSource) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// EchoSource wraps a LineSource and writes every line it yields to w, so that
// scripted input reads like a typed session.
type EchoSource struct {
	src LineSource
	w   io.Writer
}

// NewEchoSource returns a LineSource that echoes src to w.
func NewEchoSource(src LineSource, w io.Writer) *EchoSource {
	return &EchoSource{src: src, w: w}
}

// ReadLine implements LineSource.
func (s *EchoSource) ReadLine() (string, error) {
	line, err := s.src.ReadLine()
	if err == nil {
		fmt.Fprintln(s.w, line)
	}
	return line, err
}

// WriterEmitter writes each emitted line to an io.Writer.
type WriterEmitter struct {
	w io.Writer
}

// NewWriterEmitter returns an emitter over w.
func NewWriterEmitter(w io.Writer) WriterEmitter {
	return WriterEmitter{w: w}
}

// Emit implements store.Emitter.
func (e WriterEmitter) Emit(line string) {
	fmt.Fprintln(e.w, line)
}
