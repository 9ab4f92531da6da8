// Package report formats a decoded DEX file as the line-oriented text
// report printed by dexinfo.
package report

import (
	"bufio"
	"io"
	"strings"
)

// Sink receives report lines in order. A line never contains the trailing
// newline.
type Sink interface {
	WriteLine(line string) error
}

// WriterSink writes lines to an io.Writer through a buffer. Call Flush when
// done.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink creates a WriterSink on top of w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// WriteLine implements Sink.
func (s *WriterSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush writes any buffered lines to the underlying writer.
func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// Buffer accumulates lines in memory.
type Buffer struct {
	lines []string
}

// WriteLine implements Sink.
func (b *Buffer) WriteLine(line string) error {
	b.lines = append(b.lines, line)
	return nil
}

// Lines returns the lines written so far.
func (b *Buffer) Lines() []string {
	return b.lines
}

// String returns the lines joined as text, each terminated by a newline.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
