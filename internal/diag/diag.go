// Package diag collects the diagnostics produced while parsing and checking a
// program. A Sink is created per stage and per run; nothing is kept globally.
package diag

import (
    "fmt"
    "io"
)

// Sink writes diagnostics, one per line, and counts them.
type Sink struct {
    w     io.Writer
    count int
    lines []string
}

// New returns a sink writing to w. A nil w only records.
func New(w io.Writer) *Sink { return &Sink{w: w} }

// Errorf reports a message attributed to a source line as "<line>: <message>".
func (s *Sink) Errorf(line int, format string, args ...any) {
    s.Report(fmt.Sprintf("%d: %s", line, fmt.Sprintf(format, args...)))
}

// Report records msg verbatim.
func (s *Sink) Report(msg string) {
    s.count++
    s.lines = append(s.lines, msg)
    if s.w != nil {
        fmt.Fprintln(s.w, msg)
    }
}

// Count reports how many diagnostics were recorded.
func (s *Sink) Count() int { return s.count }

// Lines returns the recorded diagnostics in order.
func (s *Sink) Lines() []string { return append([]string(nil), s.lines...) }
