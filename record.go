package preflight

import (
	"fmt"
	"io"
	"strconv"
)

// A Tag labels a display [Record].
// Tags are part of the observable output of the program
// and other tools may parse them; therefore, their string forms never change.
type Tag int

const (
	TagRequest  Tag = iota // the request line
	TagHeader              // a request or response header field
	TagResponse            // the status line or the round-trip time
	TagPassed              // a passed check
	TagFailed              // a failed check
	TagSkipped             // a skipped check
	TagError               // a transport error
	TagWarning             // a check that passed with a warning, or an aborted run
)

var tagNames = [...]string{
	TagRequest:  "REQUEST",
	TagHeader:   "HEADER",
	TagResponse: "RESPONSE",
	TagPassed:   "PASSED",
	TagFailed:   "FAILED",
	TagSkipped:  "SKIPPED",
	TagError:    "ERROR",
	TagWarning:  "WARNING",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "Tag(" + strconv.Itoa(int(t)) + ")"
	}
	return tagNames[t]
}

// A Record is a unit of display output.
type Record struct {
	Tag  Tag
	Text string // empty for TagHeader records
	// Field is only set for TagHeader records.
	Field Field
	// Inbound is only meaningful for TagHeader records;
	// it distinguishes response headers from request headers.
	Inbound bool
	// Status is only set for the TagResponse record of the status line.
	Status int
}

// String returns a single-line, uncolored representation of r,
// prefixed with its tag.
func (r Record) String() string {
	if r.Tag == TagHeader {
		dir := '>'
		if r.Inbound {
			dir = '<'
		}
		return fmt.Sprintf("%s %c %s: %s", r.Tag, dir, r.Field.Name, r.Field.Value)
	}
	return r.Tag.String() + " " + r.Text
}

// Record returns the display record of r.
func (r Result) Record() Record {
	var tag Tag
	switch {
	case r.Outcome == Passed && r.Warning:
		tag = TagWarning
	case r.Outcome == Passed:
		tag = TagPassed
	case r.Outcome == Failed:
		tag = TagFailed
	default:
		tag = TagSkipped
	}
	return Record{Tag: tag, Text: r.Reason}
}

// A Sink consumes display records, in order.
// Implementations decide how (and whether) to render them.
type Sink interface {
	Emit(Record)
}

// The SinkFunc type is an adapter to allow the use of ordinary functions as
// a [Sink].
type SinkFunc func(Record)

// Emit calls f(r).
func (f SinkFunc) Emit(r Record) {
	f(r)
}

// NewTextSink returns a [Sink] that writes one uncolored line per record
// to w, in the format of [Record.String].
// Write errors are ignored.
func NewTextSink(w io.Writer) Sink {
	return SinkFunc(func(r Record) {
		fmt.Fprintln(w, r.String())
	})
}
