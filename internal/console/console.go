// Package console renders preflight records for humans, in color when the
// terminal supports it.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/jub0bs/preflight"
	"github.com/jub0bs/preflight/internal/headers"
)

// ANSI color codes
const (
	red    = lipgloss.Color("1")
	green  = lipgloss.Color("2")
	yellow = lipgloss.Color("3")
	cyan   = lipgloss.Color("6")
	gray   = lipgloss.Color("8")
	white  = lipgloss.Color("15")
)

type styles struct {
	accent  lipgloss.Style // request line and header direction markers
	value   lipgloss.Style // ordinary header values
	cors    lipgloss.Style // values of CORS headers
	success lipgloss.Style
	failure lipgloss.Style
	tags    map[preflight.Tag]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	label := r.NewStyle().Bold(true)
	return styles{
		accent:  r.NewStyle().Foreground(cyan),
		value:   r.NewStyle().Foreground(white),
		cors:    r.NewStyle().Foreground(green),
		success: r.NewStyle().Foreground(green),
		failure: r.NewStyle().Foreground(red),
		tags: map[preflight.Tag]lipgloss.Style{
			preflight.TagPassed:  label.Foreground(green),
			preflight.TagFailed:  label.Foreground(red),
			preflight.TagSkipped: label.Foreground(gray),
			preflight.TagError:   label.Foreground(red),
			preflight.TagWarning: label.Foreground(yellow),
		},
	}
}

// A Sink is a [preflight.Sink] that writes one line per record,
// colored according to the record's role.
// A Sink is not safe for concurrent use.
type Sink struct {
	w      io.Writer
	styles styles
	status int // status code of the last status line
}

// New returns a [*Sink] that writes to w.
// Colors are downsampled to what the terminal behind w supports;
// if noColor is set or if w isn't a terminal, colors are stripped.
func New(w io.Writer, noColor bool) *Sink {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if noColor {
		cpw.Profile = colorprofile.NoTTY
	}
	return &Sink{
		w:      cpw,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// Emit writes r to s's writer. Write errors are ignored.
func (s *Sink) Emit(r preflight.Record) {
	fmt.Fprintln(s.w, s.render(r))
}

func (s *Sink) render(r preflight.Record) string {
	st := &s.styles
	switch r.Tag {
	case preflight.TagRequest:
		method, target, _ := strings.Cut(r.Text, " ")
		return st.accent.Render(method) + " " + target
	case preflight.TagHeader:
		dir := ">"
		value := st.value
		if r.Inbound {
			dir = "<"
			if headers.IsCORS(r.Field.Name) {
				value = st.cors
			}
		}
		return st.accent.Render(dir) + " " + r.Field.Name + ": " + value.Render(r.Field.Value)
	case preflight.TagResponse:
		// The round-trip time, which follows the status line,
		// is colored like it.
		if r.Status != 0 {
			s.status = r.Status
		}
		if 200 <= s.status && s.status < 300 {
			return st.success.Render(r.Text)
		}
		return st.failure.Render(r.Text)
	default:
		label, ok := st.tags[r.Tag]
		if !ok {
			return r.String()
		}
		return label.Render(r.Tag.String()) + " " + r.Text
	}
}
