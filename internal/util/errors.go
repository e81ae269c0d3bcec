package util

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

const pkgName = "preflight"

// Errorf is similar to [fmt.Errorf],
// but the message of the resulting error is prefixed with "preflight: ".
// If format contains a %w verb, the resulting error unwraps to the
// corresponding operand rather than to an intermediate error.
func Errorf(format string, a ...any) error {
	err := fmt.Errorf(format, a...)
	return &prefixedError{
		msg:   pkgName + ": " + err.Error(),
		cause: errors.Unwrap(err),
	}
}

type prefixedError struct {
	msg   string
	cause error
}

func (e *prefixedError) Error() string {
	return e.msg
}

func (e *prefixedError) Unwrap() error {
	return e.cause
}

// Chain returns the messages of err and of each error in its
// (single-)unwrap chain, outermost first.
// Only the first element of a joined error is followed.
func Chain(err error) []string {
	var msgs []string
	for err != nil {
		msgs = append(msgs, err.Error())
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 {
				return msgs
			}
			err = errs[0]
		default:
			err = errors.Unwrap(err)
		}
	}
	return msgs
}

// Join joins the elements of strs in a human-friendly way
// and writes the result to w.
func Join(w io.StringWriter, strs []string) {
	// Errors are deliberately ignored.
	switch len(strs) {
	case 0:
	case 1:
		w.WriteString(strconv.Quote(strs[0]))
	case 2:
		w.WriteString(strconv.Quote(strs[0]))
		w.WriteString(" and ")
		w.WriteString(strconv.Quote(strs[1]))
	default:
		w.WriteString(strconv.Quote(strs[0]))
		for i := 1; i < len(strs)-1; i++ {
			w.WriteString(", ")
			w.WriteString(strconv.Quote(strs[i]))
		}
		w.WriteString(", and ")
		w.WriteString(strconv.Quote(strs[len(strs)-1]))
	}
}
