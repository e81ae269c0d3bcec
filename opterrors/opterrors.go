/*
Package opterrors provides functionalities for programmatically handling
option errors produced by package [github.com/jub0bs/preflight].

Most users of package [github.com/jub0bs/preflight] have no use for this
package. However, tools that wrap the preflight checker (e.g. CI jobs that
check a fleet of endpoints) may find it useful: it indeed allows them to
report invalid input in their own words, without parsing error messages.
*/
package opterrors

import (
	"fmt"
	"iter"
)

// A MissingURLError indicates that no target URL was specified.
type MissingURLError struct{}

func (*MissingURLError) Error() string {
	return "preflight: you must specify a URL to request"
}

// An ExtraURLError indicates that more than one target URL was specified.
type ExtraURLError struct {
	Value string // the superfluous URL
}

func (err *ExtraURLError) Error() string {
	const tmpl = "preflight: you can only specify one URL (got extra %q)"
	return fmt.Sprintf(tmpl, err.Value)
}

// An InvalidURLError indicates an unusable target URL.
// The Reason field may take one of three values:
//   - "malformed": the URL cannot be parsed;
//   - "relative": the URL is not absolute or lacks a host;
//   - "scheme": the URL's scheme is neither http nor https.
type InvalidURLError struct {
	Value  string // the unusable value that was specified
	Reason string // malformed | relative | scheme
}

func (err *InvalidURLError) Error() string {
	switch err.Reason {
	case "relative":
		const tmpl = "preflight: %q is not an absolute URL"
		return fmt.Sprintf(tmpl, err.Value)
	case "scheme":
		const tmpl = "preflight: %q does not use the http or https scheme"
		return fmt.Sprintf(tmpl, err.Value)
	default:
		const tmpl = "preflight: %q is not a valid URL"
		return fmt.Sprintf(tmpl, err.Value)
	}
}

// An UnacceptableMethodError indicates a method name that is not a valid
// [token].
//
// [token]: https://httpwg.org/specs/rfc9110.html#tokens
type UnacceptableMethodError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid
}

func (err *UnacceptableMethodError) Error() string {
	const tmpl = "preflight: %s method %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An UnacceptableHeaderNameError indicates an element of the list of
// requested headers that is not a valid header name.
type UnacceptableHeaderNameError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid
}

func (err *UnacceptableHeaderNameError) Error() string {
	const tmpl = "preflight: %s request-header name %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An InvalidOriginError indicates a value that cannot be used
// as the Origin of a preflight request.
type InvalidOriginError struct {
	Value string // the invalid value that was specified
}

func (err *InvalidOriginError) Error() string {
	const tmpl = "preflight: %q is not a valid origin"
	return fmt.Sprintf(tmpl, err.Value)
}

// A MissingOriginError indicates that no origin was specified
// even though one was required.
type MissingOriginError struct{}

func (*MissingOriginError) Error() string {
	return "preflight: you must specify an origin"
}

// All returns an iterator over the option errors contained in
// err's error tree. The order is unspecified and may change from one release
// to the next. All only supports error values returned by
// [github.com/jub0bs/preflight.NewOptions]; it should not be called on
// any other error value.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// Note that there's no need for any "interface { Unwrap() error }" case
	// because nowhere do we "wrap" option errors; we only ever "join" them.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
