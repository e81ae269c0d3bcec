package preflight

import (
	"errors"
	"net/url"
	"strings"

	"github.com/jub0bs/preflight/internal/headers"
	"github.com/jub0bs/preflight/internal/methods"
	"github.com/jub0bs/preflight/internal/origins"
	"github.com/jub0bs/preflight/internal/util"
	"github.com/jub0bs/preflight/opterrors"
)

// An Input holds the raw, unvalidated parameters of a preflight check,
// typically straight from the command line.
// Call [NewOptions] to validate it.
//
// # URL
//
// URL is the absolute http or https URL that the CORS-preflight request
// targets. It is required.
//
// # Method
//
// Method is the name of the method that the "actual" request would use;
// it's sent as the value of the Access-Control-Request-Method header.
// Method names are treated case-insensitively and normalized to uppercase.
// An empty Method stands for GET.
//
// # Headers
//
// Headers is a comma-separated list of the names of the headers that the
// actual request would include, e.g.
//
//	content-type,x-pingother
//
// If non-empty, it's sent verbatim as the value of the
// Access-Control-Request-Headers header: no reordering and no case
// normalization take place. However, each of its (non-empty) elements must
// be a valid header name.
//
// # Origin
//
// Origin is the Web origin from which the actual request would be sent,
// e.g.
//
//	https://example.com
//
// It's normalized to its [ASCII serialization] before being sent as the
// value of the Origin header; in particular, a trailing slash is dropped.
// A bare host (e.g. example.com) is interpreted as an https origin.
// The null origin is permitted.
//
// RequireOrigin, when set, makes Origin mandatory.
//
// [ASCII serialization]: https://html.spec.whatwg.org/multipage/browsers.html#ascii-serialisation-of-an-origin
type Input struct {
	URL           string
	Method        string
	Headers       string
	Origin        string
	RequireOrigin bool
}

// Options are the validated parameters of a preflight check.
// Options are immutable; build them by calling [NewOptions].
type Options struct {
	url     *url.URL
	method  string
	headers string
	origin  string // empty if none
}

// NewOptions validates in and, if it's valid, returns the corresponding
// [*Options] and a nil error.
// Otherwise, it returns a nil [*Options] and some non-nil error.
//
// If you need to programmatically handle the input errors constitutive of
// the resulting error, rely on package [github.com/jub0bs/preflight/opterrors].
func NewOptions(in Input) (*Options, error) {
	var (
		opts Options
		errs []error
	)
	// Accumulate errors in a slice so as to call errors.Join at most once,
	// so that users can fix all of their mistakes in one go.
	u, err := parseURL(in.URL)
	if err != nil {
		errs = append(errs, err)
	}
	opts.url = u
	opts.method, err = parseMethod(in.Method)
	if err != nil {
		errs = append(errs, err)
	}
	for _, name := range headers.Split(in.Headers) {
		if !headers.IsValid(name) {
			err := &opterrors.UnacceptableHeaderNameError{
				Value:  name,
				Reason: "invalid",
			}
			errs = append(errs, err)
		}
	}
	opts.headers = in.Headers
	switch {
	case in.Origin != "":
		opts.origin, err = parseOrigin(in.Origin)
		if err != nil {
			errs = append(errs, err)
		}
	case in.RequireOrigin:
		errs = append(errs, new(opterrors.MissingOriginError))
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	return &opts, nil
}

func parseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, new(opterrors.MissingURLError)
	}
	u, err := url.Parse(raw)
	if err != nil {
		err := &opterrors.InvalidURLError{
			Value:  raw,
			Reason: "malformed",
		}
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		err := &opterrors.InvalidURLError{
			Value:  raw,
			Reason: "relative",
		}
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		err := &opterrors.InvalidURLError{
			Value:  raw,
			Reason: "scheme",
		}
		return nil, err
	}
	return u, nil
}

func parseMethod(name string) (string, error) {
	if name == "" {
		return methods.Default, nil
	}
	if !methods.IsValid(name) {
		err := &opterrors.UnacceptableMethodError{
			Value:  name,
			Reason: "invalid",
		}
		return "", err
	}
	return methods.Normalize(name), nil
}

const nullOrigin = "null"

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

func parseOrigin(raw string) (string, error) {
	if raw == nullOrigin {
		return nullOrigin, nil
	}
	invalid := &opterrors.InvalidOriginError{Value: raw}
	s := raw
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil ||
		u.Host == "" ||
		u.User != nil ||
		u.Path != "" && u.Path != "/" ||
		u.RawQuery != "" ||
		u.Fragment != "" {
		return "", invalid
	}
	scheme := util.ByteLowercase(u.Scheme)
	host := util.ByteLowercase(u.Host)
	if port := u.Port(); port != "" && port == defaultPorts[scheme] {
		host = host[:len(host)-len(port)-1]
	}
	o, ok := origins.Parse(scheme + "://" + host)
	if !ok {
		return "", invalid
	}
	return o.String(), nil
}

// URL returns a copy of the URL targeted by the preflight request.
func (o *Options) URL() *url.URL {
	u := *o.url
	return &u
}

// Method returns the (uppercase) method the preflight request asks for.
func (o *Options) Method() string {
	return o.method
}

// Headers returns the verbatim list of request headers the preflight
// request asks for, or the empty string if none.
func (o *Options) Headers() string {
	return o.headers
}

// Origin returns the serialized origin of the preflight request
// and true, or "", false if the request carries no origin.
func (o *Options) Origin() (string, bool) {
	return o.origin, o.origin != ""
}

// Advisories returns human-readable remarks about aspects of o that,
// although valid, make the preflight request unlike one that a browser
// would send. Advisories never affect the outcome of checks.
func (o *Options) Advisories() []string {
	var msgs []string
	if methods.IsForbidden(o.method) {
		msgs = append(msgs, o.method+" is a forbidden method; "+
			"browsers never send CORS-preflight requests for it.")
	}
	if methods.IsSafelisted(o.method) && o.headers == "" {
		msgs = append(msgs, o.method+" is a CORS-safelisted method; "+
			"without any requested headers, browsers would not send "+
			"a CORS-preflight request.")
	}
	var forbidden, prohibited []string
	for _, name := range headers.Split(o.headers) {
		lower := util.ByteLowercase(name)
		switch {
		case headers.IsForbiddenRequestHeaderName(lower):
			forbidden = append(forbidden, name)
		case headers.IsProhibitedRequestHeaderName(lower):
			prohibited = append(prohibited, name)
		}
	}
	if len(forbidden) != 0 {
		var sb strings.Builder
		sb.WriteString("Browsers never list forbidden request-header names (")
		util.Join(&sb, forbidden)
		sb.WriteString(") in " + headers.ACRH + ".")
		msgs = append(msgs, sb.String())
	}
	if len(prohibited) != 0 {
		var sb strings.Builder
		sb.WriteString("Asking permission to send CORS response headers (")
		util.Join(&sb, prohibited)
		sb.WriteString(") almost always stems from a misunderstanding of CORS.")
		msgs = append(msgs, sb.String())
	}
	if o.origin == "" {
		msgs = append(msgs, "No origin specified; browsers always include "+
			"an Origin header in CORS-preflight requests.")
	}
	return msgs
}
