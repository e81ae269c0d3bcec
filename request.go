package preflight

import (
	"context"
	"net/http"

	"github.com/jub0bs/preflight/internal/headers"
)

const (
	// Name is the name of the program.
	Name = "Preflight"
	// Version is the version of the program.
	Version = "0.1-alpha"
	// UserAgent is the value of the User-Agent header of preflight requests.
	UserAgent = Name + "/" + Version
)

// A Field is a header field, i.e. a name-value pair.
type Field struct {
	Name  string
	Value string
}

// Build builds the CORS-preflight request described by opts.
// Build also returns the header fields it set on that request,
// in the order in which it set them:
//
//  1. Accept
//  2. User-Agent
//  3. Access-Control-Request-Method
//  4. Access-Control-Request-Headers (only if opts carries headers)
//  5. Origin (only if opts carries an origin)
//
// The resulting request is bound to ctx.
func Build(ctx context.Context, opts *Options) (*http.Request, []Field) {
	u := opts.URL()
	req := &http.Request{
		Method:     http.MethodOptions,
		URL:        u,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Host:       u.Host,
	}
	fields := make([]Field, 0, 5)
	// Header values are stored as is: in particular, they're neither
	// validated nor parsed.
	set := func(name, value string) {
		req.Header[name] = []string{value}
		fields = append(fields, Field{Name: name, Value: value})
	}
	set(headers.Accept, headers.ValueAnyMediaType)
	set(headers.UserAgent, UserAgent)
	set(headers.ACRM, opts.Method())
	if acrh := opts.Headers(); acrh != "" {
		set(headers.ACRH, acrh)
	}
	if origin, ok := opts.Origin(); ok {
		set(headers.Origin, origin)
	}
	return req.WithContext(ctx), fields
}
