package preflight

import (
	"iter"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/jub0bs/preflight/internal/headers"
	"github.com/jub0bs/preflight/internal/util"
)

// A HeaderView is a read-only, case-insensitive view of header fields
// in which each header name occurs at most once.
// The zero value represents an empty view.
type HeaderView struct {
	keys   []string         // byte-lowercase names; invariant: sorted
	fields map[string]Field // keyed by byte-lowercase name
}

// MergeHeaders merges srcs into a [HeaderView].
// Header names are compared case-insensitively. When a name occurs more than
// once, whether in the same source or in different sources, the first value
// observed wins: sources are visited in order, the names of a given source in
// lexicographical order, and the values of a given name in order.
// Names without any value are ignored.
func MergeHeaders(srcs ...http.Header) HeaderView {
	v := HeaderView{
		fields: make(map[string]Field),
	}
	for _, src := range srcs {
		for _, name := range slices.Sorted(maps.Keys(src)) {
			vals := src[name]
			if len(vals) == 0 {
				continue
			}
			key := util.ByteLowercase(name)
			if _, found := v.fields[key]; found {
				continue
			}
			v.fields[key] = Field{
				Name:  http.CanonicalHeaderKey(name),
				Value: vals[0],
			}
			v.keys = append(v.keys, key)
		}
	}
	slices.Sort(v.keys)
	return v
}

// NewHeaderView returns a [HeaderView] of the header fields of res.
// The primary response headers take precedence over the trailers,
// which take precedence over the content headers that package net/http
// lifts out of res.Header (Transfer-Encoding and Content-Length).
func NewHeaderView(res *http.Response) HeaderView {
	return MergeHeaders(res.Header, res.Trailer, contentHeaders(res))
}

func contentHeaders(res *http.Response) http.Header {
	hdrs := make(http.Header)
	if len(res.TransferEncoding) != 0 {
		hdrs[headers.TransferEncoding] = []string{strings.Join(res.TransferEncoding, ", ")}
	}
	if res.ContentLength > 0 {
		hdrs[headers.ContentLength] = []string{strconv.FormatInt(res.ContentLength, 10)}
	}
	return hdrs
}

// Get returns the value associated with name (regardless of its case)
// and true, or "", false if v contains no such name.
func (v HeaderView) Get(name string) (string, bool) {
	f, found := v.fields[util.ByteLowercase(name)]
	return f.Value, found
}

// Has reports whether v contains name (regardless of its case).
func (v HeaderView) Has(name string) bool {
	_, found := v.fields[util.ByteLowercase(name)]
	return found
}

// Len returns the number of header fields in v.
func (v HeaderView) Len() int {
	return len(v.keys)
}

// All returns an iterator over the header fields of v, sorted
// case-insensitively by name. Names are in canonical format
// (see [http.CanonicalHeaderKey]).
func (v HeaderView) All() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, key := range v.keys {
			if !yield(v.fields[key]) {
				return
			}
		}
	}
}
