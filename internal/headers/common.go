package headers

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

// header names in canonical format
const (
	// request headers set on every preflight request
	Accept    = "Accept"
	UserAgent = "User-Agent"

	// common request headers
	Origin = "Origin"

	// preflight-only request headers
	ACRM = "Access-Control-Request-Method"
	ACRH = "Access-Control-Request-Headers"

	// common response headers
	ACAO = "Access-Control-Allow-Origin"

	// preflight-only response headers
	ACAM = "Access-Control-Allow-Methods"
	ACAH = "Access-Control-Allow-Headers"
	ACMA = "Access-Control-Max-Age"

	// content headers that net/http lifts out of http.Response.Header
	ContentLength    = "Content-Length"
	TransferEncoding = "Transfer-Encoding"
)

const ValueAnyMediaType = "*/*"

const ValueSep = ","

// corsPrefix is the byte-lowercase prefix shared by all CORS header names.
const corsPrefix = "access-control-"

// IsValid reports whether name is a valid header name,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#header-name
func IsValid(name string) bool {
	return httpguts.ValidHeaderFieldName(name)
}

// IsCORS reports whether name, regardless of its case,
// is the name of a CORS request or response header.
func IsCORS(name string) bool {
	return len(name) >= len(corsPrefix) &&
		strings.EqualFold(name[:len(corsPrefix)], corsPrefix)
}

// Split returns the non-empty elements of [list-based field value] v,
// stripped of any leading or trailing [optional whitespace].
//
// [list-based field value]: https://httpwg.org/specs/rfc9110.html#abnf.extension
// [optional whitespace]: https://httpwg.org/specs/rfc9110.html#whitespace
func Split(v string) []string {
	var elems []string
	for elem := range strings.SplitSeq(v, ValueSep) {
		elem, _ = TrimOWS(elem, len(elem))
		if elem == "" {
			continue
		}
		elems = append(elems, elem)
	}
	return elems
}
