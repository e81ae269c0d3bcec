package headers

import (
	"strings"

	"github.com/jub0bs/preflight/internal/util"
)

// IsForbiddenRequestHeaderName reports whether name is a
// forbidden request-header name [per the Fetch standard].
// Browsers never list such names in Access-Control-Request-Headers.
//
// Precondition: name is a valid and [byte-lowercase] header name.
//
// [byte-lowercase]: https://infra.spec.whatwg.org/#byte-lowercase
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#forbidden-header-name
func IsForbiddenRequestHeaderName(name string) bool {
	return discreteForbiddenRequestHeaderNames.Contains(name) ||
		strings.HasPrefix(name, "proxy-") ||
		strings.HasPrefix(name, "sec-")
}

var discreteForbiddenRequestHeaderNames = util.NewSet(
	"accept-charset",
	"accept-encoding",
	"access-control-request-headers",
	"access-control-request-method",
	// see https://wicg.github.io/private-network-access/#forbidden-header-names
	"access-control-request-private-network",
	"connection",
	"content-length",
	"cookie",
	"cookie2",
	"date",
	"dnt",
	"expect",
	"host",
	"keep-alive",
	"origin",
	"referer",
	"set-cookie",
	"te",
	"trailer",
	"transfer-encoding",
	"upgrade",
	"via",
)

// IsProhibitedRequestHeaderName reports whether name is the name of a CORS
// response header. Asking permission to send such request headers almost
// always stems from some misunderstanding of CORS.
//
// Precondition: name is a valid and [byte-lowercase] header name.
//
// [byte-lowercase]: https://infra.spec.whatwg.org/#byte-lowercase
func IsProhibitedRequestHeaderName(name string) bool {
	return prohibitedRequestHeaderNames.Contains(name)
}

var prohibitedRequestHeaderNames = util.NewSet(
	"access-control-allow-origin",
	"access-control-allow-credentials",
	"access-control-allow-methods",
	"access-control-allow-headers",
	"access-control-allow-private-network",
	"access-control-max-age",
	"access-control-expose-headers",
)
