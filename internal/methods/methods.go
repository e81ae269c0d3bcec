package methods

import (
	"net/http"

	"github.com/jub0bs/preflight/internal/util"
	"golang.org/x/net/http/httpguts"
)

// Default is the method a preflight asks for when none is specified.
const Default = http.MethodGet

// Normalize returns a [byte-uppercase] version of name.
// Unlike the Fetch standard, which only normalizes a handful of methods,
// the command line treats method names case-insensitively.
//
// [byte-uppercase]: https://infra.spec.whatwg.org/#byte-uppercase
func Normalize(name string) string {
	return util.ByteUppercase(name)
}

// IsValid reports whether name is a valid method, [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#concept-method
func IsValid(name string) bool {
	// Note: the production is identical to that of header names.
	return httpguts.ValidHeaderFieldName(name)
}

// IsForbidden reports whether name is a forbidden method,
// [per the Fetch standard]. Browsers never issue requests,
// let alone CORS-preflight requests, that use such methods.
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#forbidden-method
func IsForbidden(name string) bool {
	return byteLowercasedForbiddenMethods.Contains(util.ByteLowercase(name))
}

var byteLowercasedForbiddenMethods = util.NewSet(
	"connect",
	"trace",
	"track",
)

// IsSafelisted reports whether name is a safelisted method,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#cors-safelisted-method
func IsSafelisted(name string) bool {
	return safelistedMethods.Contains(name)
}

var safelistedMethods = util.NewSet(
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
)
