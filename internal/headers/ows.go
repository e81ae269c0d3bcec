package headers

import "strings"

// owsBytes are the bytes that make up [optional whitespace (OWS)].
//
// [optional whitespace (OWS)]: https://httpwg.org/specs/rfc9110.html#whitespace
const owsBytes = "\t "

// TrimOWS trims up to n bytes of [optional whitespace (OWS)]
// from the start of and/or the end of s.
// If no more than n bytes of OWS are found at the start of s
// and no more than n bytes of OWS are found at the end of s,
// it returns the trimmed result and true.
// Otherwise, it returns the original string and false.
//
// [optional whitespace (OWS)]: https://httpwg.org/specs/rfc9110.html#whitespace
func TrimOWS(s string, n int) (trimmed string, ok bool) {
	trimmed = strings.TrimRight(s, owsBytes)
	if len(s)-len(trimmed) > n {
		return s, false
	}
	right := len(trimmed)
	trimmed = strings.TrimLeft(trimmed, owsBytes)
	if right-len(trimmed) > n {
		return s, false
	}
	return trimmed, true
}
