package util

// ByteLowercase returns a [byte-lowercase] version of str.
// Only ASCII uppercase letters are affected; str itself is returned if it
// contains none.
//
// [byte-lowercase]: https://infra.spec.whatwg.org/#byte-lowercase
func ByteLowercase(str string) string {
	return shiftRange(str, 'A', 'Z', 'a'-'A')
}

// ByteUppercase returns a [byte-uppercase] version of str.
// Only ASCII lowercase letters are affected; str itself is returned if it
// contains none.
//
// [byte-uppercase]: https://infra.spec.whatwg.org/#byte-uppercase
func ByteUppercase(str string) string {
	return shiftRange(str, 'a', 'z', 256-('a'-'A')) // i.e. -32, modulo 256
}

// shiftRange adds delta to every byte of str that lies in [lo, hi].
func shiftRange(str string, lo, hi, delta byte) string {
	i := 0
	for ; i < len(str); i++ {
		if lo <= str[i] && str[i] <= hi {
			break
		}
	}
	if i == len(str) {
		return str
	}
	buf := []byte(str)
	for ; i < len(buf); i++ {
		if lo <= buf[i] && buf[i] <= hi {
			buf[i] += delta
		}
	}
	return string(buf)
}
