package portal

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeURI percent-encodes s the way ECMAScript's encodeURI does: letters,
// digits, the marks -_.!~*'() and the reserved set ;,/?:@&=+$# are kept, every
// other byte of the UTF-8 encoding is written as %XX.
func EncodeURI(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !keepURIByte(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepURIByte(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0x0f])
	}
	return sb.String()
}

func keepURIByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')',
		';', ',', '/', '?', ':', '@', '&', '=', '+', '$', '#':
		return true
	}
	return false
}
