package message

import "strings"

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes s for a URL query value. Letters, digits and
// -_.!~*'() pass through; everything else, spaces included, is escaped
// byte by byte as %XX.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Link builds the handoff URL https://<domain>/<contact>?text=<encoded text>.
func Link(domain, contact, text string) string {
	return "https://" + domain + "/" + contact + "?text=" + Encode(text)
}
