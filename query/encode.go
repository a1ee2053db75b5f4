package query

const upperhex = "0123456789ABCDEF"

// noEscape marks the RFC 3986 unreserved bytes that pass through
// percent-encoding unchanged.
var noEscape [256]bool

func init() {
	for i := range noEscape {
		c := byte(i)
		noEscape[i] = (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '~' || c == '-'
	}
}

// Escape percent-encodes value for use in a canonical query. Every byte
// outside the unreserved set becomes %XX with uppercase hex digits;
// multi-byte runes are encoded byte by byte. The output is stable for
// identical input, as signature verification requires.
func Escape(value string) string {
	var hexCount int
	for i := 0; i < len(value); i++ {
		if !noEscape[value[i]] {
			hexCount++
		}
	}
	if hexCount == 0 {
		return value
	}

	escaped := make([]byte, 0, len(value)+2*hexCount)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if noEscape[c] {
			escaped = append(escaped, c)
			continue
		}
		escaped = append(escaped, '%', upperhex[c>>4], upperhex[c&0xF])
	}
	return string(escaped)
}
