package transport

import "strings"

var validAgentChars = map[rune]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true, '*': true, '+': true,
	'-': true, '.': true, '^': true, '_': true, '`': true, '|': true, '~': true,
}

// UserAgentBuilder builds the User-Agent header value sent on every
// signed request.
type UserAgentBuilder struct {
	sb strings.Builder
}

// NewUserAgentBuilder returns a new UserAgentBuilder.
func NewUserAgentBuilder() *UserAgentBuilder {
	return &UserAgentBuilder{}
}

// AddProduct adds a bare product token to the agent string.
func (u *UserAgentBuilder) AddProduct(name string) {
	u.appendTo(name)
}

// AddProductVersion adds a product token with a version to the agent
// string.
func (u *UserAgentBuilder) AddProductVersion(name, version string) {
	u.appendTo(name + "/" + strings.Map(agentRunes, version))
}

// AddComment adds a parenthesized comment, e.g. the local host name.
func (u *UserAgentBuilder) AddComment(comment string) {
	u.appendTo("(" + strings.Map(agentRunes, comment) + ")")
}

// Build returns the constructed User-Agent string. May be called
// multiple times.
func (u *UserAgentBuilder) Build() string {
	return u.sb.String()
}

func (u *UserAgentBuilder) appendTo(value string) {
	if u.sb.Len() > 0 {
		u.sb.WriteRune(' ')
	}
	u.sb.WriteString(value)
}

func agentRunes(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r
	case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
		return r
	case validAgentChars[r]:
		return r
	default:
		return '-'
	}
}
