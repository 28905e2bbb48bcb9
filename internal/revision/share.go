package revision

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// SharePrefix is the URL fragment scheme carrying a share token.
const SharePrefix = "#/s/"

// ShareCodec turns cleaned text into a URL-embeddable token and back.
// Tokens are the UTF-8 bytes in unpadded base64url, so any valid UTF-8
// string round-trips and the token needs no further escaping in a URL.
type ShareCodec struct{}

// Strict decoding keeps the token to text mapping one to one.
var shareEncoding = base64.RawURLEncoding.Strict()

// Encode returns the token for text.
func (ShareCodec) Encode(text string) string {
	return shareEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode. Tokens that are not canonical unpadded base64url,
// or whose bytes are not valid UTF-8, yield ErrMalformedToken.
func (ShareCodec) Decode(token string) (string, error) {
	token = strings.TrimSpace(token)
	raw, err := shareEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not UTF-8", ErrMalformedToken)
	}
	return string(raw), nil
}

// Link appends the share fragment for text to base. base may be empty.
func (c ShareCodec) Link(base, text string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + SharePrefix + c.Encode(text)
}

// ParseFragment extracts the token from a full URL or a bare fragment.
// ok is false when the fragment does not use the share scheme.
func (ShareCodec) ParseFragment(s string) (token string, ok bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '#')
	if i < 0 {
		return "", false
	}
	frag := s[i:]
	if !strings.HasPrefix(frag, SharePrefix) {
		return "", false
	}
	return frag[len(SharePrefix):], true
}
