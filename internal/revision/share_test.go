package revision

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestShareRoundTrip(t *testing.T) {
	var c ShareCodec
	inputs := []string{
		"",
		"plain ascii text",
		"punctuation: !@#$%^&*()_+-=[]{};':\",./<>?`~|\\",
		"repeated   whitespace\t\t and\n\n\nnewlines  ",
		"smart “quotes” and ‘apostrophes’ — dashes…",
		"日本語のテキスト",
		"emoji 🎉👩‍💻 mixed",
	}
	for _, in := range inputs {
		tok := c.Encode(in)
		if strings.ContainsAny(tok, "+/=#?&") {
			t.Fatalf("token %q is not fragment-safe", tok)
		}
		out, err := c.Decode(tok)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", in, err)
		}
		if out != in {
			t.Fatalf("round trip mismatch: got %q want %q", out, in)
		}
	}
}

func TestShareDecodeMalformed(t *testing.T) {
	var c ShareCodec
	bad := []string{
		"!!!not base64!!!",
		"a",
		base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe}),
	}
	for _, tok := range bad {
		if _, err := c.Decode(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Decode(%q): expected ErrMalformedToken, got %v", tok, err)
		}
	}
}

func TestShareDecodeRejectsNonCanonical(t *testing.T) {
	var c ShareCodec
	if tok := c.Encode("hi"); tok != "aGk" {
		t.Fatalf("Encode(hi) = %q", tok)
	}
	// "aGl" carries non-zero trailing bits and "aGk=" is padded; both would
	// otherwise decode to "hi" as well.
	for _, tok := range []string{"aGl", "aGk=", base64.URLEncoding.EncodeToString([]byte("hi"))} {
		if out, err := c.Decode(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Decode(%q) = %q, %v; want ErrMalformedToken", tok, out, err)
		}
	}
}

func TestShareLinkAndFragment(t *testing.T) {
	var c ShareCodec
	link := c.Link("https://textify.example/#old", "Hello world")
	if !strings.HasPrefix(link, "https://textify.example/#/s/") {
		t.Fatalf("unexpected link %q", link)
	}
	tok, ok := c.ParseFragment(link)
	if !ok {
		t.Fatalf("link not recognised: %q", link)
	}
	if text, err := c.Decode(tok); err != nil || text != "Hello world" {
		t.Fatalf("decoded %q, %v", text, err)
	}
	if tok, ok := c.ParseFragment("#/s/" + c.Encode("x")); !ok || tok != c.Encode("x") {
		t.Fatalf("bare fragment not parsed")
	}
	for _, s := range []string{"", "https://textify.example/", "#/other/abc", "#s/abc"} {
		if _, ok := c.ParseFragment(s); ok {
			t.Fatalf("ParseFragment(%q) should not match", s)
		}
	}
}
