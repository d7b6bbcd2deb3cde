package markdown

import (
	"errors"
	"testing"
)

type meta struct {
	ID       string `yaml:"id"`
	Duration int64  `yaml:"duration_seconds"`
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := Encode(meta{ID: "abc", Duration: 1900}, "# Prayer\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got meta
	body, err := Decode(rendered, &got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "abc" || got.Duration != 1900 {
		t.Fatalf("unexpected meta %+v", got)
	}
	if body != "# Prayer\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestDecodeVariants(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		content string
		id      string
		body    string
	}{
		"crlf":         {"---\r\nid: x1\r\n---\r\n\r\nhello\r\n", "x1", "hello\n"},
		"no body":      {"---\nid: x2\n---", "x2", ""},
		"empty header": {"---\n---\nbody", "", "body"},
	}
	for name, tc := range cases {
		var got meta
		body, err := Decode(tc.content, &got)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.ID != tc.id || body != tc.body {
			t.Fatalf("%s: got id=%q body=%q", name, got.ID, body)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	var m meta
	if _, err := Decode("# just a note\n", &m); !errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected ErrNoFrontmatter, got %v", err)
	}
	if _, err := Decode("---\nid: x\nno closing\n", &m); err == nil || errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected a malformed-header error, got %v", err)
	}
	if _, err := Decode("---\nid: [unclosed\n---\n", &m); err == nil {
		t.Fatalf("expected a yaml error")
	}
}
