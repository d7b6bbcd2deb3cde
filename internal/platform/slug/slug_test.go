package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Anna Svensson":       "anna-svensson",
		"  Tack för idag!  ":  "tack-for-idag",
		"Åsa Öberg":           "asa-oberg",
		"Morgonbön -- 06:30":  "morgonbon-06-30",
		"":                    "untitled",
		"!!!":                 "untitled",
		"user_42@example.com": "user-42-example-com",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeBoundsLength(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("lång bön ", 20))
	if len(got) > maxLen || strings.HasSuffix(got, "-") {
		t.Fatalf("unexpected slug %q (%d chars)", got, len(got))
	}
}
