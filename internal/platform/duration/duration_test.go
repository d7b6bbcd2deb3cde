package duration

import "testing"

func TestFormat(t *testing.T) {
	t.Parallel()
	cases := map[int64]string{
		0:      "0:00:00",
		59:     "0:00:59",
		60:     "0:01:00",
		1900:   "0:31:40",
		3661:   "1:01:01",
		86399:  "23:59:59",
		360000: "100:00:00",
	}
	for in, want := range cases {
		if got := Format(in); got != want {
			t.Fatalf("Format(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFromParts(t *testing.T) {
	t.Parallel()
	if got := FromParts(1, 2, 3); got != 3723 {
		t.Fatalf("expected 3723, got %d", got)
	}
	if got := FromParts(0, 0, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	cases := map[string]int64{
		"45m":     2700,
		"1h20m":   4800,
		"20m30s":  1230,
		"1:05:09": 3909,
		"90:00":   5400,
		"0s":      0,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %d, want %d", in, got, want)
		}
		h, m, s := Split(got)
		if FromParts(h, m, s) != got || m > 59 || s > 59 {
			t.Fatalf("Split(%d) = %d %d %d", got, h, m, s)
		}
	}
	for _, in := range []string{"", "soon", "5", "1:2:3:4", "-5m", "1:-2"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected Parse(%q) to fail", in)
		}
	}
}
