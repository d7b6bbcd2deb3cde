package components

import "testing"

func TestParseManual(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want ManualSubmitMsg
	}{
		{"45m", ManualSubmitMsg{Date: "2026-10-16", Minutes: 45}},
		{"1:05:09", ManualSubmitMsg{Date: "2026-10-16", Hours: 1, Minutes: 5, Seconds: 9}},
		{"90:00", ManualSubmitMsg{Date: "2026-10-16", Hours: 1, Minutes: 30}},
		{"2026-10-14 20m30s", ManualSubmitMsg{Date: "2026-10-14", Minutes: 20, Seconds: 30}},
		{"0s", ManualSubmitMsg{Date: "2026-10-16"}},
	}
	for _, tc := range cases {
		got, err := ParseManual(tc.in, "2026-10-16")
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseManualRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "soon", "14/10/2026 20m", "1:2:3:4", "a b c", "-5m"} {
		if _, err := ParseManual(in, "2026-10-16"); err == nil {
			t.Fatalf("expected %q to fail", in)
		}
	}
}
