package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format renders seconds as H:MM:SS. The hour is unpadded and unbounded.
func Format(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FromParts is hours*3600 + minutes*60 + seconds.
func FromParts(hours, minutes, seconds int) int64 {
	return int64(hours)*3600 + int64(minutes)*60 + int64(seconds)
}

// Split is the inverse of FromParts with minutes and seconds below 60.
func Split(total int64) (hours, minutes, seconds int) {
	return int(total / 3600), int((total % 3600) / 60), int(total % 60)
}

// Parse reads H:MM:SS, M:SS, or unit form such as 1h20m and 45m10s.
func Parse(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ":") {
		parts := strings.Split(raw, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		var total int64
		for _, part := range parts {
			n, err := strconv.ParseInt(part, 10, 64)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid duration %q", raw)
			}
			total = total*60 + n
		}
		return total, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return int64(d / time.Second), nil
}
