package domain

var prayerTypes = []string{
	"good-morning",
	"good-night",
	"health",
	"challenges",
	"wisdom",
	"gratitude",
	"peace",
	"love",
	"hope",
	"strength",
}

// PrayerTypes lists the tags a session may carry.
func PrayerTypes() []string {
	out := make([]string, len(prayerTypes))
	copy(out, prayerTypes)
	return out
}

func IsPrayerType(tag string) bool {
	for _, t := range prayerTypes {
		if t == tag {
			return true
		}
	}
	return false
}
