package schemaorg

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO 8601 duration ("PT1H30M", "PT45M") to whole
// minutes. Returns nil for empty, unparseable or zero-length durations so
// the field stays absent instead of becoming zero.
func ParseDuration(duration string) *int {
	if duration == "" {
		return nil
	}

	m := durationPattern.FindStringSubmatch(duration)
	if m == nil {
		return nil
	}

	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])

	total := hours*60 + minutes + seconds/60
	if total <= 0 {
		return nil
	}
	return &total
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
