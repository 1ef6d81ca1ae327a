package utils

import (
	"fmt"
	"time"
)

// ShortAddress shortens a long hex address for display: first 6 and last 4
// characters around an ellipsis. Short strings come back untouched.
func ShortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// Truncate cuts s to at most n runes, appending "..." when it was cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// TimeAgo renders a millisecond epoch as a rough human age ("3h ago").
// Non-positive timestamps come back as "unknown", future ones as "just now".
func TimeAgo(timestampMs int64) string {
	if timestampMs <= 0 {
		return "unknown"
	}

	elapsed := time.Since(time.UnixMilli(timestampMs))
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
