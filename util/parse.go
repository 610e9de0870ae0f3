package util

import (
	"strconv"
	"strings"
)

// sizeUnits is ordered so that longer suffixes are tried before "B".
var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"GIB", 1 << 30}, {"GB", 1 << 30},
	{"MIB", 1 << 20}, {"MB", 1 << 20},
	{"KIB", 1 << 10}, {"KB", 1 << 10},
	{"B", 1},
}

// ParseSize reads a body limit such as "10MB", "512KiB" or "1024" as a byte
// count. Units are binary either way. Empty, malformed and negative values
// yield fallback.
func ParseSize(s string, fallback int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	unit := int64(1)
	for _, u := range sizeUnits {
		if num, ok := strings.CutSuffix(s, u.suffix); ok {
			s, unit = strings.TrimSpace(num), u.bytes
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n * unit
}

// MaskSecret keeps the first keep bytes of an API key for log lines and stars
// out the rest. Keys no longer than keep are starred out entirely, and an
// unset key reads "(unset)".
func MaskSecret(s string, keep int) string {
	switch {
	case s == "":
		return "(unset)"
	case len(s) <= keep:
		return "***"
	}
	return s[:keep] + "***"
}
