package util

import "testing"

func TestParseSize(t *testing.T) {
	const fallback = 5 << 20
	tests := []struct {
		input string
		want  int64
	}{
		{"10MB", 10 << 20},
		{"512KB", 512 << 10},
		{"512KiB", 512 << 10},
		{"2GB", 2 << 30},
		{"1024", 1024},
		{"1024B", 1024},
		{"  10MB  ", 10 << 20},
		{"10 mb", 10 << 20},
		{"", fallback},
		{"invalid", fallback},
		{"MB", fallback},
		{"-1MB", fallback},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, fallback); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input string
		keep  int
		want  string
	}{
		{"sk-proj-4f8a9c2e71", 8, "sk-proj-***"},
		{"short", 10, "***"},
		{"exactly10!", 10, "***"},
		{"", 4, "(unset)"},
		{"abcdef", 3, "abc***"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := MaskSecret(tc.input, tc.keep); got != tc.want {
				t.Errorf("MaskSecret(%q, %d) = %q, want %q", tc.input, tc.keep, got, tc.want)
			}
		})
	}
}
