package version

import (
	"runtime"
	"strings"
	"testing"
)

// setBuild overrides the ldflags variables for one test.
func setBuild(t *testing.T, version, commit, branch, buildTime, goVersion string) {
	t.Helper()
	orig := [5]string{Version, GitCommit, GitBranch, BuildTime, GoVersion}
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion = orig[0], orig[1], orig[2], orig[3], orig[4]
	})
	Version, GitCommit, GitBranch, BuildTime, GoVersion = version, commit, branch, buildTime, goVersion
}

func TestGet(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		buildTime   string
		wantRelease bool
		wantYear    int
	}{
		{"dev build", "dev", "", false, 0},
		{"release", "1.0.0", "2026-01-15T10:30:00Z", true, 2026},
		{"dirty", "1.0.0-dirty", "2026-01-15T10:30:00Z", false, 2026},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setBuild(t, tc.version, "abc1234", "main", tc.buildTime, "go1.26.0")

			info := Get()
			if info.Version != tc.version {
				t.Errorf("Version = %q, want %q", info.Version, tc.version)
			}
			if info.IsRelease != tc.wantRelease {
				t.Errorf("IsRelease = %v, want %v", info.IsRelease, tc.wantRelease)
			}
			if info.GoVersion != "go1.26.0" {
				t.Errorf("GoVersion = %q", info.GoVersion)
			}
			if info.BuildDate.IsZero() {
				t.Error("BuildDate should never be zero")
			}
			if tc.wantYear != 0 && info.BuildDate.Year() != tc.wantYear {
				t.Errorf("build year = %d, want %d", info.BuildDate.Year(), tc.wantYear)
			}
		})
	}
}

func TestGet_FallsBackToRuntimeGoVersion(t *testing.T) {
	setBuild(t, "dev", "abc1234", "", "", "")
	if got := Get().GoVersion; got == "" {
		t.Error("GoVersion should never be empty")
	}
}

func TestShort(t *testing.T) {
	setBuild(t, "1.0.0", "abc1234", "", "2026-01-01T00:00:00Z", "go1.26.0")
	if got := Short(); !strings.HasPrefix(got, "1.0.0-abc1234") {
		t.Errorf("Short() = %q, want prefix 1.0.0-abc1234", got)
	}
}

func TestFull(t *testing.T) {
	tests := []struct {
		name    string
		branch  string
		want    []string
		notWant string
	}{
		{"main branch hidden", "main", []string{"1.0.0", "abc1234", "built 2026-01-15T10:30:00Z"}, "main"},
		{"feature branch shown", "feature/stream-render", []string{"feature/stream-render"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setBuild(t, "1.0.0", "abc1234", tc.branch, "2026-01-15T10:30:00Z", "go1.26.0")
			fv := Full()
			for _, w := range tc.want {
				if !strings.Contains(fv, w) {
					t.Errorf("Full() = %q, missing %q", fv, w)
				}
			}
			if tc.notWant != "" && strings.Contains(fv, tc.notWant) {
				t.Errorf("Full() = %q, should not contain %q", fv, tc.notWant)
			}
		})
	}
}

func TestLine(t *testing.T) {
	setBuild(t, "1.2.0", "3f9c2a1", "main", "2026-01-02T15:04:05Z", "go1.26.0")

	line := Line("fanout")
	if !strings.HasPrefix(line, "fanout 1.2.0-3f9c2a1") {
		t.Errorf("Line() = %q", line)
	}
	if !strings.HasSuffix(line, "go1.26.0 "+runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Line() = %q, want go version and platform suffix", line)
	}
}
