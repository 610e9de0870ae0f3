package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r, err := New(40, "notty")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"heading", "# Bubble sort\n\nSwap adjacent items.", []string{"Bubble sort", "Swap adjacent items."}},
		{"list", "- planes\n- trains", []string{"planes", "trains"}},
		{"emphasis", "a **bold** claim", []string{"bold", "claim"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Render(tc.in)
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render(%q) = %q, missing %q", tc.in, got, w)
				}
			}
		})
	}
}

func TestRender_PassThrough(t *testing.T) {
	var nilRenderer *Renderer
	if got := nilRenderer.Render("**x**"); got != "**x**" {
		t.Errorf("nil renderer changed text: %q", got)
	}

	r, err := New(0, StyleAuto)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := r.Render("   "); got != "   " {
		t.Errorf("blank input changed: %q", got)
	}
}

func TestNew_UnknownStyle(t *testing.T) {
	if _, err := New(80, "no-such-style"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
}
