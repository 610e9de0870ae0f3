package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is the word-wrap column used when none is given.
const DefaultWidth = 80

// StyleAuto picks a dark or light style from the terminal background.
const StyleAuto = "auto"

// Renderer renders markdown for a terminal.
type Renderer struct {
	tr *glamour.TermRenderer
}

// New creates a renderer wrapping at width columns. style is StyleAuto or
// one of glamour's standard style names ("dark", "light", "notty", ...).
func New(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != StyleAuto {
		styleOpt = glamour.WithStandardStyle(style)
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr}, nil
}

// Render returns md styled for the terminal, or md itself when rendering
// fails. A nil Renderer passes text through.
func (r *Renderer) Render(md string) string {
	if r == nil || r.tr == nil || strings.TrimSpace(md) == "" {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
