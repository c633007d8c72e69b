// Package style holds the glyphs and colors masq prints in front of log lines
// and progress results.
package style

import "github.com/charmbracelet/lipgloss"

// Mark is a glyph with the color it is printed in. An empty Glyph prints the
// message alone.
type Mark struct {
	Glyph string
	Color lipgloss.Color
}

var (
	// Failed marks errors and files that could not be processed.
	Failed = Mark{Glyph: "✗", Color: lipgloss.Color("#D93025")}
	// Done marks files that were processed.
	Done = Mark{Glyph: "✓", Color: lipgloss.Color("#22A06B")}
	// Caution marks warnings such as a text edited after anonymization.
	Caution = Mark{Glyph: "!", Color: lipgloss.Color("#F59E0B")}
	// Detail marks debug output.
	Detail = Mark{Glyph: "●", Color: lipgloss.Color("#8B5CF6")}
	// Plain is used for informational lines.
	Plain = Mark{Color: lipgloss.Color("#667085")}
)

// Arrow leads each cause line of a pretty error.
const Arrow = "→"
