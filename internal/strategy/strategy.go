// Package strategy registers the built-in component strategies with
// registry.Default. Import it for side effects.
package strategy

import "strings"

// Built-in component type tags.
const (
	TypeCard     = "planetCard"
	TypeStat     = "galaxyStats"
	TypeAction   = "exploreButton"
	TypeCarousel = "carousel"
	TypeHScroll  = "hscroll"
)

// DefaultActionTitle labels an action component that has no title.
const DefaultActionTitle = "Explore"

// firstLine clips s to its first line.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
