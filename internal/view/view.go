// Package view draws a widget tree as terminal text.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sdui-go/interpreter/internal/widget"
)

// Glyphs for the card image region.
const (
	GlyphLoading     = "◌ loading image…"
	GlyphPlaceholder = "▨"
	GlyphImage       = "▣"
)

var (
	cyan        = lipgloss.Color("6")
	yellow      = lipgloss.Color("3")
	red         = lipgloss.Color("1")
	brightWhite = lipgloss.Color("15")
	brightBlack = lipgloss.Color("8")

	titleStyle   = lipgloss.NewStyle().Foreground(brightWhite).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(brightBlack)
	valueStyle   = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(brightBlack).Padding(0, 1)
	focusBox     = boxStyle.BorderForeground(cyan)
	unknownBox   = boxStyle.BorderForeground(red)
	buttonStyle  = lipgloss.NewStyle().Foreground(brightWhite).Padding(0, 1)
	focusButton  = buttonStyle.Reverse(true)
	dotOn        = lipgloss.NewStyle().Foreground(cyan).Render("●")
	dotOff       = dimStyle.Render("○")
	defaultWidth = 80
)

// Renderer draws widgets within a fixed terminal width.
type Renderer struct {
	Width int
}

// New returns a renderer for the given terminal width.
func New(width int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Renderer{Width: width}
}

// Render draws the root widgets top to bottom.
func (r *Renderer) Render(ws []*widget.Widget, st State) string {
	width := r.Width
	if width <= 0 {
		width = defaultWidth
	}
	blocks := make([]string, 0, len(ws))
	for _, w := range ws {
		blocks = append(blocks, r.widget(w, width, st))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) widget(w *widget.Widget, width int, st State) string {
	if w == nil {
		return ""
	}
	switch w.Kind {
	case widget.KindCard:
		return r.card(w, width, st)
	case widget.KindStat:
		return r.stat(w, width, st)
	case widget.KindAction:
		return r.action(w, st)
	case widget.KindCarousel:
		return r.carousel(w, width, st)
	case widget.KindHScroll:
		return r.hscroll(w, width, st)
	default:
		return r.unknown(w, width, st)
	}
}

// inner returns the text width inside a bordered, padded box of width.
func inner(width int) int {
	if n := width - 4; n > 1 {
		return n
	}
	return 1
}

func box(width int, focused bool) lipgloss.Style {
	s := boxStyle
	if focused {
		s = focusBox
	}
	return s.Width(width - 2)
}

func (r *Renderer) card(w *widget.Widget, width int, st State) string {
	lines := []string{imageLine(w.Image, inner(width))}
	if w.Title != "" {
		lines = append(lines, titleStyle.Render(Clip(w.Title, inner(width))))
	}
	if w.Body != "" {
		lines = append(lines, w.Body)
	}
	return box(width, st.Focus == w.Key).Render(strings.Join(lines, "\n"))
}

func imageLine(img *widget.Image, width int) string {
	if img == nil {
		return dimStyle.Render(GlyphPlaceholder)
	}
	switch img.State {
	case widget.ImageLoaded:
		return Clip(fmt.Sprintf("%s %d×%d %s", GlyphImage, img.Width, img.Height, img.Format), width)
	case widget.ImageFailed:
		return dimStyle.Render(GlyphPlaceholder)
	default:
		return dimStyle.Render(Clip(GlyphLoading, width))
	}
}

func (r *Renderer) stat(w *widget.Widget, width int, st State) string {
	n := inner(width)
	label := dimStyle.Render(Clip(w.Label, n))
	value := valueStyle.Render(Clip(w.Value, n))
	return box(width, st.Focus == w.Key).Render(label + "\n" + value)
}

func (r *Renderer) action(w *widget.Widget, st State) string {
	s := buttonStyle
	if st.Focus == w.Key {
		s = focusButton
	}
	return s.Render("[ " + w.Title + " ]")
}

func (r *Renderer) unknown(w *widget.Widget, width int, st State) string {
	text := warnStyle.Render("⚠ " + w.Title)
	if w.Type != "" {
		text += "\n" + dimStyle.Render(Clip("type: "+w.Type, inner(width)))
	}
	return unknownBox.Width(width - 2).Render(text)
}

func (r *Renderer) header(w *widget.Widget, st State) string {
	title := w.Title
	if title == "" {
		title = string(w.Kind)
	}
	if st.Focus == w.Key {
		return headerStyle.Reverse(true).Render(title)
	}
	return headerStyle.Render(title)
}

func (r *Renderer) carousel(w *widget.Widget, width int, st State) string {
	head := r.header(w, st)
	if len(w.Children) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, head, dimStyle.Render("(empty)"))
	}
	page := st.Page(w.Key, len(w.Children))
	body := r.widget(w.Children[page], width, st)

	dots := make([]string, len(w.Children))
	for i := range w.Children {
		dots[i] = dotOff
		if i == page {
			dots[i] = dotOn
		}
	}
	nav := strings.Join(dots, " ") + dimStyle.Render(fmt.Sprintf("  %d/%d", page+1, len(w.Children)))
	return lipgloss.JoinVertical(lipgloss.Left, head, body, nav)
}

func (r *Renderer) hscroll(w *widget.Widget, width int, st State) string {
	head := r.header(w, st)
	if len(w.Children) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, head, dimStyle.Render("(empty)"))
	}
	offset := st.Offset(w.Key, len(w.Children))

	var parts []string
	used := 0
	if offset > 0 {
		parts = append(parts, dimStyle.Render("‹"))
		used += 2
	}
	end := offset
	for i := offset; i < len(w.Children); i++ {
		slot := w.Children[i].Width
		if slot <= 0 {
			slot = width
		}
		// Always show at least one slot; the rest only when it fits.
		if i > offset && used+slot+2 > width {
			break
		}
		parts = append(parts, r.widget(w.Children[i], slot, st))
		used += slot + 1
		end = i + 1
	}
	if end < len(w.Children) {
		parts = append(parts, dimStyle.Render("›"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, lipgloss.JoinHorizontal(lipgloss.Top, spaced(parts)...))
}

func spaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

// Clip cuts s to one line no wider than width cells.
func Clip(s string, width int) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
