package ptree

import (
	"strings"
	"unicode/utf8"
)

// Render draws a tree top-down as ASCII art. Every node is written above
// its children, which are connected to it by lines:
//
//	F
//	|
//	+--+--+
//	|  |  |
//	(  E  )
func Render(t *Tree) string {
	if t == nil || t.Len() == 0 {
		return ""
	}
	return renderNode(t, t.Root()).String()
}

const childPadding = 2

func renderNode(t *Tree, n int) *textBox {
	tb := &textBox{}
	tb.puts(0, 0, t.Label(n))
	children := t.Children(n)
	if len(children) == 0 {
		return tb
	}
	tb.vline(0, 1, 1)
	x, lastWidth := 0, 0
	for _, ch := range children {
		child := renderNode(t, ch)
		tb.vline(x, 2, 2)
		tb.paste(x, 4, child)
		lastWidth = child.width()
		x += lastWidth + childPadding
	}
	tb.hline(0, 2, x-lastWidth-childPadding+1)
	return tb
}

// --- Text boxes ------------------------------------------------------------

// Line segments crossing a cell.
const (
	lineH uint8 = 1 << iota
	lineV
)

// A cell holds a glyph and, on a separate layer, line segments. Lines are
// drawn over glyphs; writing a glyph removes lines.
type cell struct {
	glyph rune
	lines uint8
}

type textBox struct {
	rows [][]cell
}

func (tb *textBox) grow(x, y int) {
	for len(tb.rows) <= y {
		tb.rows = append(tb.rows, nil)
	}
	for len(tb.rows[y]) <= x {
		tb.rows[y] = append(tb.rows[y], cell{glyph: ' '})
	}
}

func (tb *textBox) puts(x, y int, s string) {
	for _, r := range s {
		tb.grow(x, y)
		tb.rows[y][x] = cell{glyph: r}
		x++
	}
}

func (tb *textBox) hline(x, y, w int) {
	for i := 0; i < w; i++ {
		tb.grow(x+i, y)
		tb.rows[y][x+i].lines |= lineH
	}
}

func (tb *textBox) vline(x, y, h int) {
	for i := 0; i < h; i++ {
		tb.grow(x, y+i)
		tb.rows[y+i][x].lines |= lineV
	}
}

func (tb *textBox) paste(x, y int, other *textBox) {
	for j, row := range other.rows {
		for i, c := range row {
			tb.grow(x+i, y+j)
			tb.rows[y+j][x+i] = c
		}
	}
}

func (tb *textBox) width() int {
	w := 0
	for _, row := range tb.rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (c cell) String() string {
	switch c.lines {
	case lineH:
		return "-"
	case lineV:
		return "|"
	case lineH | lineV:
		return "+"
	}
	return string(c.glyph)
}

// String composites both layers.
func (tb *textBox) String() string {
	lines := make([]string, len(tb.rows))
	for j, row := range tb.rows {
		var b strings.Builder
		b.Grow(len(row) * utf8.UTFMax)
		for _, c := range row {
			b.WriteString(c.String())
		}
		lines[j] = b.String()
	}
	return strings.Join(lines, "\n")
}
