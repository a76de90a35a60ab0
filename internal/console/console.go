// Package console implements the text buffer the harness copies stdin
// into: a fixed grid of symbols with a write cursor, newline scrolling
// and a row budget derived from the tallest active output.
package console

import (
	"errors"
	"strings"

	"vtcon/internal/font"
	"vtcon/internal/render"
	"vtcon/internal/video"
)

const (
	defaultCols = 80
	defaultRows = 24
)

// Buffer is an append-only console grid. It is exclusively owned by the
// coordinator and mutated only from reactor callbacks.
type Buffer struct {
	ff   *font.Factory
	cols int
	rows int
	// lines[y][x] holds the symbol at that cell; continuation cells of
	// wide symbols stay blank.
	lines [][]font.Symbol
	posX  int
	posY  int
}

// New creates a buffer with the default 80x24 grid.
func New(ff *font.Factory) (*Buffer, error) {
	if ff == nil {
		return nil, errors.New("console: nil font factory")
	}
	b := &Buffer{ff: ff, cols: defaultCols, rows: defaultRows}
	b.lines = newGrid(b.cols, b.rows)
	return b, nil
}

func newGrid(cols, rows int) [][]font.Symbol {
	g := make([][]font.Symbol, rows)
	for i := range g {
		g[i] = make([]font.Symbol, cols)
	}
	return g
}

// Write puts one symbol at the cursor and advances it by the symbol's
// cell width, wrapping at the right edge.
func (b *Buffer) Write(sym font.Symbol) {
	w := b.ff.Table().Width(sym)
	if b.posX+w > b.cols {
		b.Newline()
	}
	b.lines[b.posY][b.posX] = sym
	b.posX += w
}

// Newline moves the cursor to the start of the next row, scrolling the
// grid up one row at the bottom.
func (b *Buffer) Newline() {
	b.posX = 0
	if b.posY+1 < b.rows {
		b.posY++
		return
	}
	copy(b.lines, b.lines[1:])
	b.lines[b.rows-1] = make([]font.Symbol, b.cols)
}

// Resize adjusts the grid. Zero cols or rows keep the current value; a
// positive heightPx derives the row budget from the font cell height and
// overrides rows. Content is preserved with the cursor kept visible,
// clipping rows from the top when shrinking.
func (b *Buffer) Resize(cols, rows, heightPx int) {
	if cols <= 0 {
		cols = b.cols
	}
	if heightPx > 0 {
		_, ch := b.ff.Cell()
		rows = heightPx / ch
		if rows < 1 {
			rows = 1
		}
	}
	if rows <= 0 {
		rows = b.rows
	}
	if cols == b.cols && rows == b.rows {
		return
	}

	grid := newGrid(cols, rows)
	offset := 0
	if b.posY >= rows {
		offset = b.posY - rows + 1
	}
	for y := 0; y+offset < b.rows && y < rows; y++ {
		src := b.lines[y+offset]
		n := cols
		if n > b.cols {
			n = b.cols
		}
		copy(grid[y][:n], src[:n])
	}
	b.lines = grid
	b.cols = cols
	b.rows = rows
	b.posY -= offset
	if b.posX >= cols {
		b.posX = cols - 1
	}
}

// Map paints the whole grid onto scr through the renderer. The caller
// has already established scr as the render target; the buffer keeps no
// dirty state and repaints fully.
func (b *Buffer) Map(sh *render.Renderer, scr video.Screen) {
	w, h := scr.Size()
	tbl := b.ff.Table()
	for y := 0; y < b.rows && y < h; y++ {
		for x := 0; x < b.cols && x < w; x++ {
			sym := b.lines[y][x]
			if sym == font.Blank {
				continue
			}
			sh.DrawCell(scr, x, y, tbl.Rune(sym))
		}
	}
}

// Close releases the grid.
func (b *Buffer) Close() {
	b.lines = nil
	b.rows, b.cols = 0, 0
}

// Size returns the grid dimensions in cells.
func (b *Buffer) Size() (cols, rows int) {
	return b.cols, b.rows
}

// Cursor returns the write position.
func (b *Buffer) Cursor() (x, y int) {
	return b.posX, b.posY
}

// Lines renders the grid as right-trimmed strings, one per row.
func (b *Buffer) Lines() []string {
	tbl := b.ff.Table()
	out := make([]string, b.rows)
	for y := 0; y < b.rows; y++ {
		var sb strings.Builder
		for x := 0; x < b.cols; x++ {
			sym := b.lines[y][x]
			if sym == font.Blank {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(tbl.Rune(sym))
			}
		}
		out[y] = strings.TrimRight(sb.String(), " ")
	}
	return out
}
