// Package render holds the paint state shared by every draw pass. It is
// the rendering-backend handle of the harness: acquired once at startup
// and kept for the coordinator's whole lifetime.
package render

import (
	"github.com/gdamore/tcell/v2"

	"vtcon/internal/video"
)

// Renderer paints console cells onto a scan-out screen with a fixed
// style.
type Renderer struct {
	style tcell.Style
}

// NewRenderer creates a renderer with the default console style.
func NewRenderer() (*Renderer, error) {
	style := tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorBlack)
	return &Renderer{style: style}, nil
}

// Viewport prepares scr as the current render target by clearing it to
// the background style.
func (r *Renderer) Viewport(scr video.Screen) {
	w, h := scr.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			scr.SetCell(x, y, ' ', r.style)
		}
	}
}

// DrawCell paints one character cell.
func (r *Renderer) DrawCell(scr video.Screen, x, y int, ch rune) {
	scr.SetCell(x, y, ch, r.style)
}

// Close releases the renderer.
func (r *Renderer) Close() {}
