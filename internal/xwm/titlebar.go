package xwm

import (
	"github.com/ItsNotGoodName/x-wallpaper/internal/chrome"
	"github.com/jezek/xgb/xproto"
)

// Colors assume a TrueColor visual.
const (
	colorTitleBar = 0x202020
	colorGlyph    = 0xe0e0e0
	colorClose    = 0xc42b1c

	glyphSize = 10
)

// DrawTitleBar paints the title bar and the minimize, maximize/restore and close buttons.
func (w *Window) DrawTitleBar(maximized bool) error {
	d := xproto.Drawable(w.TitleBar)
	width := int16(w.width)
	left := width - chrome.Width

	w.fill(d, colorTitleBar, xproto.Rectangle{X: 0, Y: 0, Width: w.width, Height: TitleBarHeight})
	w.fill(d, colorClose, xproto.Rectangle{X: left + 2*chrome.ButtonWidth, Y: 0, Width: chrome.ButtonWidth, Height: TitleBarHeight})

	xproto.ChangeGC(w.conn, w.gc, xproto.GcForeground, []uint32{colorGlyph})

	cy := int16(TitleBarHeight / 2)
	half := int16(glyphSize / 2)

	// Minimize
	cx := left + chrome.ButtonWidth/2
	xproto.PolySegment(w.conn, d, w.gc, []xproto.Segment{
		{X1: cx - half, Y1: cy, X2: cx + half, Y2: cy},
	})

	// Maximize or restore
	cx = left + chrome.ButtonWidth + chrome.ButtonWidth/2
	if maximized {
		xproto.PolyRectangle(w.conn, d, w.gc, []xproto.Rectangle{
			{X: cx - half, Y: cy - half + 2, Width: glyphSize - 2, Height: glyphSize - 2},
		})
		xproto.PolySegment(w.conn, d, w.gc, []xproto.Segment{
			{X1: cx - half + 2, Y1: cy - half, X2: cx + half, Y2: cy - half},
			{X1: cx + half, Y1: cy - half, X2: cx + half, Y2: cy + half - 2},
		})
	} else {
		xproto.PolyRectangle(w.conn, d, w.gc, []xproto.Rectangle{
			{X: cx - half, Y: cy - half, Width: glyphSize, Height: glyphSize},
		})
	}

	// Close
	cx = left + 2*chrome.ButtonWidth + chrome.ButtonWidth/2
	xproto.PolySegment(w.conn, d, w.gc, []xproto.Segment{
		{X1: cx - half, Y1: cy - half, X2: cx + half, Y2: cy + half},
		{X1: cx - half, Y1: cy + half, X2: cx + half, Y2: cy - half},
	})

	return nil
}

func (w *Window) fill(d xproto.Drawable, color uint32, rect xproto.Rectangle) {
	xproto.ChangeGC(w.conn, w.gc, xproto.GcForeground, []uint32{color})
	xproto.PolyFillRectangle(w.conn, d, w.gc, []xproto.Rectangle{rect})
}

// Width returns the last laid out window width.
func (w *Window) Width() uint16 {
	return w.width
}
