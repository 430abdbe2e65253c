// Package xcursor creates cursors from the X cursor font.
// Glyph numbers are from https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xcursor

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	Hand2   = 60
	LeftPtr = 68
)

const fontName = "cursor"

// CreateCursor creates a white on black cursor for glyph.
func CreateCursor(x *xgb.Conn, glyph uint16) (xproto.Cursor, error) {
	fontID, err := xproto.NewFontId(x)
	if err != nil {
		return 0, err
	}

	if err := xproto.OpenFontChecked(x, fontID, uint16(len(fontName)), fontName).Check(); err != nil {
		return 0, err
	}
	defer xproto.CloseFont(x, fontID)

	cursorID, err := xproto.NewCursorId(x)
	if err != nil {
		return 0, err
	}

	// The mask glyph always follows the source glyph in the cursor font.
	if err := xproto.CreateGlyphCursorChecked(x, cursorID, fontID, fontID,
		glyph, glyph+1,
		0xffff, 0xffff, 0xffff,
		0, 0, 0).Check(); err != nil {
		return 0, err
	}

	return cursorID, nil
}
