package xwm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-wallpaper/internal/placement"
	"github.com/ItsNotGoodName/x-wallpaper/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	// TitleBarHeight is the height of the custom title bar in pixels.
	TitleBarHeight = 32

	iconicState = 3

	netWMStateRemove = 0
	netWMStateAdd    = 1
	sourceNormalApp  = 1

	netWMMoveResizeMove = 8

	motifHintsDecorations = 1 << 1

	sizeHintUSPosition = 1 << 0
	sizeHintUSSize     = 1 << 1
	sizeHintPPosition  = 1 << 2
	sizeHintPSize      = 1 << 3
)

// Window is an undecorated top level X window with a custom title bar and a
// content window the renderer draws into.
type Window struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	atoms  *atoms

	WID      xproto.Window
	TitleBar xproto.Window
	Content  xproto.Window
	gc       xproto.Gcontext
	width    uint16
	height   uint16
}

// CreateWindow creates the window without mapping it.
func CreateWindow(conn *xgb.Conn, title string) (*Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	cursor, err := xcursor.CreateCursor(conn, xcursor.LeftPtr)
	if err != nil {
		return nil, err
	}

	w := &Window{
		conn:   conn,
		screen: screen,
		atoms:  newAtoms(conn),
		width:  placement.DefaultWidth,
		height: placement.DefaultHeight,
	}

	w.WID, err = xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		w.WID, screen.Root,
		0, 0, w.width, w.height, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		[]uint32{
			screen.BlackPixel, // 1
			xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange, // 2
			uint32(cursor), // 3
		}).Check(); err != nil {
		return nil, err
	}

	w.Content, err = createChild(conn, w.WID, 0, TitleBarHeight, w.width, w.height-TitleBarHeight, 0)
	if err != nil {
		w.destroy()
		return nil, err
	}

	w.TitleBar, err = createChild(conn, w.WID, 0, 0, w.width, TitleBarHeight,
		xproto.EventMaskExposure|xproto.EventMaskButtonPress)
	if err != nil {
		w.destroy()
		return nil, err
	}

	if hand, err := xcursor.CreateCursor(conn, xcursor.Hand2); err == nil {
		xproto.ChangeWindowAttributes(conn, w.TitleBar, xproto.CwCursor, []uint32{uint32(hand)})
	}

	w.gc, err = xproto.NewGcontextId(conn)
	if err != nil {
		w.destroy()
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, w.gc, xproto.Drawable(w.TitleBar),
		xproto.GcForeground|xproto.GcLineWidth|xproto.GcGraphicsExposures,
		[]uint32{colorTitleBar, 1, 0}).Check(); err != nil {
		w.destroy()
		return nil, err
	}

	if err := w.setProperties(title); err != nil {
		w.destroy()
		return nil, err
	}

	return w, nil
}

func createChild(conn *xgb.Conn, parent xproto.Window, x, y int16, width, height uint16, eventMask uint32) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.CreateWindowChecked(conn, xproto.WindowClassCopyFromParent,
		wid, parent,
		x, y, max(width, 1), max(height, 1), 0,
		xproto.WindowClassInputOutput, xproto.WindowClassCopyFromParent,
		xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		return 0, err
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return 0, err
	}

	return wid, nil
}

func (w *Window) setProperties(title string) error {
	atoms, err := w.atoms.must(atomWMProtocols, atomWMDeleteWindow, atomUTF8String, atomNetWMName, atomMotifWMHints)
	if err != nil {
		return err
	}
	wmProtocols, wmDeleteWindow, utf8String, netWMName, motifWMHints := atoms[0], atoms[1], atoms[2], atoms[3], atoms[4]

	if err := xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.WID,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title)).Check(); err != nil {
		return err
	}

	if err := xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.WID,
		netWMName, utf8String, 8, uint32(len(title)), []byte(title)).Check(); err != nil {
		return err
	}

	if err := xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.WID,
		wmProtocols, xproto.AtomAtom, 32, 1, put32(uint32(wmDeleteWindow))).Check(); err != nil {
		return err
	}

	// flags, functions, decorations, input mode, status
	return xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.WID,
		motifWMHints, motifWMHints, 32, 5, put32(motifHintsDecorations, 0, 0, 0, 0)).Check()
}

func (w *Window) String() string {
	return fmt.Sprintf("xwm.Window(wid=%d)", w.WID)
}

func (w *Window) Map() error {
	return xproto.MapWindowChecked(w.conn, w.WID).Check()
}

func (w *Window) destroy() {
	xproto.DestroyWindow(w.conn, w.WID)
}

// Close destroys the window.
func (w *Window) Close() error {
	xproto.FreeGC(w.conn, w.gc)
	return xproto.DestroyWindowChecked(w.conn, w.WID).Check()
}

// ScreenSize returns the size of the default screen in pixels.
func (w *Window) ScreenSize() (width, height int) {
	return int(w.screen.WidthInPixels), int(w.screen.HeightInPixels)
}

// DPI returns the X resource database DPI, falling back to the physical screen size.
func (w *Window) DPI() float64 {
	reply, err := xproto.GetProperty(w.conn, false, w.screen.Root,
		xproto.AtomResourceManager, xproto.AtomString, 0, 1<<16).Reply()
	if err == nil && reply.Format == 8 {
		if dpi, ok := ParseXftDPI(string(reply.Value)); ok {
			return dpi
		}
	}

	return PhysicalDPI(w.screen.WidthInPixels, w.screen.WidthInMillimeters)
}

// Bounds returns the window rectangle in root coordinates.
func (w *Window) Bounds() (placement.Bounds, error) {
	geom, err := xproto.GetGeometry(w.conn, xproto.Drawable(w.WID)).Reply()
	if err != nil {
		return placement.Bounds{}, err
	}

	pos, err := xproto.TranslateCoordinates(w.conn, w.WID, w.screen.Root, 0, 0).Reply()
	if err != nil {
		return placement.Bounds{}, err
	}

	return placement.NewBounds(int(pos.DstX), int(pos.DstY), int(geom.Width), int(geom.Height)), nil
}

func (w *Window) ShowState() (placement.ShowState, error) {
	atoms, err := w.atoms.must(atomNetWMState, atomNetWMStateHidden, atomNetWMStateMaximizedV, atomNetWMStateMaximizedH)
	if err != nil {
		return placement.ShowStateNormal, err
	}
	netWMState, hidden, maxV, maxH := atoms[0], atoms[1], atoms[2], atoms[3]

	reply, err := xproto.GetProperty(w.conn, false, w.WID, netWMState, xproto.AtomAtom, 0, 64).Reply()
	if err != nil {
		return placement.ShowStateNormal, err
	}

	var isHidden, isMaxV, isMaxH bool
	for _, atom := range get32(reply.Value) {
		switch xproto.Atom(atom) {
		case hidden:
			isHidden = true
		case maxV:
			isMaxV = true
		case maxH:
			isMaxH = true
		}
	}

	switch {
	case isHidden:
		return placement.ShowStateMinimized, nil
	case isMaxV && isMaxH:
		return placement.ShowStateMaximized, nil
	default:
		return placement.ShowStateNormal, nil
	}
}

func (w *Window) Placement() (placement.Placement, error) {
	state, err := w.ShowState()
	if err != nil {
		return placement.Placement{}, err
	}

	bounds, err := w.Bounds()
	if err != nil {
		return placement.Placement{}, err
	}

	return placement.Placement{
		ShowState: state,
		Bounds:    bounds,
	}, nil
}

// SetPlacement moves and resizes the window and then applies the show state.
func (w *Window) SetPlacement(p placement.Placement) error {
	b := p.Bounds
	width, height := uint32(max(b.Width(), 1)), uint32(max(b.Height(), 1))

	// WM_SIZE_HINTS is 18 CARD32 fields: flags, x, y, width, height, ...
	hints := make([]uint32, 18)
	hints[0] = sizeHintUSPosition | sizeHintUSSize | sizeHintPPosition | sizeHintPSize
	hints[1] = uint32(int32(b.Left))
	hints[2] = uint32(int32(b.Top))
	hints[3] = width
	hints[4] = height
	if err := xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.WID,
		xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32, uint32(len(hints)), put32(hints...)).Check(); err != nil {
		return err
	}

	if err := xproto.ConfigureWindowChecked(w.conn, w.WID,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(b.Left)), uint32(int32(b.Top)), width, height}).Check(); err != nil {
		return err
	}

	if err := w.Layout(uint16(width), uint16(height)); err != nil {
		return err
	}

	switch p.ShowState {
	case placement.ShowStateMaximized:
		return w.Maximize()
	case placement.ShowStateMinimized:
		return w.Minimize()
	default:
		return nil
	}
}

// Layout resizes the title bar and content windows to fill a window of the given size.
func (w *Window) Layout(width, height uint16) error {
	w.width, w.height = width, height

	contentHeight := uint16(1)
	if height > TitleBarHeight {
		contentHeight = height - TitleBarHeight
	}

	if err := xproto.ConfigureWindowChecked(w.conn, w.TitleBar,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(max(width, 1)), TitleBarHeight}).Check(); err != nil {
		return err
	}

	return xproto.ConfigureWindowChecked(w.conn, w.Content,
		xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{TitleBarHeight, uint32(max(width, 1)), uint32(contentHeight)}).Check()
}

// Minimize asks the window manager to iconify the window.
func (w *Window) Minimize() error {
	atom, err := w.atoms.get(atomWMChangeState)
	if err != nil {
		return err
	}
	return w.sendRoot(atom, iconicState, 0, 0, 0, 0)
}

func (w *Window) Maximize() error {
	return w.setMaximized(netWMStateAdd)
}

func (w *Window) Restore() error {
	return w.setMaximized(netWMStateRemove)
}

func (w *Window) setMaximized(action uint32) error {
	atoms, err := w.atoms.must(atomNetWMState, atomNetWMStateMaximizedV, atomNetWMStateMaximizedH)
	if err != nil {
		return err
	}
	return w.sendRoot(atoms[0], action, uint32(atoms[1]), uint32(atoms[2]), sourceNormalApp, 0)
}

// BeginMove hands an interactive move of the window to the window manager.
func (w *Window) BeginMove(rootX, rootY int16, button xproto.Button, time xproto.Timestamp) error {
	atom, err := w.atoms.get(atomNetWMMoveResize)
	if err != nil {
		return err
	}

	xproto.UngrabPointer(w.conn, time)

	return w.sendRoot(atom, uint32(int32(rootX)), uint32(int32(rootY)), netWMMoveResizeMove, uint32(button), sourceNormalApp)
}

// IsDeleteWindow reports whether ev is the window manager asking the window to close.
func (w *Window) IsDeleteWindow(ev xproto.ClientMessageEvent) bool {
	if ev.Window != w.WID || ev.Format != 32 {
		return false
	}

	atoms, err := w.atoms.must(atomWMProtocols, atomWMDeleteWindow)
	if err != nil {
		return false
	}

	data := ev.Data.Data32
	return ev.Type == atoms[0] && len(data) > 0 && xproto.Atom(data[0]) == atoms[1]
}

// sendRoot posts a client message about the window to the root window without waiting for a reply.
func (w *Window) sendRoot(messageType xproto.Atom, data ...uint32) error {
	data32 := make([]uint32, 5)
	copy(data32, data)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.WID,
		Type:   messageType,
		Data:   xproto.ClientMessageDataUnionData32New(data32),
	}

	xproto.SendEvent(w.conn, false, w.screen.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()))

	return nil
}

func put32(values ...uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}

func get32(buf []byte) []uint32 {
	values := make([]uint32, 0, len(buf)/4)
	for i := 0; i+4 <= len(buf); i += 4 {
		values = append(values, xgb.Get32(buf[i:]))
	}
	return values
}
