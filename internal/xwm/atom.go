package xwm

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	atomWMProtocols          = "WM_PROTOCOLS"
	atomWMDeleteWindow       = "WM_DELETE_WINDOW"
	atomWMChangeState        = "WM_CHANGE_STATE"
	atomUTF8String           = "UTF8_STRING"
	atomNetWMName            = "_NET_WM_NAME"
	atomNetWMState           = "_NET_WM_STATE"
	atomNetWMStateHidden     = "_NET_WM_STATE_HIDDEN"
	atomNetWMStateMaximizedV = "_NET_WM_STATE_MAXIMIZED_VERT"
	atomNetWMStateMaximizedH = "_NET_WM_STATE_MAXIMIZED_HORZ"
	atomNetWMMoveResize      = "_NET_WM_MOVERESIZE"
	atomMotifWMHints         = "_MOTIF_WM_HINTS"
)

type atoms struct {
	conn  *xgb.Conn
	mu    sync.Mutex
	cache map[string]xproto.Atom
}

func newAtoms(conn *xgb.Conn) *atoms {
	return &atoms{
		conn:  conn,
		cache: make(map[string]xproto.Atom),
	}
}

func (a *atoms) get(name string) (xproto.Atom, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if atom, ok := a.cache[name]; ok {
		return atom, nil
	}

	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}

	a.cache[name] = reply.Atom
	return reply.Atom, nil
}

func (a *atoms) must(names ...string) ([]xproto.Atom, error) {
	out := make([]xproto.Atom, len(names))
	for i, name := range names {
		atom, err := a.get(name)
		if err != nil {
			return nil, err
		}
		out[i] = atom
	}
	return out, nil
}
