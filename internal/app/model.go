package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ItsNotGoodName/x-wallpaper/internal/bus"
	"github.com/ItsNotGoodName/x-wallpaper/internal/chrome"
	"github.com/ItsNotGoodName/x-wallpaper/internal/placement"
	"github.com/ItsNotGoodName/x-wallpaper/internal/wallpaper"
	"github.com/ItsNotGoodName/x-wallpaper/internal/xwm"
	"github.com/jezek/xgb/xproto"
)

// DefaultRefreshTimeout bounds a single wallpaper fetch.
const DefaultRefreshTimeout = 30 * time.Second

// Window is the native window the model drives.
type Window interface {
	chrome.Window
	Map() error
	ScreenSize() (width, height int)
	DPI() float64
	Bounds() (placement.Bounds, error)
	SetPlacement(p placement.Placement) error
	Layout(width, height uint16) error
	Width() uint16
	DrawTitleBar(maximized bool) error
	BeginMove(rootX, rootY int16, button xproto.Button, time xproto.Timestamp) error
	IsDeleteWindow(ev xproto.ClientMessageEvent) bool
}

// Display renders the wallpaper and shows notifications on top of it.
type Display interface {
	Show(ctx context.Context, url string) error
	Notify(ctx context.Context, text string) error
}

type (
	changeWallpaperMsg struct{}
	currentWallpaperMsg struct {
		replyC chan<- *wallpaper.Info
	}
	refreshResultMsg struct {
		showError bool
		info      *wallpaper.Info
		err       error
	}
)

type Model struct {
	Window         Window
	Display        Display
	Settings       placement.Settings
	Fetcher        wallpaper.Fetcher
	Bus            *bus.Bus
	RefreshTimeout time.Duration

	WID      xproto.Window
	TitleBar xproto.Window

	Wallpaper *wallpaper.Info
	Normal    placement.Bounds
	Maximized bool

	refreshing       bool
	refreshPending   bool
	pendingShowError bool
	closed           bool
}

func (m Model) Init(ctx context.Context) (xwm.Model, xwm.Cmd) {
	screenWidth, screenHeight := m.Window.ScreenSize()
	dpi := m.Window.DPI()

	m.Normal = placement.Initial(placement.Load(m.Settings), screenWidth, screenHeight, dpi)
	slog.Debug("Initial window bounds", "bounds", m.Normal.String(), "dpi", dpi)

	if err := m.Window.SetPlacement(placement.Placement{
		ShowState: placement.ShowStateNormal,
		Bounds:    m.Normal,
	}); err != nil {
		return m, xwm.Error(fmt.Errorf("set window placement: %w", err))
	}

	if err := m.Window.Map(); err != nil {
		return m, xwm.Error(fmt.Errorf("map window: %w", err))
	}

	return m.refresh(false)
}

func (m Model) Update(ctx context.Context, msg xwm.Msg) (xwm.Model, xwm.Cmd) {
	switch msg := msg.(type) {
	case changeWallpaperMsg:
		return m.refresh(true)
	case currentWallpaperMsg:
		var reply *wallpaper.Info
		if m.Wallpaper != nil {
			info := *m.Wallpaper
			reply = &info
		}
		msg.replyC <- reply
		return m, nil
	case refreshResultMsg:
		return m.refreshed(ctx, msg)
	case xproto.ConfigureNotifyEvent:
		if msg.Window != m.WID {
			return m, nil
		}

		if err := m.Window.Layout(msg.Width, msg.Height); err != nil {
			slog.Warn("Failed to layout window", "error", err)
		}

		return m.sync(), nil
	case xproto.PropertyNotifyEvent:
		if msg.Window != m.WID {
			return m, nil
		}

		return m.sync(), nil
	case xproto.ExposeEvent:
		if msg.Window == m.TitleBar && msg.Count == 0 {
			m.draw()
		}

		return m, nil
	case xproto.ButtonPressEvent:
		if msg.Event != m.TitleBar || msg.Detail != xproto.ButtonIndex1 {
			return m, nil
		}

		zone := chrome.HitTest(chrome.Offset(int(m.Window.Width()), int(msg.EventX)))
		slog.Debug("Title bar pressed", "x", msg.EventX, "zone", zone.String())

		switch zone {
		case chrome.ZoneNone:
			if err := m.Window.BeginMove(msg.RootX, msg.RootY, msg.Detail, msg.Time); err != nil {
				slog.Warn("Failed to move window", "error", err)
			}
			return m, nil
		case chrome.ZoneClose:
			slog.Debug("exit: close button pressed")
			return m.close()
		default:
			if err := chrome.Apply(m.Window, zone); err != nil {
				slog.Error("Failed to apply window command", "zone", zone.String(), "error", err)
			}
			return m, nil
		}
	case xproto.ClientMessageEvent:
		if !m.Window.IsDeleteWindow(msg) {
			return m, nil
		}

		slog.Debug("exit: delete window requested")
		return m.close()
	case xproto.DestroyNotifyEvent:
		if msg.Window != m.WID {
			return m, nil
		}

		// The window is already gone so the last tracked bounds are saved.
		slog.Debug("exit: destroy notify event")
		return m.save(), xwm.Quit
	default:
		return m, nil
	}
}

// refresh starts a fetch or, when one is in flight, queues a single follow up.
func (m Model) refresh(showError bool) (Model, xwm.Cmd) {
	if m.refreshing {
		m.refreshPending = true
		m.pendingShowError = m.pendingShowError || showError
		return m, nil
	}

	afterID := 0
	if m.Wallpaper != nil {
		afterID = m.Wallpaper.ID
	}

	m.refreshing = true
	fetcher, timeout := m.Fetcher, m.RefreshTimeout
	return m, func(ctx context.Context) xwm.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		info, err := wallpaper.Next(ctx, fetcher, afterID)
		return refreshResultMsg{showError: showError, info: info, err: err}
	}
}

func (m Model) refreshed(ctx context.Context, msg refreshResultMsg) (Model, xwm.Cmd) {
	m.refreshing = false

	err := msg.err
	if err == nil && msg.info != nil {
		if showErr := m.Display.Show(ctx, msg.info.URL); showErr != nil {
			err = fmt.Errorf("show wallpaper: %w", showErr)
		} else {
			m.Wallpaper = msg.info
			slog.Info("Wallpaper changed", "id", msg.info.ID, "url", msg.info.URL)
			bus.Publish(ctx, m.Bus, wallpaper.Changed{Info: *msg.info})
		}
	}

	if err != nil {
		slog.Error("Failed to refresh wallpaper", "error", err)
		if msg.showError {
			if notifyErr := m.Display.Notify(ctx, "Failed to refresh wallpaper: "+err.Error()); notifyErr != nil {
				slog.Warn("Failed to show notification", "error", notifyErr)
			}
			bus.Publish(ctx, m.Bus, wallpaper.RefreshFailed{Error: err.Error()})
		}
	}

	if m.refreshPending {
		showError := m.pendingShowError
		m.refreshPending = false
		m.pendingShowError = false
		return m.refresh(showError)
	}

	return m, nil
}

// sync reads the show state and remembers the bounds while the window is normal.
func (m Model) sync() Model {
	state, err := m.Window.ShowState()
	if err != nil {
		slog.Warn("Failed to get window state", "error", err)
		return m
	}

	if state == placement.ShowStateNormal {
		bounds, err := m.Window.Bounds()
		if err != nil {
			slog.Warn("Failed to get window bounds", "error", err)
		} else if !bounds.Empty() {
			m.Normal = bounds
		}
	}

	if maximized := state == placement.ShowStateMaximized; maximized != m.Maximized {
		m.Maximized = maximized
		m.draw()
	}

	return m
}

func (m Model) draw() {
	if err := m.Window.DrawTitleBar(m.Maximized); err != nil {
		slog.Warn("Failed to draw title bar", "error", err)
	}
}

func (m Model) save() Model {
	if m.closed {
		return m
	}
	m.closed = true

	if err := placement.Save(m.Settings, m.Normal); err != nil {
		slog.Error("Failed to save window placement", "error", err)
	} else {
		slog.Debug("Saved window placement", "bounds", m.Normal.String())
	}

	return m
}

func (m Model) close() (Model, xwm.Cmd) {
	if !m.closed {
		m = m.sync()
	}
	m = m.save()

	if err := m.Window.Close(); err != nil {
		slog.Error("Failed to close window", "error", err)
	}

	return m, xwm.Quit
}
