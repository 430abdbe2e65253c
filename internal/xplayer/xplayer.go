package xplayer

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gen2brain/go-mpv"
	"github.com/jezek/xgb/xproto"
)

// DefaultNotifyDuration is how long on screen notifications stay visible.
const DefaultNotifyDuration = 5 * time.Second

var ErrPlayerClosed = errors.New("player closed")

type (
	CommandLoad struct {
		File string
	}
	CommandShowText struct {
		Text     string
		Duration time.Duration
	}
)

type Options struct {
	// HWDec is passed to mpv's hwdec option when set.
	HWDec string
}

// NewPlayer starts mpv rendering into the X window wid.
func NewPlayer(ctx context.Context, id string, wid xproto.Window, opts Options) (Player, error) {
	m := mpv.New()

	// Base options
	_ = m.SetOption("wid", mpv.FormatInt64, int64(wid))    // bind to x window
	_ = m.SetOptionString("input-vo-keyboard", "no")       // passthrough keyboard input to parent x window
	_ = m.SetOption("input-cursor", mpv.FormatFlag, false) // passthrough mouse input to parent x window
	_ = m.SetOption("osc", mpv.FormatFlag, false)          // don't render on screen ui
	_ = m.SetOption("force-window", mpv.FormatFlag, true)  // render empty window when no file-loaded
	_ = m.SetOption("idle", mpv.FormatFlag, true)          // keep window open when no file-loaded
	_ = m.SetOptionString("image-display-duration", "inf") // keep showing the image
	_ = m.SetOptionString("keep-open", "yes")              // don't unload the image when it ends
	_ = m.SetOption("panscan", mpv.FormatDouble, 1.0)      // fill the window like a background
	_ = m.SetOptionString("osd-align-y", "bottom")         // notifications at the bottom
	_ = m.SetOptionString("background", "color")           // plain background while loading
	_ = m.SetOptionString("audio", "no")                   // images only

	// Custom options
	if opts.HWDec != "" {
		_ = m.SetOptionString("hwdec", opts.HWDec)
	}

	_ = m.RequestLogMessages("info")

	if err := m.Initialize(); err != nil {
		return Player{}, err
	}

	p := Player{
		ID:       id,
		commandC: make(chan any),
		doneC:    make(chan struct{}),
		closeC:   make(chan struct{}),
	}

	go p.run(ctx, m)

	return p, nil
}

type Player struct {
	ID       string
	commandC chan any
	doneC    chan struct{}
	closeC   chan struct{}
}

func (p Player) Send(ctx context.Context, cmds ...any) error {
	for _, cmd := range cmds {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.doneC:
			return ErrPlayerClosed
		case p.commandC <- cmd:
		}
	}
	return nil
}

// Show loads the image at url.
func (p Player) Show(ctx context.Context, url string) error {
	return p.Send(ctx, CommandLoad{File: url})
}

// Notify shows text on top of the image for DefaultNotifyDuration.
func (p Player) Notify(ctx context.Context, text string) error {
	return p.Send(ctx, CommandShowText{Text: text, Duration: DefaultNotifyDuration})
}

func (p Player) Close(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.doneC:
		return nil
	case p.closeC <- struct{}{}:
		<-p.doneC
		return nil
	}
}

func (p Player) run(ctx context.Context, m *mpv.Mpv) {
	slog := slog.With("player-id", p.ID)

	defer close(p.doneC)
	defer m.TerminateDestroy()

	eventTicker := time.NewTicker(250 * time.Millisecond)
	defer eventTicker.Stop()

	file := NewState("")
	file.AddEffect(func() {
		if file.V == "" {
			if err := m.Command([]string{"stop"}); err != nil {
				slog.Error("Failed to stop", "error", err)
			}
			return
		}
		if err := m.Command([]string{"loadfile", file.V, "replace"}); err != nil {
			slog.Error("Failed to load file", "file", file.V, "error", err)
		}
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closeC:
			return
		case <-eventTicker.C:
		eventLoop:
			for {
				e := m.WaitEvent(0)
				if e.Error != nil {
					slog.Error("Failed to listen for events", "error", e.Error)
					break
				}

				switch e.EventID {
				case mpv.EventNone, mpv.EventShutdown:
					break eventLoop
				case mpv.EventLogMsg:
					msg := e.LogMessage()
					switch msg.Level {
					case "fatal", "error":
						slog.Error(msg.Text, "prefix", msg.Prefix)
					case "warn":
						slog.Warn(msg.Text, "prefix", msg.Prefix)
					case "info":
						slog.Debug(msg.Text, "prefix", msg.Prefix)
					}
				default:
					slog.Debug("MPV event", "event-id", e.EventID)
				}
			}
		case c := <-p.commandC:
			switch c := c.(type) {
			case CommandLoad:
				file.Update(c.File)
			case CommandShowText:
				duration := strconv.FormatInt(c.Duration.Milliseconds(), 10)
				if err := m.Command([]string{"show-text", c.Text, duration}); err != nil {
					slog.Error("Failed to show text", "error", err)
				}
			}
		}
	}
}
