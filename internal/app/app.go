// Package app runs the wallpaper window.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ItsNotGoodName/x-wallpaper/internal/bus"
	"github.com/ItsNotGoodName/x-wallpaper/internal/placement"
	"github.com/ItsNotGoodName/x-wallpaper/internal/wallpaper"
	"github.com/ItsNotGoodName/x-wallpaper/internal/xplayer"
	"github.com/ItsNotGoodName/x-wallpaper/internal/xwm"
	"github.com/jezek/xgb"
)

const Title = "x-wallpaper"

// Register routes wallpaper messages on b to program until the returned
// function is called.
func Register(b *bus.Bus, program *xwm.Program) func() {
	unsubscribe := bus.Subscribe(b, "window", func(ctx context.Context, _ wallpaper.ChangeWallpaper) error {
		return program.Send(ctx, changeWallpaperMsg{})
	})

	unhandle := bus.Handle(b, "window", func(ctx context.Context, _ wallpaper.CurrentRequest) (*wallpaper.Info, error) {
		replyC := make(chan *wallpaper.Info, 1)
		if err := program.Send(ctx, currentWallpaperMsg{replyC: replyC}); err != nil {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-program.Done():
			return nil, xwm.ErrProgramClosed
		case info := <-replyC:
			return info, nil
		}
	})

	return func() {
		unsubscribe()
		unhandle()
	}
}

type Options struct {
	Settings       placement.Settings
	Fetcher        wallpaper.Fetcher
	Bus            *bus.Bus
	RefreshTimeout time.Duration
	HWDec          string
}

// Run shows the window on conn until it is closed or ctx is done.
func Run(ctx context.Context, conn *xgb.Conn, opts Options) error {
	window, err := xwm.CreateWindow(conn, Title)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	player, err := xplayer.NewPlayer(ctx, window.String(), window.Content, xplayer.Options{
		HWDec: opts.HWDec,
	})
	if err != nil {
		window.Close()
		return fmt.Errorf("create player: %w", err)
	}
	defer player.Close(context.WithoutCancel(ctx))

	program := xwm.NewProgram(conn)

	unregister := Register(opts.Bus, program)
	defer unregister()

	_, err = program.Run(ctx, Model{
		Window:         window,
		Display:        player,
		Settings:       opts.Settings,
		Fetcher:        opts.Fetcher,
		Bus:            opts.Bus,
		RefreshTimeout: opts.RefreshTimeout,
		WID:            window.WID,
		TitleBar:       window.TitleBar,
	})
	return err
}
