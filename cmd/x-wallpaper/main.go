package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/x-wallpaper/internal/api"
	"github.com/ItsNotGoodName/x-wallpaper/internal/app"
	"github.com/ItsNotGoodName/x-wallpaper/internal/build"
	"github.com/ItsNotGoodName/x-wallpaper/internal/bus"
	"github.com/ItsNotGoodName/x-wallpaper/internal/config"
	"github.com/ItsNotGoodName/x-wallpaper/internal/core"
	"github.com/ItsNotGoodName/x-wallpaper/internal/wallpaper"
	"github.com/ItsNotGoodName/x-wallpaper/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jezek/xgb"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/thejerf/suture/v4"
)

type Options struct {
	Debug   bool   `doc:"enable debug"`
	Host    string `doc:"host to listen on"`
	Port    int    `doc:"port to listen on" default:"8080"`
	Config  string `doc:"settings file (.yaml, .json, .toml or .db)" default:".x-wallpaper.yaml"`
	API     string `doc:"wallpaper service url" default:"https://api.xunkong.cc/v0.1"`
	Timeout int    `doc:"wallpaper request timeout in seconds" default:"30"`
	Hwdec   string `doc:"mpv hardware decoding api"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
			pp.Fprintln(os.Stderr, options)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			return serve(ctx, options)
		})
	})

	root := cli.Root()
	root.Use = build.Name
	root.Short = "Wallpaper gallery window for X11"
	root.Version = build.Current.Version
	root.AddCommand(placementCommand())

	cli.Run()
}

func serve(ctx context.Context, options *Options) error {
	store, err := openStore(options.Config)
	if err != nil {
		return err
	}
	defer store.Close()

	b := bus.New()

	hubs, unregister := api.NewHubs(b)
	defer unregister()

	router, humaAPI := api.NewRouter()
	api.Register(humaAPI, b, hubs)

	fetcher := wallpaper.NewClient(options.API, nil).WithUserAgent(build.Current.UserAgent())

	var windowErr error
	window := sutureext.NewServiceFunc("app.Window", func(ctx context.Context) error {
		conn, err := xgb.NewConn()
		if err != nil {
			windowErr = fmt.Errorf("connect to X server: %w", err)
			return suture.ErrTerminateSupervisorTree
		}
		defer conn.Close()

		windowErr = app.Run(ctx, conn, app.Options{
			Settings:       store,
			Fetcher:        fetcher,
			Bus:            b,
			RefreshTimeout: time.Duration(options.Timeout) * time.Second,
			HWDec:          options.Hwdec,
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return suture.ErrTerminateSupervisorTree
	})

	super := sutureext.NewSimple("root")
	sutureext.Add(super, api.NewServer(core.Address(options.Host, options.Port), router))
	sutureext.Add(super, window)

	if err := super.Serve(ctx); err != nil && !sutureext.IsTerminated(err) && !errors.Is(err, context.Canceled) {
		return err
	}

	return windowErr
}

func openStore(path string) (config.Store, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return config.Store{}, err
	}

	driver, err := config.NewDriver(path)
	if err != nil {
		return config.Store{}, err
	}

	store, err := config.NewStore(driver)
	if err != nil {
		return config.Store{}, fmt.Errorf("open settings %s: %w", path, err)
	}

	return store, nil
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
