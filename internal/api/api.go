// Package api is the local HTTP control API for the wallpaper window.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ItsNotGoodName/x-wallpaper/internal/build"
	"github.com/ItsNotGoodName/x-wallpaper/internal/bus"
	"github.com/ItsNotGoodName/x-wallpaper/internal/wallpaper"
	"github.com/ItsNotGoodName/x-wallpaper/internal/xwm"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
)

const eventBufferSize = 8

// Hubs fan bus events out to event stream clients.
type Hubs struct {
	Changed *bus.Hub[wallpaper.Changed]
	Failed  *bus.Hub[wallpaper.RefreshFailed]
}

// NewHubs registers hubs on b. The returned function unregisters them.
func NewHubs(b *bus.Bus) (Hubs, func()) {
	hubs := Hubs{
		Changed: bus.NewHub[wallpaper.Changed](),
		Failed:  bus.NewHub[wallpaper.RefreshFailed](),
	}
	unregisterChanged := hubs.Changed.Register(b)
	unregisterFailed := hubs.Failed.Register(b)

	return hubs, func() {
		unregisterChanged()
		unregisterFailed()
	}
}

type WallpaperOutput struct {
	Body struct {
		Wallpaper *wallpaper.Info `json:"wallpaper" doc:"Wallpaper on screen, null before the first one loads"`
	}
}

type BuildOutput struct {
	Body build.Build
}

var errWindowNotRunning = huma.Error503ServiceUnavailable("window is not running")

func Register(api huma.API, b *bus.Bus, hubs Hubs) {
	huma.Register(api, huma.Operation{
		OperationID: "get-wallpaper",
		Method:      http.MethodGet,
		Path:        "/api/wallpaper",
		Summary:     "Get current wallpaper",
		Tags:        []string{"Wallpaper"},
	}, func(ctx context.Context, input *struct{}) (*WallpaperOutput, error) {
		info, err := bus.Request[wallpaper.CurrentRequest, *wallpaper.Info](ctx, b, wallpaper.CurrentRequest{})
		if err != nil {
			if errors.Is(err, bus.ErrNoHandler) || errors.Is(err, xwm.ErrProgramClosed) {
				return nil, errWindowNotRunning
			}
			return nil, err
		}

		res := &WallpaperOutput{}
		res.Body.Wallpaper = info
		return res, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "next-wallpaper",
		Method:        http.MethodPost,
		Path:          "/api/wallpaper/next",
		Summary:       "Change wallpaper",
		Description:   "Starts loading the next wallpaper. Failures are shown on screen and sent as error events.",
		Tags:          []string{"Wallpaper"},
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		if !bus.HasSubscribers[wallpaper.ChangeWallpaper](b) {
			return nil, errWindowNotRunning
		}

		bus.Publish(ctx, b, wallpaper.ChangeWallpaper{})
		return nil, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Stream wallpaper events",
		Tags:        []string{"Wallpaper"},
	}, map[string]any{
		"wallpaper": wallpaper.Changed{},
		"error":     wallpaper.RefreshFailed{},
	}, func(ctx context.Context, input *struct{}, send sse.Sender) {
		changedC, unsubscribeChanged := hubs.Changed.Subscribe(eventBufferSize)
		defer unsubscribeChanged()
		failedC, unsubscribeFailed := hubs.Failed.Subscribe(eventBufferSize)
		defer unsubscribeFailed()

		for {
			var err error
			select {
			case <-ctx.Done():
				return
			case event := <-changedC:
				err = send.Data(event)
			case event := <-failedC:
				err = send.Data(event)
			}
			if err != nil {
				return
			}
		}
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Get build information",
		Tags:        []string{"Build"},
	}, func(ctx context.Context, input *struct{}) (*BuildOutput, error) {
		return &BuildOutput{Body: build.Current}, nil
	})
}
