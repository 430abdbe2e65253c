package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ItsNotGoodName/x-wallpaper/internal/bus"
	"github.com/ItsNotGoodName/x-wallpaper/internal/wallpaper"
	"github.com/danielgtaylor/huma/v2/humatest"
)

func newTestAPI(t *testing.T) (humatest.TestAPI, *bus.Bus) {
	_, api := humatest.New(t)

	b := bus.New()
	hubs, unregister := NewHubs(b)
	t.Cleanup(unregister)

	Register(api, b, hubs)

	return api, b
}

func TestGetWallpaper(t *testing.T) {
	api, b := newTestAPI(t)

	bus.Handle(b, "test", func(ctx context.Context, req wallpaper.CurrentRequest) (*wallpaper.Info, error) {
		return &wallpaper.Info{ID: 3, URL: "https://example.com/3.jpg", Title: "Three"}, nil
	})

	resp := api.Get("/api/wallpaper")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Wallpaper *wallpaper.Info `json:"wallpaper"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Wallpaper == nil || body.Wallpaper.ID != 3 || body.Wallpaper.Title != "Three" {
		t.Fatalf("expected wallpaper 3, got %v", body.Wallpaper)
	}
}

func TestGetWallpaper_None(t *testing.T) {
	api, b := newTestAPI(t)

	bus.Handle(b, "test", func(ctx context.Context, req wallpaper.CurrentRequest) (*wallpaper.Info, error) {
		return nil, nil
	})

	resp := api.Get("/api/wallpaper")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if v, ok := body["wallpaper"]; !ok || v != nil {
		t.Fatalf("expected null wallpaper, got %v", body)
	}
}

func TestGetWallpaper_NoWindow(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/api/wallpaper")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestNextWallpaper(t *testing.T) {
	api, b := newTestAPI(t)

	if resp := api.Post("/api/wallpaper/next"); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}

	calls := 0
	bus.Subscribe(b, "test", func(ctx context.Context, event wallpaper.ChangeWallpaper) error {
		calls++
		return nil
	})

	resp := api.Post("/api/wallpaper/next")
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}
	if calls != 1 {
		t.Fatalf("expected 1 change event, got %d", calls)
	}
}

func TestGetBuild(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/api/build")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["version"] != "dev" {
		t.Fatalf("expected version dev, got %v", body["version"])
	}
}

func TestHubs(t *testing.T) {
	b := bus.New()
	hubs, unregister := NewHubs(b)
	defer unregister()

	changedC, unsubscribe := hubs.Changed.Subscribe(1)
	defer unsubscribe()

	bus.Publish(context.Background(), b, wallpaper.Changed{Info: wallpaper.Info{ID: 1}})

	select {
	case ev := <-changedC:
		if ev.Info.ID != 1 {
			t.Fatalf("expected wallpaper 1, got %d", ev.Info.ID)
		}
	default:
		t.Fatalf("expected changed event")
	}
}
