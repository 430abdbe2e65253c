package wallpaper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client())
}

func TestClient_Next(t *testing.T) {
	var gotPath string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"message":"","data":{"id":8,"enable":true,"title":"Sunset","url":"https://img.example.com/8.jpg","tags":["a","b"]}}`))
	})

	info, err := client.Next(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/wallpaper/next/7" {
		t.Fatalf("expected path /wallpaper/next/7, got %s", gotPath)
	}
	if info == nil || info.ID != 8 || info.URL != "https://img.example.com/8.jpg" || info.Title != "Sunset" {
		t.Fatalf("unexpected info %+v", info)
	}
	if len(info.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", info.Tags)
	}
}

func TestClient_NextNullData(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"message":"","data":null}`))
	})

	info, err := client.Next(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil info, got %+v", info)
	}
}

func TestClient_NextAPIError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":404,"message":"no wallpaper","data":null}`))
	})

	_, err := client.Next(context.Background(), 0)
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != 404 || apiErr.Message != "no wallpaper" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestClient_NextHTTPError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.Next(context.Background(), 0); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestClient_NextBadJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	if _, err := client.Next(context.Background(), 0); err == nil {
		t.Fatalf("expected error for invalid body")
	}
}

func TestClient_NextCanceled(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Next(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
