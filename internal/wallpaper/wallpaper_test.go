package wallpaper

import (
	"context"
	"errors"
	"testing"
)

type fetcherFunc func(ctx context.Context, afterID int) (*Info, error)

func (f fetcherFunc) Next(ctx context.Context, afterID int) (*Info, error) {
	return f(ctx, afterID)
}

func TestNext(t *testing.T) {
	var gotAfter int
	fetcher := fetcherFunc(func(ctx context.Context, afterID int) (*Info, error) {
		gotAfter = afterID
		return &Info{ID: 3, URL: "  https://img.example.com/3.png \n"}, nil
	})

	info, err := Next(context.Background(), fetcher, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAfter != 2 {
		t.Fatalf("expected afterID 2, got %d", gotAfter)
	}
	if info.URL != "https://img.example.com/3.png" {
		t.Fatalf("expected trimmed url, got %q", info.URL)
	}
}

func TestNext_Empty(t *testing.T) {
	for _, info := range []*Info{nil, {ID: 1}, {ID: 1, URL: "   "}} {
		fetcher := fetcherFunc(func(ctx context.Context, afterID int) (*Info, error) {
			return info, nil
		})

		got, err := Next(context.Background(), fetcher, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil for %v, got %v", info, got)
		}
	}
}

func TestNext_Error(t *testing.T) {
	want := errors.New("offline")
	fetcher := fetcherFunc(func(ctx context.Context, afterID int) (*Info, error) {
		return nil, want
	})

	if _, err := Next(context.Background(), fetcher, 0); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://img.example.com/a.jpg",
		"http://localhost:8080/a.png",
		"file:///home/user/a.png",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected %q to be valid, got %v", u, err)
		}
	}

	invalid := []string{
		"ftp://example.com/a.jpg",
		"https:///a.jpg",
		"not a url",
		"://bad",
	}
	for _, u := range invalid {
		if err := ValidateURL(u); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected %q to be invalid, got %v", u, err)
		}
	}
}
