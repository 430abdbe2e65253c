// Package wallpaper talks to the remote wallpaper service.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ItsNotGoodName/x-wallpaper/internal/core"
)

var ErrInvalidURL = errors.New("invalid wallpaper url")

// Info describes a wallpaper. Only ID and URL are interpreted.
type Info struct {
	ID          int      `json:"id"`
	Enable      bool     `json:"enable"`
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	FileName    string   `json:"fileName,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	URL         string   `json:"url"`
	Source      string   `json:"source,omitempty"`
}

func (i *Info) String() string {
	if i == nil {
		return "wallpaper.Info(nil)"
	}
	return fmt.Sprintf("wallpaper.Info(id=%d, url=%s)", i.ID, i.URL)
}

// Fetcher returns the wallpaper that follows afterID, where 0 means the first one.
type Fetcher interface {
	Next(ctx context.Context, afterID int) (*Info, error)
}

// Next fetches the wallpaper after afterID and validates its URL.
// It returns nil without an error when the service has nothing to show.
func Next(ctx context.Context, fetcher Fetcher, afterID int) (*Info, error) {
	info, err := fetcher.Next(ctx, afterID)
	if err != nil {
		return nil, err
	}
	if info == nil || core.IsBlank(info.URL) {
		return nil, nil
	}

	info.URL = strings.TrimSpace(info.URL)
	if err := ValidateURL(info.URL); err != nil {
		return nil, err
	}

	return info, nil
}

func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: %s: missing host", ErrInvalidURL, rawURL)
		}
	case "file":
	default:
		return fmt.Errorf("%w: %s: unsupported scheme %q", ErrInvalidURL, rawURL, u.Scheme)
	}

	return nil
}
