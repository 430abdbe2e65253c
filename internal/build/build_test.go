package build

import "testing"

func TestNewBuild(t *testing.T) {
	b := newBuild("abc123", "2024-05-01T10:00:00Z", "v1.2.0", "https://github.com/ItsNotGoodName/x-wallpaper")

	if b.CommitURL != "https://github.com/ItsNotGoodName/x-wallpaper/tree/abc123" {
		t.Fatalf("unexpected commit url %q", b.CommitURL)
	}
	if b.ReleaseURL != "https://github.com/ItsNotGoodName/x-wallpaper/releases/tag/v1.2.0" {
		t.Fatalf("unexpected release url %q", b.ReleaseURL)
	}
	if b.Date.Year() != 2024 {
		t.Fatalf("expected 2024, got %d", b.Date.Year())
	}
	if b.UserAgent() != "x-wallpaper/v1.2.0" {
		t.Fatalf("unexpected user agent %q", b.UserAgent())
	}
}

func TestNewBuild_NoRepo(t *testing.T) {
	b := newBuild("", "", "dev", "")

	if b.CommitURL != "#" || b.ReleaseURL != "#" {
		t.Fatalf("expected placeholder urls, got %q %q", b.CommitURL, b.ReleaseURL)
	}
	if !b.Date.IsZero() {
		t.Fatalf("expected zero date, got %v", b.Date)
	}
}
