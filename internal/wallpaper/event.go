package wallpaper

type (
	// ChangeWallpaper asks the window to show the next wallpaper.
	ChangeWallpaper struct{}
	// CurrentRequest asks the window for the wallpaper it shows.
	CurrentRequest struct{}
	// Changed is published after a new wallpaper is shown.
	Changed struct {
		Info Info
	}
	// RefreshFailed is published when a user-visible refresh fails.
	RefreshFailed struct {
		Error string
	}
)
