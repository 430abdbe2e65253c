package placement

import "github.com/ItsNotGoodName/x-wallpaper/internal/config"

var keys = []config.Key{
	config.WindowLeft,
	config.WindowTop,
	config.WindowRight,
	config.WindowBottom,
}

type Settings interface {
	GetInt(key config.Key) int
	SetInts(values map[config.Key]int) error
}

// Load reads the saved bounds. Missing keys read as 0.
func Load(settings Settings) Bounds {
	return Bounds{
		Left:   settings.GetInt(config.WindowLeft),
		Top:    settings.GetInt(config.WindowTop),
		Right:  settings.GetInt(config.WindowRight),
		Bottom: settings.GetInt(config.WindowBottom),
	}
}

func Save(settings Settings, bounds Bounds) error {
	return settings.SetInts(map[config.Key]int{
		config.WindowLeft:   bounds.Left,
		config.WindowTop:    bounds.Top,
		config.WindowRight:  bounds.Right,
		config.WindowBottom: bounds.Bottom,
	})
}

// Keys returns the settings keys used for the saved bounds.
func Keys() []config.Key {
	return append([]config.Key(nil), keys...)
}
