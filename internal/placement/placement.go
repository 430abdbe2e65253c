// Package placement holds window bounds, their persistence and the first-run sizing policy.
package placement

import (
	"fmt"
	"math"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	// BaseDPI is the DPI at which the default size is one pixel per logical unit.
	BaseDPI = 72
)

type ShowState int

const (
	ShowStateNormal ShowState = iota
	ShowStateMinimized
	ShowStateMaximized
)

func (s ShowState) String() string {
	switch s {
	case ShowStateNormal:
		return "normal"
	case ShowStateMinimized:
		return "minimized"
	case ShowStateMaximized:
		return "maximized"
	default:
		return fmt.Sprintf("ShowState(%d)", int(s))
	}
}

// Bounds is a rectangle in root window coordinates.
type Bounds struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

func NewBounds(x, y, width, height int) Bounds {
	return Bounds{
		Left:   x,
		Top:    y,
		Right:  x + width,
		Bottom: y + height,
	}
}

func (b Bounds) Width() int {
	return b.Right - b.Left
}

func (b Bounds) Height() int {
	return b.Bottom - b.Top
}

// Empty reports whether b has no area, which means there is no saved placement.
// Negative sizes only come from corrupt settings and count as empty.
func (b Bounds) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", b.Width(), b.Height(), b.Left, b.Top)
}

type Placement struct {
	ShowState ShowState
	Bounds    Bounds
}

// Default returns the default window rectangle centered on a screen of the given size.
func Default(screenWidth, screenHeight int, dpi float64) Bounds {
	width := int(math.Floor(DefaultWidth * dpi / BaseDPI))
	height := int(math.Floor(DefaultHeight * dpi / BaseDPI))
	x := (screenWidth - width) / 2
	y := (screenHeight - height) / 2
	return NewBounds(x, y, width, height)
}

// Initial returns stored unless it is empty, in which case the default rectangle is used.
func Initial(stored Bounds, screenWidth, screenHeight int, dpi float64) Bounds {
	if stored.Empty() {
		return Default(screenWidth, screenHeight, dpi)
	}
	return stored
}
