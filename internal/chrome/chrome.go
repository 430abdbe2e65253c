// Package chrome maps pointer presses on the custom title bar buttons to window commands.
package chrome

import (
	"fmt"
	"math"

	"github.com/ItsNotGoodName/x-wallpaper/internal/placement"
)

const (
	ButtonWidth = 40
	// Width of the button region at the right end of the title bar.
	Width = 3 * ButtonWidth
)

type Zone int

const (
	ZoneNone Zone = iota
	ZoneMinimize
	ZoneMaximize
	ZoneClose
)

func (z Zone) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneMinimize:
		return "minimize"
	case ZoneMaximize:
		return "maximize"
	case ZoneClose:
		return "close"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}

// HitTest classifies x, the pointer offset from the left edge of the button region.
func HitTest(x float64) Zone {
	x = math.RoundToEven(x)
	switch {
	case x < 0:
		return ZoneNone
	case x < ButtonWidth:
		return ZoneMinimize
	case x < 2*ButtonWidth:
		return ZoneMaximize
	default:
		return ZoneClose
	}
}

// Offset converts a title bar x coordinate into an offset from the button region.
func Offset(titleBarWidth int, x int) float64 {
	return float64(x - (titleBarWidth - Width))
}

type Window interface {
	ShowState() (placement.ShowState, error)
	Minimize() error
	Maximize() error
	Restore() error
	Close() error
}

// Apply issues the window command for zone.
func Apply(w Window, zone Zone) error {
	switch zone {
	case ZoneMinimize:
		return w.Minimize()
	case ZoneMaximize:
		state, err := w.ShowState()
		if err != nil {
			return err
		}
		if state == placement.ShowStateMaximized {
			return w.Restore()
		}
		return w.Maximize()
	case ZoneClose:
		return w.Close()
	default:
		return nil
	}
}

// Tap hit tests x and applies the resulting command.
func Tap(w Window, x float64) (Zone, error) {
	zone := HitTest(x)
	return zone, Apply(w, zone)
}
