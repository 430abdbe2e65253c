package xwm

import (
	"bufio"
	"strconv"
	"strings"
)

// DefaultDPI is used when the X server reports no physical screen size.
const DefaultDPI = 96

// ParseXftDPI finds the Xft.dpi entry in an X resource database string.
func ParseXftDPI(resources string) (float64, bool) {
	scanner := bufio.NewScanner(strings.NewReader(resources))
	for scanner.Scan() {
		name, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(name) != "Xft.dpi" {
			continue
		}

		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return dpi, true
	}
	return 0, false
}

// PhysicalDPI computes the DPI from the screen width in pixels and millimetres.
func PhysicalDPI(pixels, millimetres uint16) float64 {
	if millimetres == 0 {
		return DefaultDPI
	}
	return float64(pixels) * 25.4 / float64(millimetres)
}
