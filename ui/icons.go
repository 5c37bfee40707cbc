// Package ui provides the graphical user interface for Network Settings.
// This file contains icon generation utilities for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/connman-gtk/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	Bars        int
	ActiveColor color.RGBA
	IdleColor   color.RGBA
	// ActiveBars is the number of bars drawn in ActiveColor, from the left.
	ActiveBars int
	ShowCross  bool
	CrossColor color.RGBA
}

// DefaultOnlineIconConfig returns the config used while any technology is connected.
func DefaultOnlineIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		Bars:        4,
		ActiveColor: color.RGBA{46, 194, 126, 255},  // Green
		IdleColor:   color.RGBA{158, 158, 158, 255}, // Gray
		ActiveBars:  4,
	}
}

// DefaultOfflineIconConfig returns the config used while nothing is connected.
func DefaultOfflineIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		Bars:        4,
		ActiveColor: color.RGBA{158, 158, 158, 255},
		IdleColor:   color.RGBA{117, 117, 117, 255}, // Dark gray
		ActiveBars:  0,
		ShowCross:   true,
		CrossColor:  color.RGBA{224, 27, 36, 255}, // Red
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawBars(img)
	if g.config.ShowCross {
		g.drawCross(img)
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawBars draws signal bars of increasing height along the bottom edge.
func (g *IconGenerator) drawBars(img *image.RGBA) {
	size := g.config.Size
	bars := g.config.Bars
	if bars <= 0 {
		return
	}

	slot := size / bars
	width := slot - 1
	if width < 1 {
		width = 1
	}
	bottom := size - 2

	for i := 0; i < bars; i++ {
		c := g.config.IdleColor
		if i < g.config.ActiveBars {
			c = g.config.ActiveColor
		}
		height := (size - 4) * (i + 1) / bars
		left := i * slot
		for y := bottom - height + 1; y <= bottom; y++ {
			for x := left; x < left+width && x < size; x++ {
				img.Set(x, y, c)
			}
		}
	}
}

// drawCross draws a small cross in the top-left corner.
func (g *IconGenerator) drawCross(img *image.RGBA) {
	n := g.config.Size / 3
	for i := 0; i < n; i++ {
		img.Set(1+i, 1+i, g.config.CrossColor)
		img.Set(n-i, 1+i, g.config.CrossColor)
	}
}

// GenerateOnlineIcon generates the connected state icon.
func GenerateOnlineIcon() []byte {
	return NewIconGenerator(DefaultOnlineIconConfig()).Generate()
}

// GenerateOfflineIcon generates the disconnected state icon.
func GenerateOfflineIcon() []byte {
	return NewIconGenerator(DefaultOfflineIconConfig()).Generate()
}
