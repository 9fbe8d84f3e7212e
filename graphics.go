package main

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source for overlay and placeholder text rendering
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// parseHexColor parses "#rrggbb" (or "#rgb") into an opaque RGBA. Invalid
// input falls back to the slate reader background.
func parseHexColor(s string) color.RGBA {
	fallback := color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// DrawLoadingSpinner draws a rotating arc placeholder centered at (cx, cy).
// phase advances once per frame; the arc completes a revolution roughly
// every second at 60 TPS.
func DrawLoadingSpinner(screen *ebiten.Image, cx, cy float64, phase int) {
	const (
		radius   = 18.0
		dots     = 8
		dotSize  = 3.0
		revFrame = 60
	)
	base := float64(phase%revFrame) / revFrame * 2 * math.Pi
	for i := 0; i < dots; i++ {
		angle := base + float64(i)/dots*2*math.Pi
		alpha := uint8(60 + (195*i)/dots)
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		vector.DrawFilledCircle(screen, float32(x), float32(y), dotSize, color.RGBA{200, 200, 210, alpha}, true)
	}
}

// CreateFailurePane creates the inline placeholder for a page that failed to
// load: page number and a truncated reason on a dark red card.
func CreateFailurePane(width, height, pageIndex int, loadErr error) *ebiten.Image {
	// Default size if not specified
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	img := ebiten.NewImage(width, height)
	img.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background

	// Draw white border
	white := color.RGBA{255, 255, 255, 255}
	DrawFilledRect(img, 0, 0, float64(width), 3, white)
	DrawFilledRect(img, 0, float64(height-3), float64(width), 3, white)
	DrawFilledRect(img, 0, 0, 3, float64(height), white)
	DrawFilledRect(img, float64(width-3), 0, 3, float64(height), white)

	if globalFontSource == nil {
		return img
	}

	font := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	titleText := fmt.Sprintf("Page %d failed to load", pageIndex+1)
	reasonText := "Unknown error"
	if loadErr != nil {
		reasonText = loadErr.Error()
	}

	// Truncate long text to fit within image bounds
	maxChars := (width - 20) / 10 // Rough estimate: 10px per character
	if maxChars > 3 && len(reasonText) > maxChars {
		reasonText = reasonText[:maxChars-3] + "..."
	}

	DrawText(img, titleText, font, 10, 30, white)
	DrawText(img, reasonText, font, 10, 60, white)

	return img
}
