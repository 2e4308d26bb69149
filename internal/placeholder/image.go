// Package placeholder synthesizes local artifacts so the interactive surface
// never shows a broken state when remote generation is unavailable or fails.
// It is the last line of defense: nothing here escalates, worst case is empty
// bytes and an error for the caller's status line.
package placeholder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	minSide     = 64
	borderInset = 40
	textMargin  = 120
	lineGap     = 6
)

// Image renders a deterministic gradient card of the given size with the
// prompt word-wrapped and centered inside an inset border, PNG-encoded.
// The same prompt and size always produce the same bytes.
func Image(prompt string, w, h int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("placeholder image: %v", r)
		}
	}()

	if w < minSide {
		w = minSide
	}
	if h < minSide {
		h = minSide
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	paintGradient(img, w, h)
	drawBorder(img, w, h)
	drawPrompt(img, prompt, w, h)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("placeholder image: %w", err)
	}
	return buf.Bytes(), nil
}

// paintGradient fills the canvas with a smooth function of the normalized
// coordinates so any size stays visually distinguishable and reproducible.
func paintGradient(img *image.RGBA, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := 180 + 60*x/w
			g := 120 + 80*y/h
			b := 200 - 80*(x+y)/(w+h)
			img.SetRGBA(x, y, color.RGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255})
		}
	}
}

func drawBorder(img *image.RGBA, w, h int) {
	white := color.RGBA{255, 255, 255, 255}
	x0, y0 := borderInset, borderInset
	x1, y1 := w-borderInset, h-borderInset
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for t := 0; t < 2; t++ {
		for x := x0 + t; x < x1-t; x++ {
			img.SetRGBA(x, y0+t, white)
			img.SetRGBA(x, y1-1-t, white)
		}
		for y := y0 + t; y < y1-t; y++ {
			img.SetRGBA(x0+t, y, white)
			img.SetRGBA(x1-1-t, y, white)
		}
	}
}

func drawPrompt(img *image.RGBA, prompt string, w, h int) {
	face := basicfont.Face7x13
	lines := wrap(prompt, face, w-textMargin)
	if len(lines) == 0 {
		return
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil() + lineGap
	ascent := metrics.Ascent.Ceil()

	y := h/2 - len(lines)*lineHeight/2 + ascent
	src := image.NewUniform(color.RGBA{255, 255, 255, 255})
	for _, line := range lines {
		tw := font.MeasureString(face, line).Ceil()
		d := font.Drawer{
			Dst:  img,
			Src:  src,
			Face: face,
			Dot:  fixed.P((w-tw)/2, y),
		}
		d.DrawString(line)
		y += lineHeight
	}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
