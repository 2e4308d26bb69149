package placeholder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
)

const (
	clipWidth  = 256
	clipHeight = 144
	clipFrames = 24
	// Per-frame delay in 1/100s; 24 frames at 10 gives a ~2.4 second loop.
	clipDelay = 10
)

// Clip renders a short looping gradient sweep as an animated GIF. The GIF
// encoder is always present in the runtime, but the guard stays: on any
// failure the caller gets empty bytes and an error to fold into its status,
// never a panic.
func Clip() (data []byte, mime string, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, mime, err = nil, "", fmt.Errorf("placeholder clip: %v", r)
		}
	}()

	pal := clipPalette()
	anim := &gif.GIF{LoopCount: 0}
	for f := 0; f < clipFrames; f++ {
		frame := image.NewPaletted(image.Rect(0, 0, clipWidth, clipHeight), pal)
		paintFrame(frame, f)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, clipDelay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, "", fmt.Errorf("placeholder clip: %w", err)
	}
	return buf.Bytes(), "image/gif", nil
}

// paintFrame shifts the gradient horizontally by the frame index so the loop
// reads as motion.
func paintFrame(frame *image.Paletted, f int) {
	shift := f * clipWidth / clipFrames
	for y := 0; y < clipHeight; y++ {
		for x := 0; x < clipWidth; x++ {
			sx := (x + shift) % clipWidth
			r := 180 + 60*sx/clipWidth
			g := 120 + 80*y/clipHeight
			b := 200 - 80*(sx+y)/(clipWidth+clipHeight)
			frame.Set(x, y, color.RGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255})
		}
	}
}

// clipPalette samples the gradient itself so quantization stays faithful.
func clipPalette() color.Palette {
	pal := make(color.Palette, 0, 256)
	for i := 0; i < 256; i++ {
		x := i * clipWidth / 256
		y := i * clipHeight / 256
		pal = append(pal, color.RGBA{
			R: clamp8(180 + 60*x/clipWidth),
			G: clamp8(120 + 80*y/clipHeight),
			B: clamp8(200 - 80*(x+y)/(clipWidth+clipHeight)),
			A: 255,
		})
	}
	return pal
}
