package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Chart paddings used when rendering panel images, in image pixel space. The
// overlay relies on these to map between screen positions and data
// coordinates, so they must match what renderSeriesChart hands to go-chart.
const (
	plotPadLeft   = 56
	plotPadRight  = 16
	plotPadTop    = 18
	plotPadBottom = 34
)

// xToTime maps a mouse x in overlay coordinates to a time value, given the
// rendered image width and the shared x-window. The chart image is drawn
// stretched to the overlay, so view coords scale linearly to image coords.
func xToTime(mouseX, viewW, imgW float32, lo, hi float64) float64 {
	if viewW <= 0 || imgW <= 0 {
		return lo
	}
	xImg := float64(mouseX) * float64(imgW) / float64(viewW)
	plotW := float64(imgW) - plotPadLeft - plotPadRight
	if plotW < 1 {
		plotW = float64(imgW)
	}
	frac := (xImg - plotPadLeft) / plotW
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return lo + frac*(hi-lo)
}

// timeToX is the inverse of xToTime for an in-range t.
func timeToX(t float64, viewW, imgW float32, lo, hi float64) float32 {
	if hi <= lo || viewW <= 0 || imgW <= 0 {
		return 0
	}
	plotW := float64(imgW) - plotPadLeft - plotPadRight
	if plotW < 1 {
		plotW = float64(imgW)
	}
	xImg := plotPadLeft + (t-lo)/(hi-lo)*plotW
	return float32(xImg * float64(viewW) / float64(imgW))
}

// valueToY maps a series value to an overlay y using the y-range the panel
// was last rendered with.
func valueToY(v float64, viewH, imgH float32, yLo, yHi float64) float32 {
	if yHi <= yLo || viewH <= 0 || imgH <= 0 {
		return 0
	}
	plotH := float64(imgH) - plotPadTop - plotPadBottom
	if plotH < 1 {
		plotH = float64(imgH)
	}
	frac := (v - yLo) / (yHi - yLo)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	yImg := plotPadTop + (1-frac)*plotH
	return float32(yImg * float64(viewH) / float64(imgH))
}

// reorderTarget converts the vertical distance a panel header was dragged
// into the slot index the plot should land in. Panels are stacked with a
// uniform height, so each full panel height of travel moves one slot.
func reorderTarget(current int, dragDY, panelH float32) int {
	if panelH <= 0 {
		return current
	}
	return current + int(math.Round(float64(dragDY/panelH)))
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}

// stampText writes a small caption onto the bottom-left of a rendered chart,
// shadowed for contrast on varying backgrounds.
func stampText(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	return "..." + p[len(p)-n+3:]
}
