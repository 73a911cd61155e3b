package main

import (
	"fmt"
	"image/color"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/misawa-san/waveview/src/session"
)

// cursorOverlay sits on top of one panel's chart image. It forwards pointer
// events to the shared cursor/delta/label engines and draws the cursor line,
// the sample dot, the delta marks and the movable value label.
type cursorOverlay struct {
	widget.BaseWidget
	ui    *uiState
	panel *wavePanel

	// last drawn label rect, for hit-testing clicks and drags
	labelPos  fyne.Position
	labelSize fyne.Size

	draggingLabel bool
}

func newCursorOverlay(ui *uiState, panel *wavePanel) *cursorOverlay {
	c := &cursorOverlay{ui: ui, panel: panel}
	c.ExtendBaseWidget(c)
	return c
}

func (c *cursorOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure a full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{})
	cursorLine := canvas.NewLine(color.RGBA{R: 230, G: 60, B: 60, A: 230})
	cursorLine.StrokeWidth = 1.0
	anchorLine := canvas.NewLine(color.RGBA{R: 0, G: 180, B: 255, A: 220})
	anchorLine.StrokeWidth = 1.0
	secondLine := canvas.NewLine(color.RGBA{R: 0, G: 180, B: 255, A: 220})
	secondLine.StrokeWidth = 1.0
	dot := canvas.NewCircle(color.RGBA{R: 240, G: 240, B: 240, A: 230})
	labelBG := canvas.NewRectangle(color.RGBA{A: 170})
	label := canvas.NewText("", color.RGBA{R: 240, G: 240, B: 240, A: 255})
	label.TextSize = 12
	objs := []fyne.CanvasObject{bg, cursorLine, anchorLine, secondLine, dot, labelBG, label}
	return &cursorRenderer{c: c, bg: bg, cursorLine: cursorLine, anchorLine: anchorLine,
		secondLine: secondLine, dot: dot, labelBG: labelBG, label: label, objs: objs}
}

type cursorRenderer struct {
	c          *cursorOverlay
	bg         *canvas.Rectangle
	cursorLine *canvas.Line
	anchorLine *canvas.Line
	secondLine *canvas.Line
	dot        *canvas.Circle
	labelBG    *canvas.Rectangle
	label      *canvas.Text
	objs       []fyne.CanvasObject
}

func offscreen(l *canvas.Line) {
	l.Position1 = fyne.NewPos(-10, -10)
	l.Position2 = fyne.NewPos(-10, -10)
}

func (r *cursorRenderer) Destroy() {}

func (r *cursorRenderer) Layout(size fyne.Size) {
	if r.bg != nil {
		r.bg.Resize(size)
		r.bg.Move(fyne.NewPos(0, 0))
	}
	ui := r.c.ui
	p := r.c.panel
	lo, hi := ui.cursor.XRange()

	placeVertical := func(l *canvas.Line, t float64) {
		if t < lo || t > hi {
			offscreen(l)
			return
		}
		x := timeToX(t, size.Width, p.imgW, lo, hi)
		l.Position1 = fyne.NewPos(x, 0)
		l.Position2 = fyne.NewPos(x, size.Height)
	}

	// delta marks
	offscreen(r.anchorLine)
	offscreen(r.secondLine)
	switch ui.delta.State() {
	case session.DeltaArmed:
		if at, _, ok := ui.delta.Anchor(); ok {
			placeVertical(r.anchorLine, at)
		}
	case session.DeltaComplete:
		if dt, _, ok := ui.delta.Result(); ok {
			placeVertical(r.anchorLine, ui.deltaAnchorT)
			placeVertical(r.secondLine, ui.deltaAnchorT+dt)
		}
	}

	// cursor line, sample dot, value label
	t, ok := ui.cursor.SnappedTime()
	if !ok {
		offscreen(r.cursorLine)
		r.dot.Move(fyne.NewPos(-10, -10))
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
		r.label.Move(fyne.NewPos(-1000, -1000))
		r.c.labelSize = fyne.NewSize(0, 0)
		return
	}
	placeVertical(r.cursorLine, t)
	x := timeToX(t, size.Width, p.imgW, lo, hi)

	lb := ui.labels.Get(p.name)
	if lb == nil {
		return
	}
	y := valueToY(lb.Value, size.Height, p.imgH, p.yLo, p.yHi)
	r.dot.Resize(fyne.NewSize(7, 7))
	r.dot.Move(fyne.NewPos(x-3.5, y-3.5))

	r.label.Text = fmt.Sprintf("%.3f", lb.Value)
	if lb.Locked {
		r.label.Text += " \U0001F512"
	}
	r.label.Refresh()
	pad := float32(4)
	ts := r.label.MinSize()
	tx := x + 8 + lb.OffX
	ty := y - ts.Height - 6 + lb.OffY
	if tx+ts.Width+2*pad > size.Width {
		tx = size.Width - ts.Width - 2*pad
	}
	if tx < 0 {
		tx = 0
	}
	if ty < 0 {
		ty = 0
	}
	if ty+ts.Height+2*pad > size.Height {
		ty = size.Height - ts.Height - 2*pad
	}
	r.labelBG.Resize(fyne.NewSize(ts.Width+2*pad, ts.Height+2*pad))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
	r.c.labelPos = fyne.NewPos(tx, ty)
	r.c.labelSize = fyne.NewSize(ts.Width+2*pad, ts.Height+2*pad)
}

func (r *cursorRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *cursorRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *cursorRenderer) Refresh() {
	r.Layout(r.c.Size())
	for _, o := range r.objs {
		o.Refresh()
	}
}

func (c *cursorOverlay) overLabel(p fyne.Position) bool {
	return c.labelSize.Width > 0 &&
		p.X >= c.labelPos.X && p.X <= c.labelPos.X+c.labelSize.Width &&
		p.Y >= c.labelPos.Y && p.Y <= c.labelPos.Y+c.labelSize.Height
}

// pointer motion drives the shared cursor unless it is locked
func (c *cursorOverlay) MouseMoved(ev *desktop.MouseEvent) {
	c.ui.activePanel = c.panel.name
	lo, hi := c.ui.cursor.XRange()
	c.ui.cursor.PointerMoved(xToTime(ev.Position.X, c.Size().Width, c.panel.imgW, lo, hi))
}

func (c *cursorOverlay) MouseIn(*desktop.MouseEvent) {}
func (c *cursorOverlay) MouseOut()                   {}

func (c *cursorOverlay) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	lo, hi := c.ui.cursor.XRange()
	t := xToTime(ev.Position.X, c.Size().Width, c.panel.imgW, lo, hi)

	if ev.Modifier&fyne.KeyModifierControl != 0 {
		c.ui.ctrlClick(c.panel.name, t)
		return
	}
	if c.overLabel(ev.Position) {
		c.ui.labels.ToggleLock(c.panel.name)
		c.Refresh()
		return
	}
	c.ui.plainClick(t)
}

func (c *cursorOverlay) MouseUp(*desktop.MouseEvent) {}

// label dragging; the offset is free to move whether or not the value is locked
func (c *cursorOverlay) Dragged(ev *fyne.DragEvent) {
	if !c.draggingLabel {
		if !c.overLabel(ev.Position) {
			return
		}
		c.draggingLabel = true
	}
	c.ui.labels.Drag(c.panel.name, ev.Dragged.DX, ev.Dragged.DY)
	c.Refresh()
}

func (c *cursorOverlay) DragEnd() { c.draggingLabel = false }

var (
	_ desktop.Hoverable = (*cursorOverlay)(nil)
	_ desktop.Mouseable = (*cursorOverlay)(nil)
	_ fyne.Draggable    = (*cursorOverlay)(nil)
)
