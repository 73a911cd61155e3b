package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/misawa-san/waveview/cmd/waveviewer/uihelpers"
	"github.com/misawa-san/waveview/src/session"
	"github.com/misawa-san/waveview/src/waveio"
	"github.com/misawa-san/waveview/src/wavelog"
	"github.com/misawa-san/waveview/src/wavestore"
)

const defaultSourceFile = "monitor_log.csv"

// wavePanel is one stacked plot: a rendered chart image plus its interactive
// overlay and the render metadata the overlay needs for coordinate mapping.
type wavePanel struct {
	name    string
	img     *canvas.Image
	overlay *cursorOverlay
	box     fyne.CanvasObject

	imgW, imgH float32
	yLo, yHi   float64
}

type uiState struct {
	app        fyne.App
	window     fyne.Window
	filePath   string
	configPath string

	store  *wavestore.Store
	cursor *session.Cursor
	delta  *session.Delta
	labels *session.Labels
	order  session.PlotOrder

	panels      []*wavePanel
	panelColumn *fyne.Container
	timeLabel   *widget.Label
	deltaLabel  *widget.Label

	activePanel  string
	lastLo       float64
	lastHi       float64
	deltaAnchorT float64
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag, configFlag string
	flag.StringVar(&fileFlag, "file", defaultSourceFile, "Path to the comma-separated capture (first column time)")
	flag.StringVar(&configFlag, "config", session.DefaultConfigFile, "Path to the session config file")
	flag.Parse()

	store, err := waveio.Load(fileFlag, waveio.Options{})
	if err != nil {
		wavelog.Errorf("cannot load %s: %v", fileFlag, err)
		os.Exit(1)
	}

	a := app.NewWithID("com.misawa.waveview")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Waveform Viewer")
	w.Resize(fyne.NewSize(1200, 800))

	cfg := session.LoadConfig(configFlag)
	state := &uiState{
		app:        a,
		window:     w,
		filePath:   fileFlag,
		configPath: configFlag,
		store:      store,
		cursor:     session.NewCursor(store),
		delta:      session.NewDelta(),
		labels:     session.NewLabels(),
		order:      session.PlotOrder(cfg.PlotOrder).Sanitize(store.SeriesNames()),
	}
	if cfg.XRange != nil {
		state.cursor.SetXRange(cfg.XRange[0], cfg.XRange[1])
	}
	if cfg.CursorTime != nil {
		state.cursor.SetTimePosition(*cfg.CursorTime)
	}

	buildUI(state)
	state.lastLo, state.lastHi = -1, -1 // force the first redraw
	state.cursor.Subscribe(state.onCursorEvent)
	state.onCursorEvent(currentEvent(state.cursor))

	w.SetCloseIntercept(func() {
		state.saveSession()
		a.Quit()
	})
	w.ShowAndRun()
}

func currentEvent(c *session.Cursor) session.CursorEvent {
	ev := session.CursorEvent{}
	ev.XLo, ev.XHi = c.XRange()
	ev.TimePosition, ev.HasTime = c.TimePosition()
	return ev
}

func buildUI(state *uiState) {
	state.timeLabel = widget.NewLabel("Time: -  Y: -")
	state.deltaLabel = widget.NewLabel(deltaText(state))
	fileLabel := widget.NewLabel(truncatePath(state.filePath, 60))

	buttons := container.NewHBox(
		widget.NewButton("Auto Fit", func() {
			if lo, hi, ok := state.store.TimeBounds(); ok {
				state.cursor.SetXRange(lo, hi)
				state.saveSession()
			}
		}),
		widget.NewButton("⬅ Prev Edge", func() { state.jumpEdge(-1) }),
		widget.NewButton("Next Edge ➡", func() { state.jumpEdge(1) }),
		widget.NewButton("Clear Δ", func() {
			state.delta.Reset()
			state.deltaLabel.SetText(deltaText(state))
			state.refreshOverlays()
		}),
		layout.NewSpacer(),
		widget.NewButton("Zoom In", func() { state.zoom(0.5) }),
		widget.NewButton("Zoom Out", func() { state.zoom(2.0) }),
		widget.NewButton("◀", func() { state.pan(-0.25) }),
		widget.NewButton("▶", func() { state.pan(0.25) }),
	)

	state.panelColumn = container.NewVBox()
	for _, name := range state.order {
		state.panels = append(state.panels, makePanel(state, name))
	}
	state.relayoutPanels()

	top := container.NewVBox(fileLabel, state.timeLabel, state.deltaLabel, buttons)
	state.window.SetContent(container.NewBorder(top, nil, nil, nil, container.NewVScroll(state.panelColumn)))
}

func makePanel(state *uiState, name string) *wavePanel {
	cw, ch := uihelpers.ComputeChartDimensions(1200)
	p := &wavePanel{name: name, imgW: float32(cw), imgH: float32(ch)}
	p.img = canvas.NewImageFromImage(blank(cw, ch))
	p.img.FillMode = canvas.ImageFillStretch
	p.img.SetMinSize(fyne.NewSize(800, float32(ch)))
	p.overlay = newCursorOverlay(state, p)

	up := widget.NewButton("▲", func() { state.movePanel(name, -1) })
	down := widget.NewButton("▼", func() { state.movePanel(name, +1) })
	header := container.NewHBox(newDragHandle(state, name), layout.NewSpacer(), up, down)
	p.box = container.NewVBox(header, container.NewStack(p.img, p.overlay))
	return p
}

// dragHandle is the panel header grip: dragging it vertically moves the plot
// to whatever slot the pointer is released over, any number of positions away.
// The arrow buttons next to it stay as the keyboard-friendly one-slot path.
type dragHandle struct {
	widget.BaseWidget
	ui    *uiState
	name  string
	dragY float32
}

func newDragHandle(ui *uiState, name string) *dragHandle {
	d := &dragHandle{ui: ui, name: name}
	d.ExtendBaseWidget(d)
	return d
}

func (d *dragHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(widget.NewLabel("⇅ " + d.name))
}

func (d *dragHandle) Dragged(ev *fyne.DragEvent) {
	d.dragY += ev.Dragged.DY
}

func (d *dragHandle) DragEnd() {
	ix := d.ui.order.Index(d.name)
	var panelH float32
	if p := d.ui.panel(d.name); p != nil {
		panelH = p.box.MinSize().Height
	}
	if target := reorderTarget(ix, d.dragY, panelH); ix >= 0 && target != ix {
		d.ui.movePanelTo(d.name, target)
	}
	d.dragY = 0
}

var _ fyne.Draggable = (*dragHandle)(nil)

func (s *uiState) panel(name string) *wavePanel {
	for _, p := range s.panels {
		if p.name == name {
			return p
		}
	}
	return nil
}

// relayoutPanels rebuilds the panel column to match the current plot order.
func (s *uiState) relayoutPanels() {
	s.panelColumn.Objects = nil
	for _, name := range s.order {
		if p := s.panel(name); p != nil {
			s.panelColumn.Add(p.box)
		}
	}
	s.panelColumn.Refresh()
}

// movePanel shifts a plot up or down one slot; every other panel keeps its
// relative position.
func (s *uiState) movePanel(name string, delta int) {
	s.movePanelTo(name, s.order.Index(name)+delta)
}

// movePanelTo places a plot at an arbitrary slot (clamped to the column) and
// persists the new order.
func (s *uiState) movePanelTo(name string, target int) {
	if s.order.Index(name) < 0 || !s.order.MoveTo(name, target) {
		return
	}
	s.relayoutPanels()
	s.saveSession()
}

func (s *uiState) zoom(factor float64) {
	lo, hi := s.cursor.XRange()
	s.cursor.SetXRange(uihelpers.ZoomRange(lo, hi, factor))
	s.saveSession()
}

func (s *uiState) pan(frac float64) {
	lo, hi := s.cursor.XRange()
	s.cursor.SetXRange(uihelpers.PanRange(lo, hi, frac))
	s.saveSession()
}

func (s *uiState) jumpEdge(dir int) {
	if s.cursor.JumpToEdge(dir, s.order) {
		s.saveSession()
	}
}

// plainClick: set the cursor to the clicked time, flip the cursor lock and
// release all value labels, mirroring a scope-style probe click.
func (s *uiState) plainClick(t float64) {
	s.cursor.ToggleLock()
	s.labels.UnlockAll()
	s.cursor.SetTimePosition(t)
	s.saveSession()
}

// ctrlClick feeds the delta measurement machine with the snapped sample under
// the click on the given panel.
func (s *uiState) ctrlClick(panelName string, t float64) {
	ix := s.store.NearestIndex(t)
	if ix < 0 {
		return
	}
	st := s.store.TimeAt(ix)
	y, ok := s.store.ValueAt(panelName, ix)
	if !ok {
		return
	}
	if at, _, armed := s.delta.Anchor(); armed {
		s.deltaAnchorT = at
	}
	s.delta.CtrlClick(st, y)
	s.deltaLabel.SetText(deltaText(s))
	s.refreshOverlays()
}

func deltaText(s *uiState) string {
	if dt, dy, ok := s.delta.Result(); ok {
		return fmt.Sprintf("Δt=%.3fs Δy=%.3f", dt, dy)
	}
	if at, ay, ok := s.delta.Anchor(); ok {
		return fmt.Sprintf("Δ armed at t=%.3f y=%.3f", at, ay)
	}
	return "Δt=--- Δy=---"
}

// saveSession persists the committed view state: plot order, cursor time and
// x-range. Failures are logged inside SaveConfig and never interrupt the
// session; the next committed change retries.
func (s *uiState) saveSession() {
	cfg := session.Config{PlotOrder: append([]string(nil), s.order...)}
	if t, ok := s.cursor.TimePosition(); ok {
		cfg.CursorTime = &t
	}
	lo, hi := s.cursor.XRange()
	cfg.XRange = &[2]float64{lo, hi}
	_ = session.SaveConfig(s.configPath, cfg)
}

func (s *uiState) onCursorEvent(ev session.CursorEvent) {
	if ev.XLo != s.lastLo || ev.XHi != s.lastHi {
		s.lastLo, s.lastHi = ev.XLo, ev.XHi
		s.redrawCharts()
	}
	if ev.HasTime {
		if st, ok := s.cursor.SnappedTime(); ok {
			ix := s.store.NearestIndex(st)
			for _, p := range s.panels {
				if v, ok := s.store.ValueAt(p.name, ix); ok {
					s.labels.Track(p.name, st, v)
				}
			}
		}
	}
	s.updateReadout()
	s.refreshOverlays()
}

func (s *uiState) updateReadout() {
	st, ok := s.cursor.SnappedTime()
	if !ok {
		s.timeLabel.SetText("Time: -  Y: -")
		return
	}
	name := s.activePanel
	if name == "" && len(s.order) > 0 {
		name = s.order[0]
	}
	if v, ok := s.cursor.CurrentValueFor(name); ok {
		s.timeLabel.SetText(fmt.Sprintf("Time: %.6f  Y: %.6f (Var: %s)", st, v, name))
	} else {
		s.timeLabel.SetText(fmt.Sprintf("Time: %.6f  Y: -", st))
	}
}

func (s *uiState) refreshOverlays() {
	for _, p := range s.panels {
		p.overlay.Refresh()
	}
}

func (s *uiState) redrawCharts() {
	for _, p := range s.panels {
		p.img.Image = renderSeriesChart(s, p)
		p.img.Refresh()
	}
}

// renderSeriesChart draws one series over the shared x-window into a PNG and
// records the y-range the overlay needs for value mapping.
func renderSeriesChart(s *uiState, p *wavePanel) image.Image {
	lo, hi := s.cursor.XRange()
	sr := s.store.Series(p.name)
	n := s.store.Len()
	if sr == nil || n == 0 || hi <= lo {
		return blank(int(p.imgW), int(p.imgH))
	}

	// visible sample window, one extra sample each side so lines reach the
	// panel edges
	start := s.store.NearestIndex(lo)
	end := s.store.NearestIndex(hi)
	if start > 0 {
		start--
	}
	if end < n-1 {
		end++
	}

	stride := wavestore.DownsampleStride(end-start+1, 2*int(p.imgW))
	var xs, ys []float64
	for i := start; i <= end; i += stride {
		xs = append(xs, s.store.TimeAt(i))
		ys = append(ys, sr.Values[i])
	}
	if len(xs) < 2 {
		return stampText(blank(int(p.imgW), int(p.imgH)), "not enough samples in view")
	}

	p.yLo, p.yHi = uihelpers.ComputeYRange(ys)

	var xTicks, yTicks []chart.Tick
	for _, v := range uihelpers.BuildNumericTicks(lo, hi, 8) {
		xTicks = append(xTicks, chart.Tick{Value: v, Label: uihelpers.FormatTick(v)})
	}
	for _, v := range uihelpers.BuildNumericTicks(p.yLo, p.yHi, 5) {
		yTicks = append(yTicks, chart.Tick{Value: v, Label: uihelpers.FormatTick(v)})
	}

	ch := chart.Chart{
		Width:  int(p.imgW),
		Height: int(p.imgH),
		Background: chart.Style{
			Padding: chart.Box{Top: plotPadTop, Left: plotPadLeft, Right: plotPadRight, Bottom: plotPadBottom},
		},
		XAxis: chart.XAxis{
			Name:  "Time (s)",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: p.yLo, Max: p.yHi},
			Ticks: yTicks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("e8c547"),
					StrokeWidth: 1.4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		wavelog.Warnf("chart render failed for %s: %v; showing blank fallback", p.name, err)
		return blank(int(p.imgW), int(p.imgH))
	}
	img, err := png.Decode(&buf)
	if err != nil {
		wavelog.Warnf("chart decode failed for %s: %v; showing blank fallback", p.name, err)
		return blank(int(p.imgW), int(p.imgH))
	}
	return img
}
