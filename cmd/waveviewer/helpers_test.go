package main

import (
	"math"
	"testing"
)

func TestXToTimeRoundTrip(t *testing.T) {
	const viewW, imgW = float32(1000), float32(1200)
	lo, hi := 2.0, 8.0
	for _, tm := range []float64{2.0, 3.7, 5.0, 7.99, 8.0} {
		x := timeToX(tm, viewW, imgW, lo, hi)
		back := xToTime(x, viewW, imgW, lo, hi)
		if math.Abs(back-tm) > 1e-6 {
			t.Fatalf("round trip for t=%g drifted to %g", tm, back)
		}
	}
}

func TestXToTimeClampsToWindow(t *testing.T) {
	const viewW, imgW = float32(800), float32(800)
	lo, hi := 0.0, 10.0
	if got := xToTime(-50, viewW, imgW, lo, hi); got != lo {
		t.Fatalf("left of plot must clamp to lo, got %g", got)
	}
	if got := xToTime(5000, viewW, imgW, lo, hi); got != hi {
		t.Fatalf("right of plot must clamp to hi, got %g", got)
	}
}

func TestTimeToXMonotonic(t *testing.T) {
	const viewW, imgW = float32(900), float32(1100)
	lo, hi := 1.0, 4.0
	prev := float32(-1)
	for tm := lo; tm <= hi; tm += 0.25 {
		x := timeToX(tm, viewW, imgW, lo, hi)
		if x <= prev {
			t.Fatalf("timeToX not increasing at t=%g: %g <= %g", tm, x, prev)
		}
		prev = x
	}
}

func TestValueToYOrientation(t *testing.T) {
	const viewH, imgH = float32(300), float32(300)
	yLo, yHi := 0.0, 1.0
	top := valueToY(1.0, viewH, imgH, yLo, yHi)
	bottom := valueToY(0.0, viewH, imgH, yLo, yHi)
	if !(top < bottom) {
		t.Fatalf("larger values must map higher on screen: top=%g bottom=%g", top, bottom)
	}
	mid := valueToY(0.5, viewH, imgH, yLo, yHi)
	if !(top < mid && mid < bottom) {
		t.Fatalf("midpoint must sit between extremes: %g %g %g", top, mid, bottom)
	}
}

func TestReorderTarget(t *testing.T) {
	const panelH = float32(220)
	cases := []struct {
		current int
		dragDY  float32
		want    int
	}{
		{2, 0, 2},              // no travel, no move
		{2, 40, 2},             // under half a panel, stays put
		{2, 230, 3},            // one panel down
		{1, 2 * panelH, 3},     // two panels down in one drag
		{3, -panelH, 2},        // one panel up
		{4, -3*panelH - 20, 1}, // several panels up
		{0, -500, -2},          // past the top; MoveTo clamps the slot
	}
	for _, tc := range cases {
		if got := reorderTarget(tc.current, tc.dragDY, panelH); got != tc.want {
			t.Fatalf("reorderTarget(%d, %g) = %d, want %d", tc.current, tc.dragDY, got, tc.want)
		}
	}
	if got := reorderTarget(3, 999, 0); got != 3 {
		t.Fatalf("zero panel height must not move, got %d", got)
	}
}

func TestBlankSize(t *testing.T) {
	img := blank(320, 200)
	b := img.Bounds()
	if b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("blank size wrong: %v", b)
	}
}

func TestStampTextKeepsBounds(t *testing.T) {
	img := stampText(blank(400, 200), "cursor 1.250s")
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("stamped image changed size: %v", b)
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("short.csv", 60); got != "short.csv" {
		t.Fatalf("short path should pass through, got %q", got)
	}
	long := "/very/long/path/that/keeps/going/and/going/monitor_log.csv"
	got := truncatePath(long, 20)
	if len(got) != 20 {
		t.Fatalf("truncated length = %d, want 20 (%q)", len(got), got)
	}
}
