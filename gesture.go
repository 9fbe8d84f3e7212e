package main

import (
	"math"
	"time"
)

// Gesture classification constants.
const (
	// Movement beyond this many pixels disqualifies a press from being a
	// tap and cancels a pending long-press.
	gestureMoveThreshold = 10.0

	// A completed drag only suppresses the tap when the configured
	// long-press duration is at least this long. Near-zero configurations
	// arm drag mode on almost any press, which would otherwise swallow
	// every legitimate tap. Tunable, not load-bearing.
	dragSuppressMinDuration = 50 * time.Millisecond
)

// GestureEvent is the classification of a completed pointer cycle.
type GestureEvent int

const (
	GestureNone GestureEvent = iota
	GestureTapLeft
	GestureTapRight
	GestureConsumed // pointer-up spent on closing the settings panel
)

type gesturePhase int

const (
	gestureIdle gesturePhase = iota
	gesturePressed
	gestureDragging
)

// GestureInterpreter classifies a pointer-down/move/up sequence into
// tap-left, tap-right, or a pan drag. One cycle at a time:
// Idle -> Pressed -> {Dragging | disqualified} -> released back to Idle.
// Only used in paginated modes; vertical mode routes pointer input to
// scrolling instead.
type GestureInterpreter struct {
	longPress time.Duration

	phase     gesturePhase
	armed     bool // long-press timer pending (zoom > 100 at press time)
	disqual   bool // moved past threshold before the timer fired
	deadline  time.Time
	startX    float64
	startY    float64
	panStartX float64
	panStartY float64

	now func() time.Time
}

// NewGestureInterpreter creates an interpreter with the given long-press
// duration. The clock is injectable for tests.
func NewGestureInterpreter(longPress time.Duration) *GestureInterpreter {
	return &GestureInterpreter{
		longPress: longPress,
		now:       time.Now,
	}
}

// SetLongPress updates the configured long-press duration (0-200ms per UI).
func (g *GestureInterpreter) SetLongPress(d time.Duration) {
	g.longPress = d
}

// Press starts a cycle. pan is the viewport pan at press time; zoom decides
// whether the long-press-to-drag timer arms at all (never at or below 100%).
func (g *GestureInterpreter) Press(x, y, panX, panY, zoom float64) {
	g.phase = gesturePressed
	g.armed = zoom > 100
	g.disqual = false
	g.startX, g.startY = x, y
	g.panStartX, g.panStartY = panX, panY
	if g.armed {
		g.deadline = g.now().Add(g.longPress)
	}
}

// Move processes pointer movement. While dragging it returns the new pan
// (1:1 with the pointer delta from drag start, no damping) and true.
// Otherwise movement past the threshold cancels any pending long-press:
// the gesture is disqualified and will produce neither a tap nor a drag.
func (g *GestureInterpreter) Move(x, y float64) (panX, panY float64, dragging bool) {
	switch g.phase {
	case gestureDragging:
		return g.panStartX + (x - g.startX), g.panStartY + (y - g.startY), true
	case gesturePressed:
		if g.displacement(x, y) > gestureMoveThreshold {
			g.armed = false
			g.disqual = true
		}
	}
	return 0, 0, false
}

// Tick fires the long-press timer. Call once per frame while the pointer is
// held; returns true on the frame the press transitions into dragging.
func (g *GestureInterpreter) Tick() bool {
	if g.phase != gesturePressed || !g.armed {
		return false
	}
	if g.now().Before(g.deadline) {
		return false
	}
	g.phase = gestureDragging
	g.armed = false
	return true
}

// Release ends the cycle and classifies it. A pointer-up while the settings
// panel is open closes the panel and consumes the gesture entirely. A tap
// splits the viewport at the horizontal midpoint: left half previous, right
// half next.
func (g *GestureInterpreter) Release(x, y, viewportW float64, panelOpen bool) GestureEvent {
	wasDragging := g.phase == gestureDragging
	moved := g.disqual || g.displacement(x, y) > gestureMoveThreshold
	g.Cancel()

	if panelOpen {
		return GestureConsumed
	}
	if moved {
		return GestureNone
	}
	if wasDragging && g.longPress >= dragSuppressMinDuration {
		return GestureNone
	}
	if x < viewportW/2 {
		return GestureTapLeft
	}
	return GestureTapRight
}

// Cancel discards the in-flight cycle: the long-press timer is cleared and
// any pending pan state dropped. Called on page, chapter and mode changes.
func (g *GestureInterpreter) Cancel() {
	g.phase = gestureIdle
	g.armed = false
	g.disqual = false
}

// Dragging reports whether the current cycle is in pan-follow mode.
func (g *GestureInterpreter) Dragging() bool {
	return g.phase == gestureDragging
}

// Active reports whether a pointer cycle is in flight.
func (g *GestureInterpreter) Active() bool {
	return g.phase != gestureIdle
}

func (g *GestureInterpreter) displacement(x, y float64) float64 {
	dx := x - g.startX
	dy := y - g.startY
	return math.Hypot(dx, dy)
}
