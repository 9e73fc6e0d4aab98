package editor

// gesture.go is the continuous-input state machine.  Two drag gestures
// exist: moving an object and panning the stage.  Which one runs is
// decided at pointer-down by what the pointer hit; an object always wins
// over the stage.  Wheel zoom is independent of both and applied
// synchronously per tick.  Pan and zoom only touch the viewport, never
// object coordinates.

import (
	"math"

	"github.com/swords14/erclat-floorplan/internal/scene"
)

type dragKind int

const (
	dragNone dragKind = iota
	dragObject
	dragPan
)

type dragState struct {
	kind     dragKind
	objectID string
	// grab offset keeps the object from jumping to the pointer
	grabDX, grabDY float64
	// pan anchors
	startOffsetX, startOffsetY float64
	startSX, startSY           float64
}

// PointerDown begins a gesture at a screen position.  Hitting an object
// selects it and starts an object drag; hitting empty canvas clears the
// selection and starts a stage pan.
func (s *Session) PointerDown(sx, sy float64) {
	wx, wy := s.vp.ScreenToWorld(sx, sy)
	if id := s.hitTest(wx, wy); id != "" {
		o := s.sc.Find(id)
		s.selectedID = id
		s.drag = dragState{
			kind:     dragObject,
			objectID: id,
			grabDX:   o.X - wx,
			grabDY:   o.Y - wy,
		}
		return
	}
	s.selectedID = ""
	s.drag = dragState{
		kind:         dragPan,
		startOffsetX: s.vp.OffsetX,
		startOffsetY: s.vp.OffsetY,
		startSX:      sx,
		startSY:      sy,
	}
}

// PointerMove advances the active gesture.  Object drags write the new
// world position into the scene on every move; pans update the viewport
// offset on every move.
func (s *Session) PointerMove(sx, sy float64) {
	switch s.drag.kind {
	case dragObject:
		wx, wy := s.vp.ScreenToWorld(sx, sy)
		x := wx + s.drag.grabDX
		y := wy + s.drag.grabDY
		s.sc = s.sc.Update(s.drag.objectID, scene.Patch{X: &x, Y: &y})
	case dragPan:
		s.vp = s.vp.PanTo(
			s.drag.startOffsetX+(sx-s.drag.startSX),
			s.drag.startOffsetY+(sy-s.drag.startSY),
		)
	}
}

// PointerUp ends the active gesture.  The last PointerMove already
// committed the final position, so release only resets the state.
func (s *Session) PointerUp() {
	s.drag = dragState{}
}

// Wheel applies one zoom step about the pointer position.  A negative
// delta (wheel up) zooms in.  There is no debounce; every tick lands.
func (s *Session) Wheel(sx, sy, deltaY float64) {
	s.vp = s.vp.ZoomAt(sx, sy, deltaY < 0)
}

// pointInRotatedRect tests whether a world point lies inside a rotated
// rectangle by transforming the point into the rectangle's local frame.
func pointInRotatedRect(px, py, cx, cy, w, h, rotDeg float64) bool {
	rad := -rotDeg * math.Pi / 180
	dx := px - cx
	dy := py - cy
	lx := dx*math.Cos(rad) - dy*math.Sin(rad)
	ly := dx*math.Sin(rad) + dy*math.Cos(rad)
	return math.Abs(lx) <= w/2 && math.Abs(ly) <= h/2
}
