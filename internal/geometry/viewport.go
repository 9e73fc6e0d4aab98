package geometry // geometry converts between screen and world coordinates

// Viewport is the transient pan/zoom state of one canvas: a multiplicative
// zoom scale and a pixel offset locating the world origin on screen.  It
// is never persisted; every editing session starts at identity.
type Viewport struct {
	Scale   float64 // zoom factor, clamped to [MinScale, MaxScale]
	OffsetX float64 // screen x of world origin
	OffsetY float64 // screen y of world origin
}

const (
	// ZoomStep is the per-wheel-tick scale multiplier.
	ZoomStep = 1.05
	// MinScale and MaxScale bound the zoom so repeated zoom-out cannot
	// collapse the scale toward zero.
	MinScale = 0.1
	MaxScale = 8.0
)

// NewViewport returns the identity viewport: scale 1, origin at (0,0).
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// ScreenToWorld maps a pointer/drop position into scene coordinates under
// the current pan and zoom.
func (v Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.OffsetX) / v.Scale, (sy - v.OffsetY) / v.Scale
}

// WorldToScreen is the inverse of ScreenToWorld.
func (v Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*v.Scale + v.OffsetX, wy*v.Scale + v.OffsetY
}

// ZoomAt applies one zoom step centered on a screen point, keeping the
// world point under that screen point visually fixed.  The compensating
// offset is computed from the clamped scale, so the fixed-point property
// holds exactly even when the step lands on a bound.
func (v Viewport) ZoomAt(sx, sy float64, in bool) Viewport {
	s1 := v.Scale * ZoomStep
	if !in {
		s1 = v.Scale / ZoomStep
	}
	s1 = clampScale(s1)
	wx, wy := v.ScreenToWorld(sx, sy)
	return Viewport{
		Scale:   s1,
		OffsetX: sx - wx*s1,
		OffsetY: sy - wy*s1,
	}
}

// PanTo replaces the offset with an absolute screen position.  Drag-to-pan
// calls this on every move event; there is no inertia.
func (v Viewport) PanTo(offsetX, offsetY float64) Viewport {
	return Viewport{Scale: v.Scale, OffsetX: offsetX, OffsetY: offsetY}
}

// PanBy shifts the offset by a screen-space delta.
func (v Viewport) PanBy(dx, dy float64) Viewport {
	return Viewport{Scale: v.Scale, OffsetX: v.OffsetX + dx, OffsetY: v.OffsetY + dy}
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
