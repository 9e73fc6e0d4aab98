package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swords14/erclat-floorplan/internal/geometry"
)

func TestScreenWorldRoundTrip(t *testing.T) {
	v := geometry.Viewport{Scale: 1.7, OffsetX: -120, OffsetY: 45}

	wx, wy := v.ScreenToWorld(333, -87)
	sx, sy := v.WorldToScreen(wx, wy)
	require.InDelta(t, 333, sx, 1e-9)
	require.InDelta(t, -87, sy, 1e-9)
}

func TestZoomAt_KeepsCursorPointFixed(t *testing.T) {
	cases := []struct {
		name   string
		v      geometry.Viewport
		sx, sy float64
		in     bool
	}{
		{"identity zoom in", geometry.NewViewport(), 400, 300, true},
		{"identity zoom out", geometry.NewViewport(), 400, 300, false},
		{"panned and zoomed", geometry.Viewport{Scale: 2.3, OffsetX: -310, OffsetY: 95}, 12, 740, true},
		{"negative offsets", geometry.Viewport{Scale: 0.4, OffsetX: -50, OffsetY: -60}, 0, 0, false},
		{"cursor far out", geometry.Viewport{Scale: 1.1, OffsetX: 20, OffsetY: 20}, 5000, 5000, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wx0, wy0 := tc.v.ScreenToWorld(tc.sx, tc.sy)
			v2 := tc.v.ZoomAt(tc.sx, tc.sy, tc.in)
			sx1, sy1 := v2.WorldToScreen(wx0, wy0)
			require.InDelta(t, tc.sx, sx1, 1e-9)
			require.InDelta(t, tc.sy, sy1, 1e-9)
		})
	}
}

func TestZoomAt_StepFactor(t *testing.T) {
	v := geometry.NewViewport()
	v2 := v.ZoomAt(100, 100, true)
	require.InDelta(t, geometry.ZoomStep, v2.Scale, 1e-9)
	v3 := v2.ZoomAt(100, 100, false)
	require.InDelta(t, 1.0, v3.Scale, 1e-9)
}

func TestZoomAt_ClampsScale(t *testing.T) {
	v := geometry.Viewport{Scale: geometry.MaxScale, OffsetX: 10, OffsetY: 10}
	v2 := v.ZoomAt(200, 200, true)
	require.Equal(t, geometry.MaxScale, v2.Scale)
	// the fixed-point property must still hold at the bound
	wx0, wy0 := v.ScreenToWorld(200, 200)
	sx1, sy1 := v2.WorldToScreen(wx0, wy0)
	require.InDelta(t, 200, sx1, 1e-9)
	require.InDelta(t, 200, sy1, 1e-9)

	v = geometry.Viewport{Scale: geometry.MinScale}
	v2 = v.ZoomAt(0, 0, false)
	require.Equal(t, geometry.MinScale, v2.Scale)
}

func TestZoomAt_ManyStepsNeverLeaveBounds(t *testing.T) {
	v := geometry.NewViewport()
	for i := 0; i < 200; i++ {
		v = v.ZoomAt(640, 360, false)
	}
	require.GreaterOrEqual(t, v.Scale, geometry.MinScale)
	for i := 0; i < 400; i++ {
		v = v.ZoomAt(640, 360, true)
	}
	require.LessOrEqual(t, v.Scale, geometry.MaxScale)
}

func TestPan_DoesNotTouchScale(t *testing.T) {
	v := geometry.Viewport{Scale: 3.2}
	v = v.PanTo(55, -20)
	require.Equal(t, 3.2, v.Scale)
	require.Equal(t, 55.0, v.OffsetX)
	require.Equal(t, -20.0, v.OffsetY)

	v = v.PanBy(5, 5)
	require.Equal(t, 3.2, v.Scale)
	require.Equal(t, 60.0, v.OffsetX)
	require.Equal(t, -15.0, v.OffsetY)
}
