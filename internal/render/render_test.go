package render_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/geometry"
	"github.com/swords14/erclat-floorplan/internal/render"
	"github.com/swords14/erclat-floorplan/internal/scene"
)

func newCatalog() *catalog.Catalog {
	return catalog.New(catalog.NewSpriteLoader(zap.NewNop()), "")
}

func demoScene() scene.Scene {
	var s scene.Scene
	s, _ = s.Add("table-4", 150, 150, "Head table")
	s, _ = s.Add("dance-floor", 400, 300, "Dance floor")
	s, id := s.Add("stage", 600, 120, "Stage")
	r := 30.0
	fill := "#c62828"
	s = s.Update(id, scene.Patch{Rotation: &r, Fill: &fill})
	return s
}

func TestRender_ProducesSurfaceOfRequestedSize(t *testing.T) {
	img := render.Render(demoScene(), geometry.NewViewport(), "", newCatalog(),
		render.Options{Width: 320, Height: 200})
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestRender_PixelRatioScalesSurface(t *testing.T) {
	img := render.Render(demoScene(), geometry.NewViewport(), "", newCatalog(),
		render.Options{Width: 320, Height: 200, PixelRatio: 2})
	require.Equal(t, 640, img.Bounds().Dx())
	require.Equal(t, 400, img.Bounds().Dy())
}

func TestRender_UnknownTypeAndPendingSpriteAreSkipped(t *testing.T) {
	s := demoScene()
	s, _ = s.Add("hologram", 50, 50, "H") // unregistered tag
	s, _ = s.Add("bar", 80, 80, "Bar")    // sprite never fetched: pending

	require.NotPanics(t, func() {
		render.Render(s, geometry.NewViewport(), "", newCatalog(),
			render.Options{Width: 200, Height: 200})
	})
}

func TestRender_SelectionHighlightDoesNotPanic(t *testing.T) {
	s := demoScene()
	sel := s.Objects[0].ID
	require.NotPanics(t, func() {
		render.Render(s, geometry.Viewport{Scale: 1.5, OffsetX: -40, OffsetY: 25}, sel,
			newCatalog(), render.Options{Width: 300, Height: 300})
	})
}

func TestExportPNG_EncodesAtExportDensity(t *testing.T) {
	data, err := render.ExportPNG(demoScene(), newCatalog(), render.Options{Width: 400, Height: 250})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 500, img.Bounds().Dy())
}

func TestExportPNG_HonorsExplicitPixelRatio(t *testing.T) {
	data, err := render.ExportPNG(demoScene(), newCatalog(),
		render.Options{Width: 200, Height: 100, PixelRatio: 0.5})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 50, img.Bounds().Dy())
}

func TestExportPNG_EmptySceneStillEncodes(t *testing.T) {
	data, err := render.ExportPNG(scene.Scene{}, newCatalog(), render.Options{Width: 100, Height: 100})
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "Summer-Gala.png", render.FileName("Summer Gala!"))
	require.Equal(t, "floor-plan.png", render.FileName(""))
	require.Equal(t, "floor-plan.png", render.FileName("  ***  "))
	require.Equal(t, "Q3_offsite.png", render.FileName("Q3_offsite"))
}
