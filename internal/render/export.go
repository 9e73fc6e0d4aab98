package render

// export.go turns the rendered surface into downloadable PNG bytes.  The
// export path is a pure read of the render output: it never touches the
// persistence layer and cannot fail the editing session.

import (
	"bytes"
	"image/png"
	"strings"

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/geometry"
	"github.com/swords14/erclat-floorplan/internal/scene"
)

// ExportPixelRatio upscales exports for print-quality output.
const ExportPixelRatio = 2.0

// fallbackFileName is used when the scene has no usable name.
const fallbackFileName = "floor-plan"

// ExportPNG rasterizes the scene under an identity viewport (pan/zoom is
// a screen affordance, not document state) and returns the encoded PNG
// bytes.  An unset PixelRatio falls back to the print export density.
func ExportPNG(sc scene.Scene, cat *catalog.Catalog, opt Options) ([]byte, error) {
	if opt.PixelRatio <= 0 {
		opt.PixelRatio = ExportPixelRatio
	}
	img := Render(sc, geometry.NewViewport(), "", cat, opt)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName derives a safe download filename from the scene name.  Unsafe
// characters are dropped, spaces become dashes, and an empty result falls
// back to a fixed literal.
func FileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = fallbackFileName
	}
	return out + ".png"
}
