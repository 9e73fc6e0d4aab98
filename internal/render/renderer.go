package render // render rasterizes a scene under a viewport onto an image surface

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/geometry"
	"github.com/swords14/erclat-floorplan/internal/scene"
)

// Options controls the output surface.  PixelRatio upscales the raster
// without changing world coordinates (2 for print-quality export).
type Options struct {
	Width      int
	Height     int
	PixelRatio float64
	Background string // hex; "" uses the default canvas tone
}

const defaultBackground = "#fafafa"

var (
	labelFaceOnce sync.Once
	labelFace     font.Face
)

// labelFont lazily parses the bundled regular face used for object labels.
func labelFont() font.Face {
	labelFaceOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return // face stays nil; labels are skipped
		}
		labelFace = truetype.NewFace(f, &truetype.Options{Size: 13})
	})
	return labelFace
}

// Render draws the ordered object list onto a fresh surface.  It is a
// pure function of (scene, viewport, selectedID): no retained graph, no
// side effects beyond the returned image.  Objects whose type tag is not
// in the catalog, and image assets that are still loading or failed, are
// skipped silently; the rest of the scene always renders.
func Render(sc scene.Scene, vp geometry.Viewport, selectedID string, cat *catalog.Catalog, opt Options) image.Image {
	ratio := opt.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	bg := opt.Background
	if bg == "" {
		bg = defaultBackground
	}

	dc := gg.NewContext(int(float64(opt.Width)*ratio), int(float64(opt.Height)*ratio))
	dc.SetHexColor(bg)
	dc.Clear()
	if face := labelFont(); face != nil {
		dc.SetFontFace(face)
	}

	dc.Scale(ratio, ratio)
	dc.Translate(vp.OffsetX, vp.OffsetY)
	dc.Scale(vp.Scale, vp.Scale)

	for _, obj := range sc.Objects {
		def := cat.Resolve(obj.Type)
		if def == nil {
			continue // unknown tag: inert, never scene-fatal
		}
		dc.Push()
		dc.Translate(obj.X, obj.Y)
		dc.Rotate(gg.Radians(obj.Rotation))
		drawDefinition(dc, cat, def, obj)
		if obj.ID == selectedID {
			drawSelection(dc, cat, def)
		}
		drawLabel(dc, cat, def, obj)
		dc.Pop()
	}
	return dc.Image()
}

// drawDefinition dispatches on the definition's kind.  The context is
// already positioned at the object center with its rotation applied.
func drawDefinition(dc *gg.Context, cat *catalog.Catalog, def *catalog.Definition, obj scene.Object) {
	switch def.Kind {
	case catalog.KindComposite:
		shapes := def.Compose(catalog.Style{
			Fill:        obj.Fill,
			Stroke:      obj.Stroke,
			StrokeWidth: obj.StrokeWidth,
		})
		for _, s := range shapes {
			drawShape(dc, s)
		}
	case catalog.KindImage:
		img, _, _, ok := cat.Image(def)
		if !ok {
			return // pending or failed: zero footprint
		}
		dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
	case catalog.KindAnimatedImage:
		img, natW, natH, ok := cat.Image(def)
		if !ok || natW == 0 || natH == 0 {
			return
		}
		// Declared dimensions win over the decoded frame's natural size.
		dc.Push()
		dc.Scale(def.Width/natW, def.Height/natH)
		dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
		dc.Pop()
	}
}

// drawShape renders one composite primitive relative to the object center.
func drawShape(dc *gg.Context, s catalog.Shape) {
	dc.Push()
	dc.Translate(s.X, s.Y)
	if s.Rotation != 0 {
		dc.Rotate(gg.Radians(s.Rotation))
	}
	switch s.Kind {
	case catalog.ShapeRect:
		dc.DrawRectangle(-s.W/2, -s.H/2, s.W, s.H)
	case catalog.ShapeCircle:
		dc.DrawCircle(0, 0, s.R)
	case catalog.ShapeEllipse:
		dc.DrawEllipse(0, 0, s.W/2, s.H/2)
	case catalog.ShapePolygon:
		for i, p := range s.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
	}
	if s.Fill != "" {
		dc.SetHexColor(s.Fill)
		if s.Stroke != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if s.Stroke != "" {
		dc.SetHexColor(s.Stroke)
		w := s.StrokeWidth
		if w <= 0 {
			w = 1
		}
		dc.SetLineWidth(w)
		dc.Stroke()
	}
	dc.ClearPath()
	dc.Pop()
}

// drawSelection outlines the selected object with a dashed box just
// outside its footprint.  No footprint (image still loading) means no
// highlight; selection state itself is unaffected.
func drawSelection(dc *gg.Context, cat *catalog.Catalog, def *catalog.Definition) {
	w, h, ok := cat.Footprint(def)
	if !ok {
		return
	}
	const pad = 5.0
	dc.Push()
	dc.SetHexColor("#1976d2")
	dc.SetLineWidth(1.5)
	dc.SetDash(6, 4)
	dc.DrawRectangle(-w/2-pad, -h/2-pad, w+2*pad, h+2*pad)
	dc.Stroke()
	dc.SetDash()
	dc.Pop()
}

// drawLabel writes the object's label under its footprint.
func drawLabel(dc *gg.Context, cat *catalog.Catalog, def *catalog.Definition, obj scene.Object) {
	if obj.Label == "" || labelFont() == nil {
		return
	}
	_, h, ok := cat.Footprint(def)
	if !ok {
		return
	}
	dc.SetHexColor("#424242")
	dc.DrawStringAnchored(obj.Label, 0, h/2+14, 0.5, 0.5)
}
