package catalog

// shapes.go defines the primitive draw commands and the built-in asset
// recipes.  Every recipe is a pure function of the object's style
// overrides: same style in, same shape list out.  Offsets are relative to
// the object's center so rotation pivots correctly.

import (
	"math"
	"time"
)

// ShapeKind selects the primitive a Shape draws.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeEllipse
	ShapePolygon
)

// Point is a 2D offset used by polygon shapes.
type Point struct {
	X float64
	Y float64
}

// Shape is one primitive draw command inside a composite recipe.
// X/Y locate the primitive's center relative to the object origin;
// Rotation spins the primitive about its own center.
type Shape struct {
	Kind        ShapeKind
	X, Y        float64 // center offset from the object origin
	W, H        float64 // extents for rect/ellipse
	R           float64 // radius for circle
	Rotation    float64 // local rotation, degrees clockwise
	Points      []Point // vertices for polygon, relative to X/Y
	Fill        string  // hex fill; "" draws no fill
	Stroke      string  // hex stroke; "" draws no stroke
	StrokeWidth float64
}

// pick returns the override when set, otherwise the asset default.
func pick(override, def string) string {
	if override != "" {
		return override
	}
	return def
}

// roundTable builds a circular table ringed by evenly spaced chairs.
// Chair i sits at angle 2πi/n at tableRadius+chairGap from center,
// rotated to face inward.
func roundTable(seats int, tableRadius float64) func(st Style) []Shape {
	const chairGap = 14.0
	const chairSize = 16.0
	return func(st Style) []Shape {
		fill := pick(st.Fill, "#a1887f")
		out := make([]Shape, 0, seats+2)
		for i := 0; i < seats; i++ {
			ang := 2 * math.Pi * float64(i) / float64(seats)
			dist := tableRadius + chairGap
			out = append(out, Shape{
				Kind:     ShapeRect,
				X:        math.Cos(ang) * dist,
				Y:        math.Sin(ang) * dist,
				W:        chairSize,
				H:        chairSize,
				Rotation: ang*180/math.Pi + 90, // face the table
				Fill:     "#6d4c41",
			})
		}
		out = append(out,
			Shape{Kind: ShapeCircle, R: tableRadius, Fill: fill, Stroke: pick(st.Stroke, "#5d4037"), StrokeWidth: strokeWidthOr(st, 2)},
			Shape{Kind: ShapeCircle, R: tableRadius * 0.55, Fill: "#ffffff"}, // tablecloth center
		)
		return out
	}
}

func strokeWidthOr(st Style, def float64) float64 {
	if st.StrokeWidth > 0 {
		return st.StrokeWidth
	}
	return def
}

// stageRecipe approximates a raised platform with a front apron strip.
func stageRecipe(st Style) []Shape {
	fill := pick(st.Fill, "#455a64")
	return []Shape{
		{Kind: ShapeRect, W: 240, H: 120, Fill: fill, Stroke: pick(st.Stroke, "#263238"), StrokeWidth: strokeWidthOr(st, 2)},
		{Kind: ShapeRect, Y: 52, W: 240, H: 16, Fill: "#90a4ae"},
	}
}

// danceFloorRecipe draws an 8x8 checkerboard of alternating tiles.
func danceFloorRecipe(st Style) []Shape {
	const tiles = 8
	const tile = 22.0
	light := pick(st.Fill, "#e0e0e0")
	dark := "#9e9e9e"
	out := make([]Shape, 0, tiles*tiles)
	half := tile * tiles / 2
	for r := 0; r < tiles; r++ {
		for c := 0; c < tiles; c++ {
			fill := light
			if (r+c)%2 == 1 {
				fill = dark
			}
			out = append(out, Shape{
				Kind: ShapeRect,
				X:    -half + tile/2 + float64(c)*tile,
				Y:    -half + tile/2 + float64(r)*tile,
				W:    tile,
				H:    tile,
				Fill: fill,
			})
		}
	}
	return out
}

// planterRecipe is a pot with a foliage cluster on top.
func planterRecipe(st Style) []Shape {
	return []Shape{
		{Kind: ShapePolygon, Y: 14, Points: []Point{{-16, -8}, {16, -8}, {10, 16}, {-10, 16}}, Fill: "#8d6e63"},
		{Kind: ShapeCircle, Y: -10, R: 18, Fill: pick(st.Fill, "#388e3c")},
		{Kind: ShapeCircle, X: -12, Y: -2, R: 12, Fill: "#4caf50"},
		{Kind: ShapeCircle, X: 12, Y: -2, R: 12, Fill: "#2e7d32"},
	}
}

// poolRecipe is a rounded body of water with a deck rim, approximated by
// an ellipse inside a larger ellipse.
func poolRecipe(st Style) []Shape {
	return []Shape{
		{Kind: ShapeEllipse, W: 220, H: 140, Fill: "#bcaaa4"},
		{Kind: ShapeEllipse, W: 190, H: 112, Fill: pick(st.Fill, "#4fc3f7"), Stroke: pick(st.Stroke, "#0288d1"), StrokeWidth: strokeWidthOr(st, 2)},
	}
}

// builtinDefinitions registers the standard venue object set.  The bar is
// a fixed-image sprite and the animated bar a looping sprite, matching
// the asset pack served by the CDN; everything else is procedural.
func builtinDefinitions(assetBaseURL string) []*Definition {
	return []*Definition{
		{
			Type:     "bar",
			Kind:     KindImage,
			Label:    "Bar",
			ImageURL: assetBaseURL + "/assets/bar.png",
		},
		{
			Type:     "animated-bar",
			Kind:     KindAnimatedImage,
			Label:    "Bar (animated)",
			Width:    160,
			Height:   90,
			ImageURL: assetBaseURL + "/assets/bar-animated.gif",
			Refresh:  400 * time.Millisecond,
		},
		{
			Type:    "table-4",
			Kind:    KindComposite,
			Label:   "Table (4 seats)",
			Width:   116, // table diameter plus the chair ring
			Height:  116,
			Compose: roundTable(4, 28),
		},
		{
			Type:    "table-8",
			Kind:    KindComposite,
			Label:   "Table (8 seats)",
			Width:   140,
			Height:  140,
			Compose: roundTable(8, 40),
		},
		{
			Type:    "planter",
			Kind:    KindComposite,
			Label:   "Planter",
			Width:   44,
			Height:  60,
			Compose: planterRecipe,
		},
		{
			Type:    "pool",
			Kind:    KindComposite,
			Label:   "Pool",
			Width:   220,
			Height:  140,
			Compose: poolRecipe,
		},
		{
			Type:    "stage",
			Kind:    KindComposite,
			Label:   "Stage",
			Width:   240,
			Height:  136,
			Compose: stageRecipe,
		},
		{
			Type:    "dance-floor",
			Kind:    KindComposite,
			Label:   "Dance floor",
			Width:   176,
			Height:  176,
			Compose: danceFloorRecipe,
		},
	}
}
