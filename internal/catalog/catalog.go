package catalog // catalog is the static registry of renderable asset definitions

import (
	"context"
	"image"
	"sort"
	"time"
)

// Kind discriminates the three shape families an asset definition can be.
type Kind int

const (
	// KindComposite draws a fixed-size group of primitives.
	KindComposite Kind = iota
	// KindImage draws a bitmap fetched by URL; its natural size becomes
	// the footprint once loaded.
	KindImage
	// KindAnimatedImage draws a bitmap whose frame is re-fetched on a
	// loop; the footprint comes from the definition, not the resource.
	KindAnimatedImage
)

// String returns the wire name of the kind, used by the catalog endpoint.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAnimatedImage:
		return "animated-image"
	default:
		return "composite"
	}
}

// Style carries the per-object visual overrides a recipe may honor.
// Zero values mean "use the asset's defaults".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Definition maps one type tag to its render recipe and default metadata.
// Definitions are built at startup and never mutated, so they are safe to
// share across every rendered object.
type Definition struct {
	Type     string                 // catalog tag, unique
	Kind     Kind                   // shape family
	Label    string                 // default display label for new objects
	Width    float64                // footprint width (composite/animated); 0 for images until loaded
	Height   float64                // footprint height, same rules as Width
	Compose  func(st Style) []Shape // composite recipe; pure function of style
	ImageURL string                 // resource URL for image kinds
	Refresh  time.Duration          // frame refresh interval for animated kinds
}

// Catalog resolves type tags to definitions and answers footprint and
// image queries that depend on sprite load state.
type Catalog struct {
	defs   map[string]*Definition
	loader *SpriteLoader
}

// New builds the catalog with the built-in asset set.  Image URLs are
// rooted at assetBaseURL ("" keeps the bundled relative paths, which only
// make sense for tests that never fetch).
func New(loader *SpriteLoader, assetBaseURL string) *Catalog {
	c := &Catalog{defs: make(map[string]*Definition), loader: loader}
	for _, d := range builtinDefinitions(assetBaseURL) {
		c.defs[d.Type] = d
	}
	return c
}

// Resolve returns the definition registered for a tag, or nil.  Unknown
// tags are a legitimate state (forward-incompatible documents): callers
// skip rendering and hit-testing for them and must not fail the scene.
func (c *Catalog) Resolve(tag string) *Definition {
	return c.defs[tag]
}

// Definitions lists all registered definitions ordered by tag, for the
// object-library endpoint.
func (c *Catalog) Definitions() []*Definition {
	out := make([]*Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Footprint reports the bounding-box size of a definition.  For image
// assets still loading (or failed), ok is false: a zero footprint is the
// designed transient state, not an error.
func (c *Catalog) Footprint(d *Definition) (w, h float64, ok bool) {
	switch d.Kind {
	case KindComposite, KindAnimatedImage:
		return d.Width, d.Height, true
	case KindImage:
		if c.loader == nil {
			return 0, 0, false
		}
		_, w, h, ok := c.loader.Image(d.ImageURL)
		return w, h, ok
	}
	return 0, 0, false
}

// Image returns the current decoded bitmap for an image-backed definition
// together with the natural size of the decoded frame.  ok is false while
// the resource is pending or after it failed.
func (c *Catalog) Image(d *Definition) (img image.Image, natW, natH float64, ok bool) {
	if c.loader == nil {
		return nil, 0, 0, false
	}
	return c.loader.Image(d.ImageURL)
}

// Prefetch kicks off the asynchronous fetch of every image-backed asset
// and starts the refresh loop for animated ones.  Objects placed before a
// fetch completes render with an empty footprint until it does.
func (c *Catalog) Prefetch(ctx context.Context) {
	if c.loader == nil {
		return
	}
	for _, d := range c.defs {
		switch d.Kind {
		case KindImage:
			c.loader.Fetch(d.ImageURL)
		case KindAnimatedImage:
			c.loader.Fetch(d.ImageURL)
			go c.loader.RefreshLoop(ctx, d.ImageURL, d.Refresh)
		}
	}
}
