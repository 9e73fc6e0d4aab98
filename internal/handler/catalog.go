package handler

// catalog.go serves the asset registry to the object-library UI: the
// draggable entries carry {type, label}, and default dimensions let the
// library draw sensible previews.

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetCatalog handles GET /v1/catalog and lists every registered asset
// definition.  The set is static, defined at build time.
func (h *LayoutHandler) GetCatalog(c echo.Context) error {
	type item struct {
		Type   string  `json:"type"`
		Label  string  `json:"label"`
		Kind   string  `json:"kind"`
		Width  float64 `json:"width"`  // 0 for images until their sprite loads
		Height float64 `json:"height"` // same rules as width
	}
	defs := h.Catalog.Definitions()
	out := make([]item, 0, len(defs))
	for _, d := range defs {
		w, hh, _ := h.Catalog.Footprint(d)
		out = append(out, item{
			Type:   d.Type,
			Label:  d.Label,
			Kind:   d.Kind.String(),
			Width:  w,
			Height: hh,
		})
	}
	return c.JSON(http.StatusOK, out)
}
