package handler

// render.go exposes the PNG export of a stored layout.  Export is a pure
// read of the rendered surface: it never writes to storage and a render
// problem cannot corrupt the layout.

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/swords14/erclat-floorplan/internal/geometry"
	"github.com/swords14/erclat-floorplan/internal/render"
	"github.com/swords14/erclat-floorplan/internal/repository"
	"github.com/swords14/erclat-floorplan/internal/scene"
)

const (
	defaultRenderWidth  = 1200
	defaultRenderHeight = 800
)

// RenderMaxDim caps requested surface dimensions; overridden from config
// at startup.
var RenderMaxDim = 4000

// RenderLayout handles GET /v1/layouts/:id/render and streams the layout
// as a PNG.  Optional w and h query parameters set the surface size in
// CSS pixels; scale overrides the export pixel density (default 2x).
// Objects with unknown type tags are skipped, never failing the export.
func (h *LayoutHandler) RenderLayout(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	l, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		h.Log.Error("render: load layout failed", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	objs, dropped, err := scene.DecodeObjects(l.LayoutJSON)
	if err != nil {
		// Stored document is unreadable at the top level; surface it as a
		// conflict rather than a broken image.
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "layout document is corrupt"})
	}
	if dropped > 0 {
		h.Log.Warn("render dropped malformed objects", zap.Uint64("id", id), zap.Int("dropped", dropped))
	}

	w := boundedDim(c.QueryParam("w"), defaultRenderWidth)
	hgt := boundedDim(c.QueryParam("h"), defaultRenderHeight)
	ratio := boundedScale(c.QueryParam("scale"))

	png, err := render.ExportPNG(
		scene.Scene{Name: l.Name, Objects: objs},
		h.Catalog,
		render.Options{Width: w, Height: hgt, PixelRatio: ratio},
	)
	if err != nil {
		h.Log.Error("render: encode failed", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render layout"})
	}

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", render.FileName(l.Name)))
	return c.Blob(http.StatusOK, "image/png", png)
}

// boundedDim parses a dimension query parameter, falling back to the
// default and clamping to [1, RenderMaxDim].
func boundedDim(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > RenderMaxDim {
		return RenderMaxDim
	}
	return n
}

// boundedScale parses the scale query parameter into an export pixel
// ratio.  Absent or unparseable values fall back to the default export
// density; out-of-range values clamp to the viewport zoom bounds.
func boundedScale(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return render.ExportPixelRatio
	}
	if v < geometry.MinScale {
		return geometry.MinScale
	}
	if v > geometry.MaxScale {
		return geometry.MaxScale
	}
	return v
}
