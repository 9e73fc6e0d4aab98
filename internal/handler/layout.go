package handler // handler defines layout persistence endpoints

import (
	"context"  // context detaches event publishing from the request
	"errors"   // errors compares repository sentinels
	"net/http" // http defines status code constants
	"strconv"  // strconv parses URL parameters to numbers
	"strings"  // strings trims user-supplied text
	"time"     // time stamps the saved event

	"github.com/labstack/echo/v4" // echo supplies the request context
	"go.uber.org/zap"             // zap is the service logger

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/editor"
	"github.com/swords14/erclat-floorplan/internal/queue"
	"github.com/swords14/erclat-floorplan/internal/repository"
	"github.com/swords14/erclat-floorplan/internal/scene"
	queue_publisher "github.com/swords14/erclat-floorplan/internal/service"
)

// LayoutHandler bundles the dependencies of the layout endpoints.
type LayoutHandler struct {
	Repo    *repository.LayoutRepo // layout persistence
	Catalog *catalog.Catalog       // asset registry, for validation and rendering
	Log     *zap.Logger            // service logger
}

// NewLayoutHandler constructs a LayoutHandler and panics if a dependency
// is missing.
func NewLayoutHandler(repo *repository.LayoutRepo, cat *catalog.Catalog, log *zap.Logger) *LayoutHandler {
	if repo == nil || cat == nil || log == nil {
		panic("nil dependency passed to NewLayoutHandler")
	}
	return &LayoutHandler{Repo: repo, Catalog: cat, Log: log}
}

// layoutResponse is the wire shape of one stored layout.
type layoutResponse struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	LayoutJSON string `json:"layout_json"`
	UpdatedAt  string `json:"updated_at"`
}

func toResponse(l *repository.Layout) layoutResponse {
	return layoutResponse{ID: l.ID, Name: l.Name, LayoutJSON: l.LayoutJSON, UpdatedAt: l.UpdatedAt}
}

// ListLayouts handles GET /v1/layouts for the listing screen: id, name
// and freshness only, newest first.
func (h *LayoutHandler) ListLayouts(c echo.Context) error {
	summaries, err := h.Repo.List(c.Request().Context())
	if err != nil {
		h.Log.Error("list layouts failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	type item struct {
		ID        uint64 `json:"id"`
		Name      string `json:"name"`
		UpdatedAt string `json:"updated_at"`
	}
	out := make([]item, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, item{ID: s.ID, Name: s.Name, UpdatedAt: s.UpdatedAt})
	}
	return c.JSON(http.StatusOK, out)
}

// GetLayout handles GET /v1/layouts/:id.  A missing id is a 404: the
// editor treats it as fatal and falls back to the listing screen instead
// of opening an empty scene.
func (h *LayoutHandler) GetLayout(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	l, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		h.Log.Error("get layout failed", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toResponse(l))
}

// CreateLayout handles POST /v1/layouts.  The document is validated as a
// parseable object array before it is stored; objects with unknown type
// tags pass through untouched so forward-incompatible documents are not
// rejected.
func (h *LayoutHandler) CreateLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var body struct {
		Name       string `json:"name"`        // scene title, placeholder applied when empty
		LayoutJSON string `json:"layout_json"` // serialized object array
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	objs, dropped, err := scene.DecodeObjects(body.LayoutJSON)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "layout_json must be a JSON array"})
	}
	if dropped > 0 {
		h.Log.Warn("create layout dropped malformed objects", zap.Int("dropped", dropped))
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = editor.DefaultSceneName
	}
	l := &repository.Layout{OwnerID: ownerID, Name: name, LayoutJSON: body.LayoutJSON}
	if err := h.Repo.Create(c.Request().Context(), l); err != nil {
		h.Log.Error("create layout failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create layout"})
	}
	h.publishSaved(l, "create", len(objs))
	return c.JSON(http.StatusCreated, toResponse(l))
}

// UpdateLayout handles PUT /v1/layouts/:id.  Last save wins; there is no
// version check against concurrent editors.
func (h *LayoutHandler) UpdateLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		Name       string `json:"name"`
		LayoutJSON string `json:"layout_json"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	objs, dropped, err := scene.DecodeObjects(body.LayoutJSON)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "layout_json must be a JSON array"})
	}
	if dropped > 0 {
		h.Log.Warn("update layout dropped malformed objects",
			zap.Uint64("id", id), zap.Int("dropped", dropped))
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = editor.DefaultSceneName
	}
	l := &repository.Layout{ID: id, OwnerID: ownerID, Name: name, LayoutJSON: body.LayoutJSON}
	if err := h.Repo.Update(c.Request().Context(), l); err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		h.Log.Error("update layout failed", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not update layout"})
	}
	h.publishSaved(l, "update", len(objs))
	return c.JSON(http.StatusOK, toResponse(l))
}

// DeleteLayout handles DELETE /v1/layouts/:id.
func (h *LayoutHandler) DeleteLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Repo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		h.Log.Error("delete layout failed", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not delete layout"})
	}
	return c.NoContent(http.StatusNoContent)
}

// publishSaved emits a layout.saved event without blocking the request.
// Publishing failures are logged inside the publisher and ignored here.
func (h *LayoutHandler) publishSaved(l *repository.Layout, action string, objectCount int) {
	ev := queue.LayoutSavedEvent{
		LayoutID:    l.ID,
		OwnerID:     l.OwnerID,
		Name:        l.Name,
		Action:      action,
		ObjectCount: objectCount,
		SavedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		// Detached from the request context: the response must not wait
		// on the broker, and the publish may outlive the request.
		_ = queue_publisher.PublishLayoutSaved(context.Background(), ev)
	}()
}
