package editor // editor owns one interactive floor-plan editing session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/geometry"
	"github.com/swords14/erclat-floorplan/internal/repository"
	"github.com/swords14/erclat-floorplan/internal/scene"
)

// DefaultSceneName is stored when the user saves a scene without naming it.
const DefaultSceneName = "Untitled floor plan"

// Store is the persistence surface the session needs: load one stored
// layout, create a new one, update an existing one.  *repository.LayoutRepo
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	GetByID(ctx context.Context, id uint64) (*repository.Layout, error)
	Create(ctx context.Context, l *repository.Layout) error
	Update(ctx context.Context, l *repository.Layout) error
}

// Session is one active editing session.  It exclusively owns its Scene
// and Viewport; the selection is held as an id and looked up by value on
// every use, never as a direct object reference, because each mutation
// replaces the object list.
type Session struct {
	log *zap.Logger
	cat *catalog.Catalog

	sc         scene.Scene
	vp         geometry.Viewport
	selectedID string

	layoutID uint64 // 0 until the first successful save of a new scene
	ownerID  uint64
	drag     dragState
}

// NewSession starts a session on a fresh, empty scene ("new layout").
func NewSession(cat *catalog.Catalog, ownerID uint64, log *zap.Logger) *Session {
	return &Session{
		log:     log,
		cat:     cat,
		vp:      geometry.NewViewport(),
		ownerID: ownerID,
	}
}

// OpenSession hydrates a session from a stored layout.  A missing id is
// fatal: the editor cannot proceed without a scene, so the error is
// returned and no session is created.  Unknown object types inside the
// document are kept in the scene untouched; only unparseable elements
// are dropped, and that is logged.
func OpenSession(ctx context.Context, store Store, cat *catalog.Catalog, layoutID, ownerID uint64, log *zap.Logger) (*Session, error) {
	l, err := store.GetByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	objs, dropped, err := scene.DecodeObjects(l.LayoutJSON)
	if err != nil {
		return nil, fmt.Errorf("layout %d: %w", layoutID, err)
	}
	if dropped > 0 {
		log.Warn("dropped malformed layout objects",
			zap.Uint64("layout_id", layoutID), zap.Int("dropped", dropped))
	}
	return &Session{
		log:      log,
		cat:      cat,
		sc:       scene.Scene{Name: l.Name, Objects: objs},
		vp:       geometry.NewViewport(),
		layoutID: layoutID,
		ownerID:  ownerID,
	}, nil
}

// Scene returns the current scene snapshot.
func (s *Session) Scene() scene.Scene { return s.sc }

// Viewport returns the current pan/zoom state.
func (s *Session) Viewport() geometry.Viewport { return s.vp }

// SelectedID returns the selected object id, or "" when nothing is
// selected.
func (s *Session) SelectedID() string { return s.selectedID }

// LayoutID returns the stored layout id, 0 for a not-yet-saved scene.
func (s *Session) LayoutID() uint64 { return s.layoutID }

// Rename sets the scene title.
func (s *Session) Rename(name string) { s.sc.Name = name }

// Drop places a new object of the given catalog type at a screen
// position (the drag-and-drop payload carries the type tag).  The drop
// point is transformed to world coordinates, the object gets the asset's
// default label, and it becomes the selection.  An unregistered tag is
// ignored: the library should never offer one, and a stale payload must
// not corrupt the scene.
func (s *Session) Drop(typeTag string, sx, sy float64) string {
	def := s.cat.Resolve(typeTag)
	if def == nil {
		s.log.Warn("drop with unknown asset type", zap.String("type", typeTag))
		return ""
	}
	wx, wy := s.vp.ScreenToWorld(sx, sy)
	next, id := s.sc.Add(typeTag, wx, wy, def.Label)
	s.sc = next
	s.selectedID = id
	return id
}

// ClickAt resolves a click: the topmost hit object becomes the selection,
// a miss clears it.
func (s *Session) ClickAt(sx, sy float64) {
	wx, wy := s.vp.ScreenToWorld(sx, sy)
	s.selectedID = s.hitTest(wx, wy)
}

// hitTest returns the id of the topmost object containing the world
// point, or "".  The object list order is the z-order, so the scan runs
// back-to-front.  Objects with an unknown type or a still-loading image
// have no footprint and cannot be hit.
func (s *Session) hitTest(wx, wy float64) string {
	for i := len(s.sc.Objects) - 1; i >= 0; i-- {
		o := s.sc.Objects[i]
		def := s.cat.Resolve(o.Type)
		if def == nil {
			continue
		}
		w, h, ok := s.cat.Footprint(def)
		if !ok {
			continue
		}
		if pointInRotatedRect(wx, wy, o.X, o.Y, w, h, o.Rotation) {
			return o.ID
		}
	}
	return ""
}

// UpdateSelected applies a partial edit (label, fill, rotation slider,
// stroke overrides) to the selected object.  No selection is a no-op.
func (s *Session) UpdateSelected(p scene.Patch) {
	if s.selectedID == "" {
		return
	}
	s.sc = s.sc.Update(s.selectedID, p)
}

// RotateSelected applies a raw rotation delta in degrees; the stored
// value is normalized into [0,360).
func (s *Session) RotateSelected(delta float64) {
	if s.selectedID == "" {
		return
	}
	o := s.sc.Find(s.selectedID)
	if o == nil {
		return
	}
	r := o.Rotation + delta
	s.sc = s.sc.Update(s.selectedID, scene.Patch{Rotation: &r})
}

// DuplicateSelected clones the selected object; the clone becomes the
// selection.  Returns the clone id, "" when nothing was selected.
func (s *Session) DuplicateSelected() string {
	if s.selectedID == "" {
		return ""
	}
	next, id := s.sc.Duplicate(s.selectedID)
	s.sc = next
	if id != "" {
		s.selectedID = id
	}
	return id
}

// Delete removes an object by id.  Deleting the selected object clears
// the selection; deleting any other object leaves it untouched.
func (s *Session) Delete(id string) {
	s.sc = s.sc.Remove(id)
	if id == s.selectedID {
		s.selectedID = ""
	}
}

// DeleteSelected removes the selected object, if any.
func (s *Session) DeleteSelected() {
	if s.selectedID != "" {
		s.Delete(s.selectedID)
	}
}

// Save persists the scene.  The first save of a new scene creates a
// stored layout and remembers its id; later saves update it.  Saving is
// always user-triggered.  On failure the in-memory scene is untouched
// and remains editable, so a retry loses nothing.
func (s *Session) Save(ctx context.Context, store Store) (uint64, error) {
	layoutJSON, err := scene.EncodeObjects(s.sc.Objects)
	if err != nil {
		return 0, err
	}
	name := s.sc.Name
	if strings.TrimSpace(name) == "" {
		name = DefaultSceneName
	}
	l := &repository.Layout{
		ID:         s.layoutID,
		OwnerID:    s.ownerID,
		Name:       name,
		LayoutJSON: layoutJSON,
	}
	if s.layoutID == 0 {
		if err := store.Create(ctx, l); err != nil {
			return 0, err
		}
		s.layoutID = l.ID
	} else {
		if err := store.Update(ctx, l); err != nil {
			return 0, err
		}
	}
	return l.ID, nil
}
