package editor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/editor"
	"github.com/swords14/erclat-floorplan/internal/repository"
	"github.com/swords14/erclat-floorplan/internal/scene"
)

// fakeStore is an in-memory editor.Store for tests.
type fakeStore struct {
	layouts map[uint64]*repository.Layout
	nextID  uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{layouts: make(map[uint64]*repository.Layout)}
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (*repository.Layout, error) {
	l, ok := f.layouts[id]
	if !ok {
		return nil, repository.ErrLayoutNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, l *repository.Layout) error {
	f.nextID++
	l.ID = f.nextID
	cp := *l
	f.layouts[l.ID] = &cp
	return nil
}

func (f *fakeStore) Update(_ context.Context, l *repository.Layout) error {
	cur, ok := f.layouts[l.ID]
	if !ok || cur.OwnerID != l.OwnerID {
		return repository.ErrLayoutNotFound
	}
	cp := *l
	f.layouts[l.ID] = &cp
	return nil
}

func newSession(t *testing.T) *editor.Session {
	t.Helper()
	cat := catalog.New(catalog.NewSpriteLoader(zap.NewNop()), "")
	return editor.NewSession(cat, 7, zap.NewNop())
}

func TestDrop_AddsAtDropPointAndSelects(t *testing.T) {
	s := newSession(t)

	id := s.Drop("table-4", 100, 100)
	require.NotEmpty(t, id)
	require.Equal(t, id, s.SelectedID())

	o := s.Scene().Find(id)
	require.Equal(t, 100.0, o.X)
	require.Equal(t, 100.0, o.Y)
	require.Equal(t, "Table (4 seats)", o.Label, "drop uses the asset's default label")
}

func TestDrop_TransformsThroughViewport(t *testing.T) {
	s := newSession(t)

	// pan the stage by (50, 30) first
	s.PointerDown(500, 400)
	s.PointerMove(550, 430)
	s.PointerUp()

	id := s.Drop("stage", 100, 100)
	o := s.Scene().Find(id)
	require.InDelta(t, 50.0, o.X, 1e-9)
	require.InDelta(t, 70.0, o.Y, 1e-9)
}

func TestDrop_UnknownTypeIsIgnored(t *testing.T) {
	s := newSession(t)
	require.Empty(t, s.Drop("hologram", 0, 0))
	require.Empty(t, s.Scene().Objects)
}

func TestClickAt_SelectionTransitions(t *testing.T) {
	s := newSession(t)
	id := s.Drop("table-4", 200, 200)

	s.ClickAt(1000, 1000) // empty canvas
	require.Empty(t, s.SelectedID())

	s.ClickAt(205, 195) // inside the table footprint
	require.Equal(t, id, s.SelectedID())
}

func TestClickAt_TopmostWins(t *testing.T) {
	s := newSession(t)
	bottom := s.Drop("dance-floor", 300, 300)
	top := s.Drop("table-4", 300, 300)

	s.ClickAt(300, 300)
	require.Equal(t, top, s.SelectedID())
	require.NotEqual(t, bottom, s.SelectedID())
}

func TestClickAt_RotatedObjectHit(t *testing.T) {
	s := newSession(t)
	id := s.Drop("stage", 0, 0) // 240x136
	r := 90.0
	s.UpdateSelected(scene.Patch{Rotation: &r})

	// after 90° the long axis is vertical: (0,100) hits, (100,0) misses
	s.ClickAt(0, 100)
	require.Equal(t, id, s.SelectedID())
	s.ClickAt(100, 0)
	require.Empty(t, s.SelectedID())
}

func TestDelete_ClearsSelectionOnlyForSelected(t *testing.T) {
	s := newSession(t)
	a := s.Drop("table-4", 100, 100)
	b := s.Drop("pool", 500, 500)

	s.ClickAt(100, 100)
	require.Equal(t, a, s.SelectedID())

	s.Delete(b)
	require.Equal(t, a, s.SelectedID(), "deleting another object keeps the selection")

	s.Delete(a)
	require.Empty(t, s.SelectedID(), "deleting the selected object clears the selection")
	require.Empty(t, s.Scene().Objects)
}

func TestDuplicateSelected_CopyBecomesSelection(t *testing.T) {
	s := newSession(t)
	id := s.Drop("table-8", 100, 100)

	newID := s.DuplicateSelected()
	require.NotEmpty(t, newID)
	require.NotEqual(t, id, newID)
	require.Equal(t, newID, s.SelectedID())

	clone := s.Scene().Find(newID)
	require.Equal(t, 120.0, clone.X)
	require.Equal(t, 120.0, clone.Y)
}

func TestRotateSelected_NormalizesRawDelta(t *testing.T) {
	s := newSession(t)
	s.Drop("bar", 0, 0) // no footprint needed for rotation
	s.RotateSelected(370)
	require.Equal(t, 10.0, s.Scene().Objects[0].Rotation)
}

func TestObjectDrag_MovesWithGrabOffset(t *testing.T) {
	s := newSession(t)
	id := s.Drop("table-4", 200, 200)

	s.PointerDown(210, 190) // grab slightly off-center
	s.PointerMove(310, 290)
	s.PointerUp()

	o := s.Scene().Find(id)
	require.InDelta(t, 300.0, o.X, 1e-9)
	require.InDelta(t, 300.0, o.Y, 1e-9)
}

func TestPan_NeverTouchesObjectCoordinates(t *testing.T) {
	s := newSession(t)
	id := s.Drop("stage", 400, 400)

	s.PointerDown(900, 900) // empty area: stage pan
	s.PointerMove(700, 650)
	s.PointerMove(123, 456)
	s.PointerUp()

	o := s.Scene().Find(id)
	require.Equal(t, 400.0, o.X)
	require.Equal(t, 400.0, o.Y)
	require.NotZero(t, s.Viewport().OffsetX)
}

func TestWheel_ZoomsAboutCursor(t *testing.T) {
	s := newSession(t)
	before := s.Viewport()
	wx0, wy0 := before.ScreenToWorld(320, 240)

	s.Wheel(320, 240, -1) // wheel up = zoom in
	after := s.Viewport()
	require.Greater(t, after.Scale, before.Scale)

	sx, sy := after.WorldToScreen(wx0, wy0)
	require.InDelta(t, 320, sx, 1e-9)
	require.InDelta(t, 240, sy, 1e-9)
}

func TestOpenSession_NotFoundIsFatal(t *testing.T) {
	cat := catalog.New(catalog.NewSpriteLoader(zap.NewNop()), "")
	_, err := editor.OpenSession(context.Background(), newFakeStore(), cat, 42, 7, zap.NewNop())
	require.ErrorIs(t, err, repository.ErrLayoutNotFound)
}

func TestSave_CreateThenUpdate(t *testing.T) {
	store := newFakeStore()
	s := newSession(t)
	s.Rename("Summer Gala")
	s.Drop("table-4", 10, 10)

	id, err := s.Save(context.Background(), store)
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, id, s.LayoutID())

	s.Drop("pool", 50, 50)
	id2, err := s.Save(context.Background(), store)
	require.NoError(t, err)
	require.Equal(t, id, id2, "second save updates, not creates")
	require.Len(t, store.layouts, 1)
}

func TestSave_EmptyNameGetsPlaceholder(t *testing.T) {
	store := newFakeStore()
	s := newSession(t)
	id, err := s.Save(context.Background(), store)
	require.NoError(t, err)
	require.Equal(t, editor.DefaultSceneName, store.layouts[id].Name)
}

// Full editing scenario: add, rotate, duplicate, save, reload.
func TestEndToEnd_SaveLoadReproducesScene(t *testing.T) {
	store := newFakeStore()
	cat := catalog.New(catalog.NewSpriteLoader(zap.NewNop()), "")
	s := editor.NewSession(cat, 7, zap.NewNop())

	id := s.Drop("table-4", 100, 100)
	o := s.Scene().Find(id)
	require.Equal(t, "Table (4 seats)", o.Label)
	require.Equal(t, 0.0, o.Rotation)

	r := 45.0
	s.UpdateSelected(scene.Patch{Rotation: &r})
	dupID := s.DuplicateSelected()
	require.Len(t, s.Scene().Objects, 2)

	dup := s.Scene().Find(dupID)
	require.Equal(t, 120.0, dup.X)
	require.Equal(t, 120.0, dup.Y)
	require.Equal(t, 45.0, dup.Rotation)

	layoutID, err := s.Save(context.Background(), store)
	require.NoError(t, err)

	reopened, err := editor.OpenSession(context.Background(), store, cat, layoutID, 7, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, s.Scene().Objects, reopened.Scene().Objects)
	require.Empty(t, reopened.SelectedID(), "selection is session state, not document state")
}

func TestUnknownType_InertButPreservedThroughSave(t *testing.T) {
	store := newFakeStore()
	cat := catalog.New(catalog.NewSpriteLoader(zap.NewNop()), "")
	require.NoError(t, store.Create(context.Background(), &repository.Layout{
		OwnerID: 7,
		Name:    "Legacy",
		LayoutJSON: `[{"id":"x1","type":"hologram","x":9,"y":9,"rotation":0,"label":"H","futureField":123},
		              {"id":"x2","type":"stage","x":0,"y":0,"rotation":0,"label":"S"}]`,
	}))

	s, err := editor.OpenSession(context.Background(), store, cat, 1, 7, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, s.Scene().Objects, 2)

	// the unknown object cannot be hit, the known one can
	s.ClickAt(9, 9)
	require.Equal(t, "x2", s.SelectedID(), "stage occupies the origin area; hologram is inert")

	_, err = s.Save(context.Background(), store)
	require.NoError(t, err)
	require.True(t, strings.Contains(store.layouts[1].LayoutJSON, "futureField"),
		"unknown fields must survive a save cycle")
	require.True(t, strings.Contains(store.layouts[1].LayoutJSON, "hologram"))
}
