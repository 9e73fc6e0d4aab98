package scene

import "encoding/json"

// Scene is the full floor plan being edited: a title plus the ordered
// object list.  List order is the z-order for rendering and hit-testing
// (later = on top).  All mutation operations return a new Scene with a
// fresh object slice instead of mutating in place, so callers can hold
// earlier snapshots safely.
type Scene struct {
	Name    string   // user-facing title; "" is allowed and given a placeholder at save
	Objects []Object // insertion-ordered placed objects
}

// Patch describes a partial update to one object.  Nil fields are left
// unchanged.  Type and ID are deliberately absent: both are immutable
// after creation.
type Patch struct {
	X           *float64
	Y           *float64
	Rotation    *float64 // raw value or accumulated delta; normalized on apply
	Label       *string
	Fill        *string
	Stroke      *string
	StrokeWidth *float64
	ShadowBlur  *float64
}

// DuplicateOffset is the world-space displacement applied to a duplicated
// object so the copy is visibly distinct from the original.
const DuplicateOffset = 20.0

// Add appends a new object of the given catalog type at a world position
// and returns the new scene plus the generated object id.  Rotation
// starts at zero.  An empty label falls back to the type tag; callers
// with catalog access usually pass the asset's default label instead.
func (s Scene) Add(typeTag string, x, y float64, label string) (Scene, string) {
	if label == "" {
		label = typeTag
	}
	obj := Object{
		ID:    NewObjectID(),
		Type:  typeTag,
		X:     x,
		Y:     y,
		Label: label,
	}
	out := make([]Object, 0, len(s.Objects)+1)
	out = append(out, s.Objects...)
	out = append(out, obj)
	return Scene{Name: s.Name, Objects: out}, obj.ID
}

// Update replaces the object matching id with a patched copy.  When the
// id is not present the scene is returned unchanged.  A patched rotation
// is normalized into [0,360) before storage.
func (s Scene) Update(id string, p Patch) Scene {
	idx := s.indexOf(id)
	if idx < 0 {
		return s
	}
	out := make([]Object, len(s.Objects))
	copy(out, s.Objects)
	o := out[idx]
	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Rotation != nil {
		o.Rotation = NormalizeRotation(*p.Rotation)
	}
	if p.Label != nil {
		o.Label = *p.Label
	}
	if p.Fill != nil {
		o.Fill = *p.Fill
	}
	if p.Stroke != nil {
		o.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		o.StrokeWidth = *p.StrokeWidth
	}
	if p.ShadowBlur != nil {
		o.ShadowBlur = *p.ShadowBlur
	}
	out[idx] = o
	return Scene{Name: s.Name, Objects: out}
}

// Remove filters out the object matching id.  Removing an absent id is a
// no-op.  Z-order of the remaining objects is preserved.
func (s Scene) Remove(id string) Scene {
	idx := s.indexOf(id)
	if idx < 0 {
		return s
	}
	out := make([]Object, 0, len(s.Objects)-1)
	out = append(out, s.Objects[:idx]...)
	out = append(out, s.Objects[idx+1:]...)
	return Scene{Name: s.Name, Objects: out}
}

// Duplicate clones the object matching id with a fresh identifier and a
// fixed positional offset, appends it at the end (topmost), and returns
// the new scene plus the clone's id so the caller can select it.  When
// the id is not found the scene is returned unchanged and the returned
// id is empty.
func (s Scene) Duplicate(id string) (Scene, string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, ""
	}
	clone := s.Objects[idx]
	clone.ID = NewObjectID()
	clone.X += DuplicateOffset
	clone.Y += DuplicateOffset
	if len(clone.Extra) > 0 {
		// the value copy would otherwise share the map with the original
		extra := make(map[string]json.RawMessage, len(clone.Extra))
		for k, v := range clone.Extra {
			extra[k] = v
		}
		clone.Extra = extra
	}
	out := make([]Object, 0, len(s.Objects)+1)
	out = append(out, s.Objects...)
	out = append(out, clone)
	return Scene{Name: s.Name, Objects: out}, clone.ID
}

// Find returns the object matching id, or nil.  The pointer addresses a
// copy-safe lookup only; callers must not retain it across mutations
// because every mutation replaces the object slice.
func (s Scene) Find(id string) *Object {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &s.Objects[idx]
}

func (s Scene) indexOf(id string) int {
	for i := range s.Objects {
		if s.Objects[i].ID == id {
			return i
		}
	}
	return -1
}
