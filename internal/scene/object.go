package scene // scene holds the in-memory floor-plan document and its objects

import (
	"encoding/json" // json preserves unknown wire fields through round trips
	"fmt"           // fmt builds the timestamped object identifier
	"math"          // math normalizes rotation angles
	"time"          // time seeds the identifier with a creation timestamp

	"github.com/google/uuid" // uuid supplies the random identifier suffix
)

// Object is one placed instance on the floor plan.  Position is the
// world-space location of the object's visual center so rotation pivots
// symmetrically.  Extra carries wire fields this version does not model;
// they survive a save/reload cycle untouched.
//
// Fields:
//  ID          – unique within a scene, stable for the object's lifetime.
//  Type        – catalog tag (bar, table-4, …); immutable after creation.
//  X, Y        – world coordinates of the object's center.
//  Rotation    – degrees, always kept in [0, 360), clockwise.
//  Label       – user-editable display text.
//  Fill        – hex color override; ignored by image-backed assets.
//  Stroke      – optional outline color override.
//  StrokeWidth – optional outline width override.
//  ShadowBlur  – optional shadow radius override.
type Object struct {
	ID          string                     // object identifier
	Type        string                     // catalog type tag
	X           float64                    // world x of center
	Y           float64                    // world y of center
	Rotation    float64                    // degrees in [0,360)
	Label       string                     // display text
	Fill        string                     // hex fill override ("" = asset default)
	Stroke      string                     // hex stroke override ("" = none)
	StrokeWidth float64                    // stroke width override (0 = none)
	ShadowBlur  float64                    // shadow blur override (0 = none)
	Extra       map[string]json.RawMessage // unrecognized wire fields, preserved verbatim
}

// NewObjectID generates a fresh object identifier from the creation
// timestamp plus a random suffix.  Identifiers are never reused.
func NewObjectID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NormalizeRotation maps an arbitrary degree value (raw deltas included)
// into [0, 360).  Negative inputs wrap upward, so -10 becomes 350.
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// wire field names modeled by this version.  Anything else read from a
// document lands in Extra and is written back on save.
var knownKeys = map[string]bool{
	"id": true, "type": true, "x": true, "y": true,
	"rotation": true, "label": true, "fill": true,
	"stroke": true, "strokeWidth": true, "shadowBlur": true,
}

// MarshalJSON writes the modeled fields plus any preserved unknown fields.
// Optional style overrides are omitted when unset to keep documents small.
func (o Object) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(o.Extra)+10)
	for k, v := range o.Extra {
		if !knownKeys[k] { // modeled fields always win over stale extras
			m[k] = v
		}
	}
	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		m[key] = raw
		return nil
	}
	if err := put("id", o.ID); err != nil {
		return nil, err
	}
	if err := put("type", o.Type); err != nil {
		return nil, err
	}
	if err := put("x", o.X); err != nil {
		return nil, err
	}
	if err := put("y", o.Y); err != nil {
		return nil, err
	}
	if err := put("rotation", NormalizeRotation(o.Rotation)); err != nil {
		return nil, err
	}
	if err := put("label", o.Label); err != nil {
		return nil, err
	}
	if o.Fill != "" {
		if err := put("fill", o.Fill); err != nil {
			return nil, err
		}
	}
	if o.Stroke != "" {
		if err := put("stroke", o.Stroke); err != nil {
			return nil, err
		}
	}
	if o.StrokeWidth != 0 {
		if err := put("strokeWidth", o.StrokeWidth); err != nil {
			return nil, err
		}
	}
	if o.ShadowBlur != 0 {
		if err := put("shadowBlur", o.ShadowBlur); err != nil {
			return nil, err
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the modeled fields and stashes everything else in
// Extra.  Rotation is normalized on the way in so documents written by
// older tools never surface out-of-range angles.
func (o *Object) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	take := func(key string, dst any) error {
		raw, ok := m[key]
		if !ok {
			return nil
		}
		delete(m, key)
		return json.Unmarshal(raw, dst)
	}
	if err := take("id", &o.ID); err != nil {
		return err
	}
	if err := take("type", &o.Type); err != nil {
		return err
	}
	if err := take("x", &o.X); err != nil {
		return err
	}
	if err := take("y", &o.Y); err != nil {
		return err
	}
	if err := take("rotation", &o.Rotation); err != nil {
		return err
	}
	if err := take("label", &o.Label); err != nil {
		return err
	}
	if err := take("fill", &o.Fill); err != nil {
		return err
	}
	if err := take("stroke", &o.Stroke); err != nil {
		return err
	}
	if err := take("strokeWidth", &o.StrokeWidth); err != nil {
		return err
	}
	if err := take("shadowBlur", &o.ShadowBlur); err != nil {
		return err
	}
	o.Rotation = NormalizeRotation(o.Rotation)
	if len(m) > 0 {
		o.Extra = m
	}
	return nil
}
