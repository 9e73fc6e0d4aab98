package scene

// codec.go implements the wire format for stored layouts.  A layout row
// carries the object list as a JSON-encoded array string ("layoutJson" in
// the document shape) which is re-parsed on load.  Decoding is defensive
// per element: one malformed entry is dropped without discarding the rest
// of the array, and well-formed entries with unknown fields or unknown
// type tags are preserved verbatim.

import (
	"encoding/json"
	"errors"
)

// ErrInvalidLayout is returned when the stored document is not a JSON
// array at the top level.  Per-element damage never produces this error.
var ErrInvalidLayout = errors.New("layout document is not a JSON array")

// EncodeObjects serializes the object list to the stored layoutJson
// string.  An empty or nil list encodes as "[]", never "null".
func EncodeObjects(objs []Object) (string, error) {
	if objs == nil {
		objs = []Object{}
	}
	b, err := json.Marshal(objs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeObjects parses a stored layoutJson string back into the object
// list.  Elements that fail to parse are skipped; the dropped count is
// returned so callers can log it.  A top-level parse failure returns
// ErrInvalidLayout because the session cannot proceed without a scene.
func DecodeObjects(layoutJSON string) ([]Object, int, error) {
	if layoutJSON == "" {
		return []Object{}, 0, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(layoutJSON), &raw); err != nil {
		return nil, 0, ErrInvalidLayout
	}
	out := make([]Object, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		var o Object
		if err := json.Unmarshal(r, &o); err != nil {
			dropped++
			continue
		}
		out = append(out, o)
	}
	return out, dropped, nil
}
