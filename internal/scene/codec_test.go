package scene_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swords14/erclat-floorplan/internal/scene"
)

func TestCodec_RoundTripEmpty(t *testing.T) {
	enc, err := scene.EncodeObjects(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", enc)

	objs, dropped, err := scene.DecodeObjects(enc)
	require.NoError(t, err)
	require.Zero(t, dropped)
	require.Empty(t, objs)
}

func TestCodec_RoundTripAllFields(t *testing.T) {
	in := []scene.Object{
		{
			ID: "1700000000000-ab12cd34", Type: "table-4",
			X: 100, Y: 200, Rotation: 45,
			Label: "Head table", Fill: "#aabbcc",
			Stroke: "#112233", StrokeWidth: 2, ShadowBlur: 4,
		},
		{
			ID: "1700000000001-ef56ab78", Type: "dance-floor",
			X: -30.5, Y: 0, Rotation: 0, Label: "Dance floor",
		},
	}

	enc, err := scene.EncodeObjects(in)
	require.NoError(t, err)

	out, dropped, err := scene.DecodeObjects(enc)
	require.NoError(t, err)
	require.Zero(t, dropped)
	require.Equal(t, in, out)
}

func TestCodec_UnknownFieldsSurviveSaveReload(t *testing.T) {
	doc := `[{"id":"a1","type":"table-4","x":1,"y":2,"rotation":0,"label":"T",
	          "customFlag":true,"vendor":{"note":"keep me"}}]`

	objs, dropped, err := scene.DecodeObjects(doc)
	require.NoError(t, err)
	require.Zero(t, dropped)
	require.Len(t, objs, 1)
	require.Contains(t, objs[0].Extra, "customFlag")
	require.Contains(t, objs[0].Extra, "vendor")

	enc, err := scene.EncodeObjects(objs)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(enc), &raw))
	require.Equal(t, true, raw[0]["customFlag"])
	require.Equal(t, map[string]any{"note": "keep me"}, raw[0]["vendor"])
}

func TestCodec_UnknownTypeIsPreservedNotRejected(t *testing.T) {
	doc := `[{"id":"a","type":"hologram","x":5,"y":6,"rotation":30,"label":"H"},
	         {"id":"b","type":"stage","x":0,"y":0,"rotation":0,"label":"S"}]`

	objs, dropped, err := scene.DecodeObjects(doc)
	require.NoError(t, err)
	require.Zero(t, dropped)
	require.Len(t, objs, 2)
	require.Equal(t, "hologram", objs[0].Type)

	enc, err := scene.EncodeObjects(objs)
	require.NoError(t, err)
	out, _, err := scene.DecodeObjects(enc)
	require.NoError(t, err)
	require.Equal(t, objs, out)
}

func TestCodec_MalformedElementIsDroppedAlone(t *testing.T) {
	doc := `[{"id":"a","type":"bar","x":0,"y":0,"rotation":0,"label":"A"},
	         42,
	         {"id":"b","type":"pool","x":1,"y":1,"rotation":0,"label":"B"}]`

	objs, dropped, err := scene.DecodeObjects(doc)
	require.NoError(t, err)
	require.Equal(t, 1, dropped)
	require.Len(t, objs, 2)
	require.Equal(t, "a", objs[0].ID)
	require.Equal(t, "b", objs[1].ID)
}

func TestCodec_TopLevelGarbageIsFatal(t *testing.T) {
	_, _, err := scene.DecodeObjects(`{"not":"an array"}`)
	require.ErrorIs(t, err, scene.ErrInvalidLayout)
}

func TestCodec_DecodeNormalizesRotation(t *testing.T) {
	doc := `[{"id":"a","type":"bar","x":0,"y":0,"rotation":725,"label":"A"}]`
	objs, _, err := scene.DecodeObjects(doc)
	require.NoError(t, err)
	require.Equal(t, 5.0, objs[0].Rotation)
}
