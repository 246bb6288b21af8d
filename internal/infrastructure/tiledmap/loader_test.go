package tiledmap

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `{
  "width": 4, "height": 2, "tilewidth": 16, "tileheight": 16,
  "orientation": "orthogonal",
  "tilesets": [{"firstgid": 1, "name": "tiles", "columns": 88, "tilecount": 3872, "image": "tiles.png"}],
  "layers": [
    {"type": "tilelayer", "name": "Platforms", "width": 4, "height": 2, "data": [0,0,0,0, 1,2,2147483651,0]},
    {"type": "group", "name": "deco", "layers": [
      {"type": "tilelayer", "name": "Foreground", "width": 4, "height": 2, "visible": false, "data": [0,0,0,0,0,0,0,0]}
    ]},
    {"type": "objectgroup", "name": "objects", "objects": [
      {"id": 1, "name": "start", "type": "playerSpawn", "x": 8, "y": 8},
      {"id": 2, "name": "", "x": 24, "y": 8, "width": 16, "height": 16,
       "properties": [{"name": "type", "value": "pickups"}, {"name": "sprite", "value": "gem"}]}
    ]}
  ]
}`

func TestLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/level1.json": {Data: []byte(sampleMap)},
		"maps/broken.json": {Data: []byte(`{"width": `)},
		"maps/b64.json": {Data: []byte(`{"width":1,"height":1,"tilewidth":16,"tileheight":16,
			"layers":[{"type":"tilelayer","name":"x","width":1,"height":1,"encoding":"base64","data":"AAAA"}]}`)},
		"maps/short.json": {Data: []byte(`{"width":2,"height":1,"tilewidth":16,"tileheight":16,
			"layers":[{"type":"tilelayer","name":"x","width":2,"height":1,"data":[1]}]}`)},
	}
	loader := NewFSLoader(fsys)

	t.Run("decodes layers and objects", func(t *testing.T) {
		m, err := loader.Load("maps/level1.json")
		require.NoError(t, err)

		assert.Equal(t, 64, m.WidthInPixels())
		assert.Equal(t, 32, m.HeightInPixels())
		require.Len(t, m.TileLayers, 2)
		require.Len(t, m.Tilesets, 1)
		assert.Equal(t, 88, m.Tilesets[0].Columns)

		platforms := m.TileLayer("Platforms")
		require.NotNil(t, platforms)
		assert.True(t, platforms.Visible)
		tile, ok := platforms.TileAt(1, 1)
		require.True(t, ok)
		assert.Equal(t, 2, tile.Index)
		tile, ok = platforms.TileAt(2, 1)
		require.True(t, ok)
		assert.Equal(t, 3, tile.Index, "flip flag should be masked")

		fg := m.TileLayer("Foreground")
		require.NotNil(t, fg, "group layers should be flattened")
		assert.False(t, fg.Visible)

		objects := m.ObjectLayer("objects")
		require.NotNil(t, objects)
		require.Len(t, objects.Objects, 2)
		assert.Equal(t, "playerSpawn", objects.Objects[0].Type)
		assert.Equal(t, "pickups", objects.Objects[1].Type)
		sprite, _ := objects.Objects[1].Attr().String("sprite")
		assert.Equal(t, "gem", sprite)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load("maps/nope.json")
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := loader.Load("maps/broken.json")
		assert.ErrorContains(t, err, "failed to parse map")
	})

	t.Run("encoded data rejected", func(t *testing.T) {
		_, err := loader.Load("maps/b64.json")
		assert.ErrorContains(t, err, "unsupported layer encoding")
	})

	t.Run("short data rejected", func(t *testing.T) {
		_, err := loader.Load("maps/short.json")
		assert.ErrorContains(t, err, "want 2")
	})
}

func TestConvert_RejectsBadMaps(t *testing.T) {
	_, err := Convert(&MapFile{Width: 1, Height: 1})
	assert.Error(t, err)

	_, err = Convert(&MapFile{Width: 1, Height: 1, TileWidth: 16, TileHeight: 16, Infinite: true})
	assert.Error(t, err)
}
