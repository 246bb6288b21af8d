package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilehop/internal/infrastructure/config"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"images/player.png": {Data: encodePNG(t, 120, 90)},
		"images/gem.png":    {Data: encodePNG(t, 16, 16)},
		"images/bad.png":    {Data: []byte("not a png")},
	}

	t.Run("loads manifest", func(t *testing.T) {
		reg, err := Load(context.Background(), fsys, []config.AssetConfig{
			{Key: "player", Path: "images/player.png", FrameWidth: 40, FrameHeight: 45},
			{Key: "gem", Path: "images/gem.png"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())

		player, ok := reg.Get("player")
		require.True(t, ok)
		assert.Equal(t, 6, player.Frames())
		assert.Equal(t, image.Rect(40, 0, 80, 45), player.FrameRect(1))
		assert.Equal(t, image.Rect(0, 45, 40, 90), player.FrameRect(3))
		assert.Equal(t, image.Rect(80, 45, 120, 90), player.FrameRect(99))

		gem, ok := reg.Get("gem")
		require.True(t, ok)
		assert.Equal(t, 1, gem.Frames())
		assert.Equal(t, image.Rect(0, 0, 16, 16), gem.FrameRect(0))
	})

	t.Run("empty manifest", func(t *testing.T) {
		reg, err := Load(context.Background(), fsys, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), fsys, []config.AssetConfig{
			{Key: "skull", Path: "images/skull.png"},
		})
		assert.ErrorContains(t, err, `asset "skull"`)
	})

	t.Run("undecodable file", func(t *testing.T) {
		_, err := Load(context.Background(), fsys, []config.AssetConfig{
			{Key: "gem", Path: "images/gem.png"},
			{Key: "bad", Path: "images/bad.png"},
		})
		assert.ErrorContains(t, err, "failed to decode images/bad.png")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Load(ctx, fsys, []config.AssetConfig{{Key: "gem", Path: "images/gem.png"}})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil registry", func(t *testing.T) {
		var reg *Registry
		_, ok := reg.Get("gem")
		assert.False(t, ok)
		assert.Equal(t, 0, reg.Len())
	})
}

func TestHUDFace(t *testing.T) {
	face, err := HUDFace(16)
	require.NoError(t, err)
	assert.Equal(t, 16.0, face.Size)
}
