package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	levelscene "github.com/younwookim/tilehop/internal/application/scene/level"
	"github.com/younwookim/tilehop/internal/domain/level"
	"github.com/younwookim/tilehop/internal/infrastructure/assets"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
	"github.com/younwookim/tilehop/internal/infrastructure/progress"
	"github.com/younwookim/tilehop/internal/infrastructure/storage"
	"github.com/younwookim/tilehop/internal/infrastructure/tiledmap"
)

func TestEmbeddedContent(t *testing.T) {
	fsys, cfg, err := loadGame("")
	require.NoError(t, err)

	require.Len(t, cfg.Scenes, 2)
	assert.Equal(t, "level1", cfg.FirstScene().Key)

	maps := tiledmap.NewFSLoader(fsys)
	for _, sc := range cfg.Scenes {
		t.Run(sc.Key, func(t *testing.T) {
			m, err := maps.Load(sc.Map)
			require.NoError(t, err)

			for _, name := range []string{"Background1", "Background2", "Platforms", "Exit", "Foreground"} {
				assert.NotNil(t, m.TileLayer(name), "layer %s", name)
			}
			require.NotNil(t, m.ObjectLayer(cfg.Layers.Objects))

			reg, err := assets.Load(context.Background(), fsys, sc.Assets)
			require.NoError(t, err)
			assert.Equal(t, len(sc.Assets), reg.Len())

			player, ok := reg.Get(cfg.Player.Sprite)
			require.True(t, ok)
			w, h := cfg.FrameFor(sc)
			assert.Equal(t, w, player.FrameWidth)
			assert.Equal(t, h, player.FrameHeight)
			assert.Equal(t, 3, player.Frames())
		})
	}
}

func TestContentFS_ConfigDir(t *testing.T) {
	fsys, cfg, err := loadGame("configs")
	require.NoError(t, err)
	assert.NotNil(t, fsys)
	assert.Equal(t, "level2", cfg.FirstScene().Next)

	_, _, err = loadGame(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, _, err = loadGame("main.go")
	assert.Error(t, err)
}

func TestNewFactory(t *testing.T) {
	_, cfg, err := loadGame("")
	require.NoError(t, err)

	factory := newFactory(cfg, levelscene.Deps{})

	s, err := factory("level2", level.Payload{Score: 3})
	require.NoError(t, err)
	assert.Equal(t, "level2", s.Key())
	_, ok := s.(*levelscene.Controller)
	assert.True(t, ok)

	_, err = factory("bonus", level.Payload{})
	assert.ErrorContains(t, err, `unknown scene "bonus"`)
}

type checkpointStub struct {
	cp    progress.Checkpoint
	found bool
	err   error
}

func (c checkpointStub) Load() (progress.Checkpoint, bool, error) {
	return c.cp, c.found, c.err
}

func TestStartScene(t *testing.T) {
	_, cfg, err := loadGame("")
	require.NoError(t, err)

	saved := checkpointStub{cp: progress.Checkpoint{Scene: "level2", Score: 4}, found: true}

	tests := []struct {
		name        string
		opts        startOptions
		checkpoints checkpointLoader
		wantScene   string
		wantScore   int
		wantErr     bool
	}{
		{name: "first scene by default", wantScene: "level1"},
		{name: "explicit scene", opts: startOptions{Scene: "level2"}, wantScene: "level2"},
		{name: "unknown explicit scene", opts: startOptions{Scene: "nope"}, wantErr: true},
		{name: "continue from checkpoint", opts: startOptions{Continue: true}, checkpoints: saved, wantScene: "level2", wantScore: 4},
		{name: "checkpoint ignored without continue", checkpoints: saved, wantScene: "level1"},
		{name: "continue without store", opts: startOptions{Continue: true}, wantScene: "level1"},
		{name: "continue with nothing saved", opts: startOptions{Continue: true}, checkpoints: checkpointStub{}, wantScene: "level1"},
		{
			name:        "stale checkpoint scene",
			opts:        startOptions{Continue: true},
			checkpoints: checkpointStub{cp: progress.Checkpoint{Scene: "level9", Score: 2}, found: true},
			wantScene:   "level1",
		},
		{
			name:        "checkpoint error",
			opts:        startOptions{Continue: true},
			checkpoints: checkpointStub{err: errors.New("disk")},
			wantErr:     true,
		},
		{name: "replay wins", opts: startOptions{Scene: "level1", Continue: true, ReplayScene: "level2"}, checkpoints: saved, wantScene: "level2"},
		{name: "unknown replay scene", opts: startOptions{ReplayScene: "old"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, payload, err := startScene(cfg, tt.opts, tt.checkpoints)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScene, key)
			assert.Equal(t, tt.wantScore, payload.Score)
		})
	}
}

func TestWatchDirs(t *testing.T) {
	cfg := &config.GameConfig{Scenes: []config.SceneConfig{
		{Key: "a", Map: "maps/a.json", Assets: []config.AssetConfig{{Key: "p", Path: "images/p.png"}}},
		{Key: "b", Map: "maps/b.json", Assets: []config.AssetConfig{{Key: "g", Path: "g.png"}}},
	}}

	dirs := watchDirs("content", cfg)
	assert.Equal(t, []string{
		"content",
		filepath.Join("content", "images"),
		filepath.Join("content", "maps"),
	}, dirs)
}

func TestInspectMap(t *testing.T) {
	fsys, cfg, err := loadGame("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, inspectMap(&buf, fsys, cfg, "maps/level1.json"))
	out := buf.String()

	assert.Contains(t, out, "maps/level1.json (scene level1)")
	assert.Contains(t, out, "size: 60x15 tiles, 960x240 px")
	assert.Contains(t, out, "player: (40, 160)")
	assert.Contains(t, out, "pickups: 4")
	assert.Contains(t, out, "enemy: (400, 192) <-> (496, 192) every 1s")
	assert.Contains(t, out, "exit tiles: 4")
	assert.Contains(t, out, "ignored: decoration x1")
	assert.Contains(t, out, "sprite=gem")

	buf.Reset()
	require.NoError(t, inspectMap(&buf, fsys, cfg, "maps/level2.json"))
	assert.Contains(t, buf.String(), "pickups: 4")
	assert.NotContains(t, buf.String(), "ignored:")

	assert.Error(t, inspectMap(&buf, fsys, cfg, "maps/missing.json"))
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var buf bytes.Buffer
	require.NoError(t, printScores(&buf, store, 10))
	assert.Contains(t, buf.String(), "No runs cleared yet.")

	_, err = store.SaveRun("level2", 5)
	require.NoError(t, err)
	_, err = store.SaveRun("level2", 8)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, printScores(&buf, store, 1))
	out := buf.String()
	assert.Contains(t, out, "Rank")
	assert.Equal(t, 1, strings.Count(out, "level2"))
	assert.Contains(t, out, "Best: 8 (2 runs)")
}
