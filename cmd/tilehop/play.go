package main

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilehop/internal/application/game"
	"github.com/younwookim/tilehop/internal/application/replay"
	"github.com/younwookim/tilehop/internal/application/scene"
	levelscene "github.com/younwookim/tilehop/internal/application/scene/level"
	"github.com/younwookim/tilehop/internal/application/system"
	"github.com/younwookim/tilehop/internal/domain/level"
	"github.com/younwookim/tilehop/internal/infrastructure/assets"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
	"github.com/younwookim/tilehop/internal/infrastructure/progress"
	"github.com/younwookim/tilehop/internal/infrastructure/storage"
	"github.com/younwookim/tilehop/internal/infrastructure/tiledmap"
	"github.com/younwookim/tilehop/internal/infrastructure/watch"
)

var (
	flagScene    string
	flagContinue bool
	flagRecord   string
	flagReplay   string
	flagWatch    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScene, "scene", "", "start at this scene instead of the first one")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "resume from the last reached level")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "record input to file (e.g. --record replay.json)")
	playCmd.Flags().StringVar(&flagReplay, "replay", "", "play back a recorded input file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the current level when files under --config-dir change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	fsys, cfg, err := loadGame(flagConfigDir)
	if err != nil {
		return err
	}

	var input system.InputSource = system.KeyboardInput{}
	var player *replay.Replayer
	if flagReplay != "" {
		data, err := replay.LoadReplay(flagReplay)
		if err != nil {
			return fmt.Errorf("load replay: %w", err)
		}
		player = replay.NewReplayer(*data)
		input = player
		logger.Info("replaying", "file", flagReplay, "scene", data.Scene, "frames", player.TotalFrames())
	}

	deps := levelscene.Deps{
		Maps:   tiledmap.NewFSLoader(fsys),
		Assets: fsys,
		Logger: logger,
	}

	face, err := assets.HUDFace(cfg.HUD.FontSize)
	if err != nil {
		logger.Warn("HUD font unavailable, using debug text", "err", err)
	} else {
		deps.HUDFace = face
	}

	opts := startOptions{Scene: flagScene, Continue: flagContinue}
	var checkpoints checkpointLoader

	// A replay must not touch the score history or the checkpoint.
	if player != nil {
		opts.ReplayScene = player.Scene()
	} else {
		store, err := storage.Open(dbPath(cfg))
		if err != nil {
			logger.Warn("score history disabled", "err", err)
		} else {
			defer func() { _ = store.Close() }()
			deps.Scores = store
		}

		prog, err := progress.Open(cfg.Storage.AppName)
		if err != nil {
			logger.Warn("checkpoints disabled", "err", err)
		} else {
			deps.Progress = prog
			checkpoints = prog
		}
	}

	start, payload, err := startScene(cfg, opts, checkpoints)
	if err != nil {
		return err
	}

	var rec *replay.Recorder
	if flagRecord != "" {
		rec = replay.NewRecorder(input, start)
		input = rec
		logger.Info("recording enabled", "file", flagRecord)
	}
	deps.Input = input

	g, err := game.New(newFactory(cfg, deps), start, payload,
		cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	if flagWatch {
		w, err := startWatcher(cfg, logger)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			defer func() { _ = w.Close() }()
			g.WatchReload(w.Events)
		}
	}

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)
	g.SetDT(1.0 / float64(cfg.Display.Framerate))

	runErr := ebiten.RunGame(g)

	if rec != nil {
		rec.Stop()
		if err := rec.Save(flagRecord); err != nil {
			logger.Error("failed to save recording", "err", err)
		} else {
			logger.Info("recording saved", "file", flagRecord, "frames", rec.FrameCount())
		}
	}
	return runErr
}

// newFactory builds level scenes by key. Every scene shares deps.
func newFactory(cfg *config.GameConfig, deps levelscene.Deps) scene.Factory {
	return func(key string, payload level.Payload) (scene.Scene, error) {
		sc, ok := cfg.Scene(key)
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", key)
		}
		return levelscene.New(levelscene.Config{Game: cfg, Scene: sc, Payload: payload}, deps), nil
	}
}

// checkpointLoader is the part of progress.Store used to resume a run.
type checkpointLoader interface {
	Load() (progress.Checkpoint, bool, error)
}

// startOptions selects where a session begins.
type startOptions struct {
	Scene       string // explicit scene, overrides Continue
	Continue    bool
	ReplayScene string // scene a replay was recorded in, overrides both
}

// startScene picks the scene a session starts in and the payload it gets.
func startScene(cfg *config.GameConfig, opts startOptions, checkpoints checkpointLoader) (string, level.Payload, error) {
	if opts.ReplayScene != "" {
		if _, ok := cfg.Scene(opts.ReplayScene); !ok {
			return "", level.Payload{}, fmt.Errorf("replay scene %q is not defined", opts.ReplayScene)
		}
		return opts.ReplayScene, level.Payload{}, nil
	}

	if opts.Scene != "" {
		if _, ok := cfg.Scene(opts.Scene); !ok {
			return "", level.Payload{}, fmt.Errorf("scene %q is not defined", opts.Scene)
		}
		return opts.Scene, level.Payload{}, nil
	}

	first := cfg.FirstScene().Key
	if !opts.Continue || checkpoints == nil {
		return first, level.Payload{}, nil
	}
	cp, found, err := checkpoints.Load()
	if err != nil {
		return "", level.Payload{}, fmt.Errorf("load checkpoint: %w", err)
	}
	if !found {
		return first, level.Payload{}, nil
	}
	if _, ok := cfg.Scene(cp.Scene); !ok {
		// The checkpoint names a scene this config no longer has.
		return first, level.Payload{}, nil
	}
	return cp.Scene, level.Payload{Score: cp.Score}, nil
}

func dbPath(cfg *config.GameConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.Database
}

// startWatcher watches the directories holding the maps and images of every
// scene. It needs an on-disk --config-dir.
func startWatcher(cfg *config.GameConfig, logger *log.Logger) (*watch.Watcher, error) {
	if flagConfigDir == "" {
		return nil, fmt.Errorf("--watch needs --config-dir")
	}
	dirs := watchDirs(flagConfigDir, cfg)
	w, err := watch.New(dirs...)
	if err != nil {
		return nil, err
	}
	logger.Info("watching for changes", "dirs", dirs)
	return w, nil
}

// watchDirs lists root and every directory a scene reads from, once each.
func watchDirs(root string, cfg *config.GameConfig) []string {
	seen := map[string]struct{}{".": {}}
	for _, sc := range cfg.Scenes {
		seen[path.Dir(sc.Map)] = struct{}{}
		for _, a := range sc.Assets {
			seen[path.Dir(a.Path)] = struct{}{}
		}
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		if !fs.ValidPath(d) {
			continue
		}
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(d)))
	}
	sort.Strings(dirs)
	return dirs
}
