package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/younwookim/tilehop/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// contentFS returns the directory holding game.yaml, maps and images:
// the --config-dir directory when set, the embedded set otherwise.
func contentFS(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("config dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("config dir %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return sub, nil
}

// loadGame resolves the content directory and loads game.yaml from it.
func loadGame(dir string) (fs.FS, *config.GameConfig, error) {
	fsys, err := contentFS(dir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.NewFSLoader(fsys).LoadGame()
	if err != nil {
		return nil, nil, err
	}
	return fsys, cfg, nil
}
