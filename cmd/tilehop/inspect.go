package main

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/younwookim/tilehop/internal/application/system"
	"github.com/younwookim/tilehop/internal/domain/level"
	"github.com/younwookim/tilehop/internal/domain/tiled"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
	"github.com/younwookim/tilehop/internal/infrastructure/tiledmap"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [map...]",
	Short: "Print the normalized objects of a map and what they spawn",
	Long: "inspect decodes Tiled maps, prints every placed object after normalization " +
		"and summarizes what the level spawner builds from them. Without arguments it inspects every scene's map.",
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	fsys, cfg, err := loadGame(flagConfigDir)
	if err != nil {
		return err
	}

	maps := args
	if len(maps) == 0 {
		for _, sc := range cfg.Scenes {
			maps = append(maps, sc.Map)
		}
	}

	out := cmd.OutOrStdout()
	for i, m := range maps {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := inspectMap(out, fsys, cfg, m); err != nil {
			return err
		}
	}
	return nil
}

// inspectMap writes a report for one map. The scene that uses the map, if
// any, decides the player frame and hitbox.
func inspectMap(w io.Writer, fsys fs.FS, cfg *config.GameConfig, mapPath string) error {
	m, err := tiledmap.NewFSLoader(fsys).Load(mapPath)
	if err != nil {
		return err
	}

	sc := config.SceneConfig{Map: mapPath}
	for _, s := range cfg.Scenes {
		if s.Map == mapPath {
			sc = s
			break
		}
	}

	title := mapPath
	if sc.Key != "" {
		title = fmt.Sprintf("%s (scene %s)", mapPath, sc.Key)
	}
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "  size: %dx%d tiles, %dx%d px\n", m.Width, m.Height, m.WidthInPixels(), m.HeightInPixels())

	names := make([]string, 0, len(m.TileLayers))
	for _, l := range m.TileLayers {
		names = append(names, l.Name)
	}
	fmt.Fprintf(w, "  tile layers: %s\n", strings.Join(names, ", "))

	layer := m.ObjectLayer(cfg.Layers.Objects)
	if layer == nil {
		fmt.Fprintf(w, "  no %q object layer: level is static\n", cfg.Layers.Objects)
		return nil
	}

	spawner := system.NewDefaultSpawner(cfg, sc)
	fmt.Fprintf(w, "  objects (%d):\n", len(layer.Objects))
	unhandled := make(map[string]int)
	for _, obj := range layer.Objects {
		fmt.Fprintf(w, "    #%-3d %-14s (%g, %g) %gx%g%s\n",
			obj.ID, displayType(obj.Type), obj.X, obj.Y, obj.Width, obj.Height, formatAttributes(obj))
		if !spawner.Handles(obj.Type) {
			unhandled[displayType(obj.Type)]++
		}
	}

	st := level.NewState(m, 0)
	spawner.Spawn(st, layer)
	if st.Player != nil {
		p := st.Player.Position()
		fmt.Fprintf(w, "  player: (%g, %g)\n", p.X, p.Y)
	} else {
		fmt.Fprintf(w, "  player: none\n")
	}
	fmt.Fprintf(w, "  pickups: %d\n", len(st.Pickups))
	for _, e := range st.Enemies {
		fmt.Fprintf(w, "  enemy: (%g, %g) <-> (%g, %g) every %s\n",
			e.Origin.X, e.Origin.Y, e.Dest.X, e.Dest.Y, e.Cycle)
	}
	fmt.Fprintf(w, "  exit tiles: %d\n", countExitTiles(m, cfg))

	if len(unhandled) > 0 {
		types := make([]string, 0, len(unhandled))
		for t, n := range unhandled {
			types = append(types, fmt.Sprintf("%s x%d", t, n))
		}
		sort.Strings(types)
		fmt.Fprintf(w, "  ignored: %s\n", strings.Join(types, ", "))
	}
	return nil
}

func displayType(t string) string {
	if t == "" {
		return "-"
	}
	return t
}

func formatAttributes(obj tiled.PlacedObject) string {
	attrs := obj.Attr()
	if len(attrs) == 0 && obj.Name == "" {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	if obj.Name != "" {
		fmt.Fprintf(&b, " name=%s", obj.Name)
	}
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, attrs[k])
	}
	return b.String()
}

func countExitTiles(m *tiled.Map, cfg *config.GameConfig) int {
	ids := cfg.ExitTiles()
	n := 0
	m.TileLayer(cfg.Layers.Exit).EachTile(func(t tiled.Tile) {
		if _, ok := ids[t.Index]; ok {
			n++
		}
	})
	return n
}
