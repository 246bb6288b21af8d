package tiledmap

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/younwookim/tilehop/internal/domain/tiled"
)

// gidMask strips Tiled's flip and rotation flags from a gid.
const gidMask = 0x0FFFFFFF

// Loader reads Tiled JSON maps from an fs.FS.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader rooted at a directory on disk.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// NewFSLoader creates a loader over any fs.FS (embed.FS, fstest.MapFS).
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads and converts the map at path.
func (l *Loader) Load(path string) (*tiled.Map, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", path, err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", path, err)
	}
	return m, nil
}

// Decode parses Tiled JSON into a map.
func Decode(data []byte) (*tiled.Map, error) {
	var f MapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return Convert(&f)
}

// Convert turns a decoded MapFile into a tiled.Map, normalizing every object.
// Group layers are flattened in draw order.
func Convert(f *MapFile) (*tiled.Map, error) {
	if f.Infinite {
		return nil, fmt.Errorf("infinite maps are not supported")
	}
	if f.TileWidth <= 0 || f.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", f.TileWidth, f.TileHeight)
	}

	m := &tiled.Map{
		Width:      f.Width,
		Height:     f.Height,
		TileWidth:  f.TileWidth,
		TileHeight: f.TileHeight,
	}
	for _, ts := range f.Tilesets {
		m.Tilesets = append(m.Tilesets, tiled.Tileset{
			Name:      ts.Name,
			FirstGID:  ts.FirstGID,
			Columns:   ts.Columns,
			TileCount: ts.TileCount,
			Image:     ts.Image,
		})
	}

	if err := convertLayers(m, f.Layers); err != nil {
		return nil, err
	}
	return m, nil
}

func convertLayers(m *tiled.Map, layers []LayerFile) error {
	for _, lf := range layers {
		switch lf.Type {
		case "tilelayer":
			data, err := decodeLayerData(lf)
			if err != nil {
				return fmt.Errorf("layer %q: %w", lf.Name, err)
			}
			m.TileLayers = append(m.TileLayers, &tiled.TileLayer{
				Name:       lf.Name,
				Width:      lf.Width,
				Height:     lf.Height,
				TileWidth:  m.TileWidth,
				TileHeight: m.TileHeight,
				Data:       data,
				Visible:    lf.Visible == nil || *lf.Visible,
			})
		case "objectgroup":
			ol := &tiled.ObjectLayer{Name: lf.Name}
			for _, of := range lf.Objects {
				ol.Objects = append(ol.Objects, Normalize(of))
			}
			m.ObjectLayers = append(m.ObjectLayers, ol)
		case "group":
			if err := convertLayers(m, lf.Layers); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeLayerData(lf LayerFile) ([]uint32, error) {
	if lf.Encoding != "" && lf.Encoding != "csv" {
		return nil, fmt.Errorf("unsupported layer encoding %q", lf.Encoding)
	}
	if len(lf.Data) == 0 {
		return make([]uint32, lf.Width*lf.Height), nil
	}

	var data []uint32
	if err := json.Unmarshal(lf.Data, &data); err != nil {
		return nil, fmt.Errorf("decode layer data: %w", err)
	}
	if len(data) != lf.Width*lf.Height {
		return nil, fmt.Errorf("layer data has %d cells, want %d", len(data), lf.Width*lf.Height)
	}
	for i, gid := range data {
		data[i] = gid & gidMask
	}
	return data, nil
}
