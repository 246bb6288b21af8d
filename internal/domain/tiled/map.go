package tiled

import "math"

// Tile is a non-empty cell of a tile layer. Index is the global tile id (gid).
type Tile struct {
	Index int
	X, Y  int // tile coordinates
}

// TileLayer is a grid of gids. A gid of 0 means the cell is empty.
type TileLayer struct {
	Name       string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	Data       []uint32
	Visible    bool
}

// TileAt returns the tile at tile coordinates, false if empty or out of range.
func (l *TileLayer) TileAt(tx, ty int) (Tile, bool) {
	if l == nil || tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return Tile{}, false
	}
	idx := ty*l.Width + tx
	if idx >= len(l.Data) || l.Data[idx] == 0 {
		return Tile{}, false
	}
	return Tile{Index: int(l.Data[idx]), X: tx, Y: ty}, true
}

// TileAtWorld returns the tile covering the world position (pixels).
func (l *TileLayer) TileAtWorld(x, y float64) (Tile, bool) {
	if l == nil || l.TileWidth <= 0 || l.TileHeight <= 0 {
		return Tile{}, false
	}
	tx := int(math.Floor(x / float64(l.TileWidth)))
	ty := int(math.Floor(y / float64(l.TileHeight)))
	return l.TileAt(tx, ty)
}

// EachTile calls fn for every non-empty cell in row-major order.
func (l *TileLayer) EachTile(fn func(Tile)) {
	if l == nil {
		return
	}
	for ty := 0; ty < l.Height; ty++ {
		for tx := 0; tx < l.Width; tx++ {
			if t, ok := l.TileAt(tx, ty); ok {
				fn(t)
			}
		}
	}
}

// ObjectLayer is a named group of placed objects.
type ObjectLayer struct {
	Name    string
	Objects []PlacedObject
}

// Tileset describes how gids map onto a tileset image.
type Tileset struct {
	Name      string
	FirstGID  int
	Columns   int
	TileCount int
	Image     string
}

// Contains reports whether the gid belongs to this tileset.
func (ts Tileset) Contains(gid int) bool {
	return gid >= ts.FirstGID && (ts.TileCount <= 0 || gid < ts.FirstGID+ts.TileCount)
}

// Map is a decoded tile map.
type Map struct {
	Width        int // in tiles
	Height       int
	TileWidth    int
	TileHeight   int
	TileLayers   []*TileLayer
	ObjectLayers []*ObjectLayer
	Tilesets     []Tileset
}

// WidthInPixels returns the map width in pixels.
func (m *Map) WidthInPixels() int { return m.Width * m.TileWidth }

// HeightInPixels returns the map height in pixels.
func (m *Map) HeightInPixels() int { return m.Height * m.TileHeight }

// TileLayer returns the named tile layer or nil.
func (m *Map) TileLayer(name string) *TileLayer {
	for _, l := range m.TileLayers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// ObjectLayer returns the named object layer or nil.
func (m *Map) ObjectLayer(name string) *ObjectLayer {
	for _, l := range m.ObjectLayers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// TilesetFor returns the tileset owning gid.
// Tilesets are searched from the highest firstgid down, as Tiled assigns them.
func (m *Map) TilesetFor(gid int) (Tileset, bool) {
	var best Tileset
	found := false
	for _, ts := range m.Tilesets {
		if gid >= ts.FirstGID && (!found || ts.FirstGID > best.FirstGID) {
			best = ts
			found = true
		}
	}
	if !found || !best.Contains(gid) {
		return Tileset{}, false
	}
	return best, true
}
