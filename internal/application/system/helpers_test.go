package system

import (
	"github.com/younwookim/tilehop/internal/domain/entity"
	"github.com/younwookim/tilehop/internal/domain/level"
	"github.com/younwookim/tilehop/internal/domain/tiled"
)

// newTestLayer builds a w x h layer of 16px tiles with the given gids set.
func newTestLayer(name string, w, h int, gids map[[2]int]uint32) *tiled.TileLayer {
	data := make([]uint32, w*h)
	for pos, gid := range gids {
		data[pos[1]*w+pos[0]] = gid
	}
	return &tiled.TileLayer{Name: name, Width: w, Height: h, TileWidth: 16, TileHeight: 16, Data: data, Visible: true}
}

func newTestState() *level.State {
	m := &tiled.Map{Width: 10, Height: 10, TileWidth: 16, TileHeight: 16}
	return level.NewState(m, 0)
}

func newTestPlayer(x, y float64) *entity.Player {
	return entity.NewPlayer(x, y, 16, 16, entity.Hitbox{})
}

func spawnAt(x, y float64) tiled.PlacedObject {
	return tiled.PlacedObject{Type: TypePlayerSpawn, X: x, Y: y}
}
