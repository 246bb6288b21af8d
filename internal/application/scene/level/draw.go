package level

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/younwookim/tilehop/internal/application/state"
	"github.com/younwookim/tilehop/internal/domain/entity"
	"github.com/younwookim/tilehop/internal/domain/tiled"
)

// Colors for rendering when an image is missing
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorPlatform = color.RGBA{80, 80, 100, 255}
	colorDeco     = color.RGBA{50, 60, 80, 255}
	colorExit     = colornames.Mediumseagreen
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorPickup   = colornames.Gold
	colorEnemy    = colornames.Indianred
	colorOverlay  = color.RGBA{0, 0, 0, 160}
)

// Draw renders the level: background layers, platforms, exit, entities,
// foreground, then the HUD in screen space.
func (c *Controller) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	if c.level == nil {
		ebitenutil.DebugPrintAt(screen, "Loading "+c.cfg.Scene.Key+"...", 8, 8)
		return
	}

	layers := c.cfg.Game.Layers
	for _, name := range layers.Background {
		c.drawLayer(screen, c.tilemap.TileLayer(name), colorDeco)
	}
	c.drawLayer(screen, c.tilemap.TileLayer(layers.Platforms), colorPlatform)
	c.drawLayer(screen, c.level.Exit, colorExit)

	for _, p := range c.level.Pickups {
		if p.Active {
			c.drawSprite(screen, p.Sprite, 0, p.Bounds(), colorPickup, false)
		}
	}
	for _, e := range c.level.Enemies {
		if e.Active {
			c.drawSprite(screen, e.Sprite, 0, e.Bounds(), colorEnemy, false)
		}
	}
	if pl := c.level.Player; pl != nil {
		frame := entity.RectAround(pl.Pos, pl.FrameWidth, pl.FrameHeight)
		c.drawSprite(screen, c.cfg.Game.Player.Sprite, c.cfg.Game.Player.Frame, frame, colorPlayer, !pl.FacingRight)
	}

	for _, name := range layers.Foreground {
		c.drawLayer(screen, c.tilemap.TileLayer(name), colorDeco)
	}

	c.drawHUD(screen)

	switch c.state {
	case state.StatePaused:
		c.drawOverlay(screen, "PAUSED - press Esc to resume")
	case state.StateCleared:
		c.drawOverlay(screen, c.level.ScoreText+" - press Enter to play again")
	}
}

func (c *Controller) drawLayer(screen *ebiten.Image, layer *tiled.TileLayer, fallback color.Color) {
	if layer == nil || !layer.Visible {
		return
	}
	tw, th := float64(layer.TileWidth), float64(layer.TileHeight)
	cam := c.camera
	viewW := cam.ViewW / cam.Zoom
	viewH := cam.ViewH / cam.Zoom

	x0 := max(0, int(math.Floor(cam.X/tw)))
	y0 := max(0, int(math.Floor(cam.Y/th)))
	x1 := min(layer.Width-1, int(math.Ceil((cam.X+viewW)/tw)))
	y1 := min(layer.Height-1, int(math.Ceil((cam.Y+viewH)/th)))

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			tile, ok := layer.TileAt(tx, ty)
			if !ok {
				continue
			}
			rect := entity.Rect{X: float64(tx) * tw, Y: float64(ty) * th, W: tw, H: th}
			if img := c.tileImage(tile.Index, layer.TileWidth, layer.TileHeight); img != nil {
				c.drawImage(screen, img, rect, false)
				continue
			}
			c.fillRect(screen, rect, fallback)
		}
	}
}

// tileImage returns the tileset cell for gid, nil if the tileset image
// is not loaded.
func (c *Controller) tileImage(gid, tw, th int) *ebiten.Image {
	ts, ok := c.tilemap.TilesetFor(gid)
	if !ok || ts.Columns <= 0 {
		return nil
	}
	key, ok := c.cfg.Scene.Tilesets[ts.Name]
	if !ok {
		return nil
	}
	sheet, ok := c.registry.Get(key)
	if !ok {
		return nil
	}
	local := gid - ts.FirstGID
	sx := (local % ts.Columns) * tw
	sy := (local / ts.Columns) * th
	return sheet.Image().SubImage(image.Rect(sx, sy, sx+tw, sy+th)).(*ebiten.Image)
}

func (c *Controller) drawSprite(screen *ebiten.Image, key string, frame int, rect entity.Rect, fallback color.Color, flip bool) {
	if sheet, ok := c.registry.Get(key); ok {
		c.drawImage(screen, sheet.Frame(frame), rect, flip)
		return
	}
	c.fillRect(screen, rect, fallback)
}

func (c *Controller) drawImage(screen, img *ebiten.Image, rect entity.Rect, flip bool) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.W/float64(b.Dx()), rect.H/float64(b.Dy()))
	if flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(rect.W, 0)
	}
	pos := c.camera.WorldToScreen(entity.Vec{X: rect.X, Y: rect.Y})
	op.GeoM.Scale(c.camera.Zoom, c.camera.Zoom)
	op.GeoM.Translate(math.Round(pos.X), math.Round(pos.Y))
	screen.DrawImage(img, op)
}

func (c *Controller) fillRect(screen *ebiten.Image, rect entity.Rect, clr color.Color) {
	pos := c.camera.WorldToScreen(entity.Vec{X: rect.X, Y: rect.Y})
	z := c.camera.Zoom
	vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(rect.W*z), float32(rect.H*z), clr, false)
}

func (c *Controller) drawHUD(screen *ebiten.Image) {
	hud := c.cfg.Game.HUD
	if c.deps.HUDFace == nil {
		ebitenutil.DebugPrintAt(screen, c.level.ScoreText, int(hud.X), int(hud.Y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(hud.X, hud.Y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, c.level.ScoreText, c.deps.HUDFace, op)
}

func (c *Controller) drawOverlay(screen *ebiten.Image, msg string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), colorOverlay, false)
	ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*3, h/2)
}
