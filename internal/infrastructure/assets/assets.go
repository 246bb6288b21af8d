// Package assets loads a scene's image manifest and the HUD font.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/younwookim/tilehop/internal/infrastructure/config"
)

// maxParallelDecodes bounds concurrent PNG decodes per manifest.
const maxParallelDecodes = 4

// Sheet is a decoded image plus its frame grid. FrameWidth is zero for
// plain images.
type Sheet struct {
	Key         string
	Source      image.Image
	FrameWidth  int
	FrameHeight int

	once  sync.Once
	image *ebiten.Image
}

// Frames returns the number of frames in the sheet.
func (s *Sheet) Frames() int {
	if s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return 1
	}
	b := s.Source.Bounds()
	return (b.Dx() / s.FrameWidth) * (b.Dy() / s.FrameHeight)
}

// FrameRect returns the source rectangle of frame n, row-major.
// Out-of-range frames clamp to the last one.
func (s *Sheet) FrameRect(n int) image.Rectangle {
	b := s.Source.Bounds()
	if s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return b
	}
	cols := b.Dx() / s.FrameWidth
	if cols == 0 {
		return b
	}
	if n < 0 {
		n = 0
	}
	if last := s.Frames() - 1; n > last {
		n = last
	}
	x := b.Min.X + (n%cols)*s.FrameWidth
	y := b.Min.Y + (n/cols)*s.FrameHeight
	return image.Rect(x, y, x+s.FrameWidth, y+s.FrameHeight)
}

// Image returns the GPU image. It must be called from the game loop.
func (s *Sheet) Image() *ebiten.Image {
	s.once.Do(func() {
		s.image = ebiten.NewImageFromImage(s.Source)
	})
	return s.image
}

// Frame returns frame n as a sub-image. It must be called from the game loop.
func (s *Sheet) Frame(n int) *ebiten.Image {
	return s.Image().SubImage(s.FrameRect(n)).(*ebiten.Image)
}

// Registry holds a scene's loaded assets by key.
type Registry struct {
	sheets map[string]*Sheet
}

// Get returns the sheet for key.
func (r *Registry) Get(key string) (*Sheet, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.sheets[key]
	return s, ok
}

// Len returns the number of loaded assets.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sheets)
}

// Load decodes every manifest entry concurrently. The first failure cancels
// the rest and is returned.
func Load(ctx context.Context, fsys fs.FS, manifest []config.AssetConfig) (*Registry, error) {
	sheets := make([]*Sheet, len(manifest))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDecodes)
	for i, entry := range manifest {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(fsys, entry.Path)
			if err != nil {
				return fmt.Errorf("asset %q: %w", entry.Key, err)
			}
			sheets[i] = &Sheet{
				Key:         entry.Key,
				Source:      img,
				FrameWidth:  entry.FrameWidth,
				FrameHeight: entry.FrameHeight,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reg := &Registry{sheets: make(map[string]*Sheet, len(sheets))}
	for _, s := range sheets {
		reg.sheets[s.Key] = s
	}
	return reg, nil
}

func decode(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
