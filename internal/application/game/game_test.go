package game

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilehop/internal/application/scene"
	"github.com/younwookim/tilehop/internal/domain/level"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	key     string
	payload level.Payload

	loadCalled     int
	activateCalled int
	frameCalled    int
	drawCalled     int
	exitCalled     int

	loadErr  error
	loadGate chan struct{} // blocks OnLoad until closed, if set
	next     *scene.Transition
	frameErr error
}

func (m *mockScene) Key() string { return m.key }

func (m *mockScene) OnLoad(ctx context.Context) error {
	m.loadCalled++
	if m.loadGate != nil {
		select {
		case <-m.loadGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.loadErr
}

func (m *mockScene) OnActivate() { m.activateCalled++ }

func (m *mockScene) OnFrame(dt float64) (*scene.Transition, error) {
	m.frameCalled++
	next := m.next
	m.next = nil
	return next, m.frameErr
}

func (m *mockScene) Draw(screen *ebiten.Image) { m.drawCalled++ }

func (m *mockScene) OnExit() { m.exitCalled++ }

// director hands out pre-built scenes and remembers what it was asked for.
type director struct {
	scenes map[string][]*mockScene
	asked  []scene.Transition
}

func newDirector(scenes ...*mockScene) *director {
	d := &director{scenes: make(map[string][]*mockScene)}
	for _, s := range scenes {
		d.scenes[s.key] = append(d.scenes[s.key], s)
	}
	return d
}

func (d *director) factory(key string, payload level.Payload) (scene.Scene, error) {
	d.asked = append(d.asked, scene.Transition{Key: key, Payload: payload})
	queue := d.scenes[key]
	if len(queue) == 0 {
		return nil, errors.New("unknown scene " + key)
	}
	s := queue[0]
	d.scenes[key] = queue[1:]
	s.payload = payload
	return s, nil
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{})
}

func newLoadedGame(t *testing.T, d *director, first string) *Game {
	t.Helper()
	g, err := New(d.factory, first, level.Payload{}, 320, 240, quietLogger())
	require.NoError(t, err)
	require.NoError(t, g.awaitLoad())
	return g
}

func TestNew(t *testing.T) {
	first := &mockScene{key: "level1"}
	g := newLoadedGame(t, newDirector(first), "level1")

	assert.NotNil(t, g)
	assert.Equal(t, 1, first.loadCalled, "OnLoad should run for the initial scene")
	assert.Equal(t, 1, first.activateCalled, "OnActivate should follow a successful load")
}

func TestNew_UnknownScene(t *testing.T) {
	_, err := New(newDirector().factory, "nowhere", level.Payload{}, 320, 240, quietLogger())
	assert.ErrorContains(t, err, "create scene nowhere")
}

func TestGame_Update_WaitsForLoad(t *testing.T) {
	gate := make(chan struct{})
	first := &mockScene{key: "level1", loadGate: gate}
	g, err := New(newDirector(first).factory, "level1", level.Payload{}, 320, 240, quietLogger())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Update())
	}
	_, loading := g.Current()
	assert.True(t, loading)
	assert.Equal(t, 0, first.frameCalled, "no frames while loading")
	assert.Equal(t, 0, first.activateCalled)

	close(gate)
	require.NoError(t, g.awaitLoad())
	require.NoError(t, g.Update())
	assert.Equal(t, 1, first.activateCalled)
	assert.Equal(t, 1, first.frameCalled)
}

func TestGame_Update_LoadError(t *testing.T) {
	boom := errors.New("bad map")
	first := &mockScene{key: "level1", loadErr: boom}
	g, err := New(newDirector(first).factory, "level1", level.Payload{}, 320, 240, quietLogger())
	require.NoError(t, err)

	err = g.awaitLoad()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, first.activateCalled)
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	first := &mockScene{key: "level1"}
	g := newLoadedGame(t, newDirector(first), "level1")

	err := g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, first.frameCalled, "Update should delegate to current scene")
}

func TestGame_Draw_DelegatesToCurrentScene(t *testing.T) {
	first := &mockScene{key: "level1"}
	g := newLoadedGame(t, newDirector(first), "level1")

	img := ebiten.NewImage(320, 240)
	g.Draw(img)

	assert.Equal(t, 1, first.drawCalled, "Draw should delegate to current scene")
}

func TestGame_Layout(t *testing.T) {
	g := newLoadedGame(t, newDirector(&mockScene{key: "level1"}), "level1")

	w, h := g.Layout(640, 480)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{key: "level1"}
	scene2 := &mockScene{key: "level2"}
	d := newDirector(scene1, scene2)

	// scene1 will hand over to scene2 on first update
	scene1.next = &scene.Transition{Key: "level2", Payload: level.Payload{Score: 7}}

	g := newLoadedGame(t, d, "level1")

	err := g.Update()
	require.NoError(t, err)
	assert.Equal(t, 1, scene1.frameCalled)
	assert.Equal(t, 1, scene1.exitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, level.Payload{Score: 7}, scene2.payload, "payload reaches the next scene")

	require.NoError(t, g.awaitLoad())
	assert.Equal(t, 1, scene2.activateCalled)

	err = g.Update()
	require.NoError(t, err)
	assert.Equal(t, 1, scene2.frameCalled, "scene2 Update called")
	assert.Equal(t, 1, scene1.frameCalled, "scene1 no longer updated")
}

func TestGame_NoTransitionWhenNil(t *testing.T) {
	scene1 := &mockScene{key: "level1"}
	g := newLoadedGame(t, newDirector(scene1), "level1")

	for i := 0; i < 5; i++ {
		err := g.Update()
		assert.NoError(t, err)
	}

	assert.Equal(t, 5, scene1.frameCalled, "All updates go to scene1")
	assert.Equal(t, 0, scene1.exitCalled, "No OnExit when no transition")
}

func TestGame_UpdateError(t *testing.T) {
	scene1 := &mockScene{key: "level1", frameErr: assert.AnError}
	g := newLoadedGame(t, newDirector(scene1), "level1")

	err := g.Update()
	assert.ErrorIs(t, err, assert.AnError, "Error should propagate from scene")
}

func TestGame_TransitionToUnknownScene(t *testing.T) {
	scene1 := &mockScene{key: "level1", next: &scene.Transition{Key: "bonus"}}
	g := newLoadedGame(t, newDirector(scene1), "level1")

	err := g.Update()
	assert.ErrorContains(t, err, "create scene bonus")
}

func TestGame_Reload(t *testing.T) {
	first := &mockScene{key: "level2"}
	again := &mockScene{key: "level2"}
	d := newDirector(first, again)

	g, err := New(d.factory, "level2", level.Payload{Score: 4}, 320, 240, quietLogger())
	require.NoError(t, err)
	require.NoError(t, g.awaitLoad())

	events := make(chan string, 1)
	g.WatchReload(events)
	events <- "maps/level2.json"

	require.NoError(t, g.Update())
	assert.Equal(t, 1, first.exitCalled)
	assert.Equal(t, level.Payload{Score: 4}, again.payload, "reload keeps the entry payload")

	require.NoError(t, g.awaitLoad())
	cur, loading := g.Current()
	assert.False(t, loading)
	assert.Same(t, again, cur)

	close(events)
	require.NoError(t, g.Update())
	assert.Nil(t, g.reload, "closed channel stops reload polling")
}

func TestGame_Close(t *testing.T) {
	gate := make(chan struct{})
	first := &mockScene{key: "level1", loadGate: gate}
	g, err := New(newDirector(first).factory, "level1", level.Payload{}, 320, 240, quietLogger())
	require.NoError(t, err)

	g.Close()
	err = g.awaitLoad()
	assert.ErrorIs(t, err, context.Canceled, "Close cancels the pending load")
}
