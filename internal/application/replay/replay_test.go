package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilehop/internal/application/system"
)

// scriptedInput returns its frames in order, then nothing.
type scriptedInput struct {
	frames []system.InputState
	i      int
}

func (s *scriptedInput) Poll() system.InputState {
	if s.i >= len(s.frames) {
		return system.InputState{}
	}
	in := s.frames[s.i]
	s.i++
	return in
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: FormatVersion,
		Scene:   "level1",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, J: true, JP: true},
			{F: 2, P: true, C: true},
		},
	}

	replayer := NewReplayer(data)
	assert.Equal(t, "level1", replayer.Scene())

	// Frame 0
	input, ok := replayer.Next()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)

	// Frame 1
	input, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, input.Right)
	assert.True(t, input.Jump)
	assert.True(t, input.JumpPressed)

	// Frame 2
	input, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, input.Pause)
	assert.True(t, input.Confirm)

	// End of frames
	_, ok = replayer.Next()
	assert.False(t, ok)
	assert.True(t, replayer.Finished())
	assert.Equal(t, system.InputState{}, replayer.Poll())
}

func TestReplayer_FrameCounters(t *testing.T) {
	replayer := NewReplayer(ReplayData{Version: FormatVersion, Frames: make([]FrameInput, 5)})

	assert.Equal(t, 5, replayer.TotalFrames())
	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.Poll()
	replayer.Poll()
	assert.Equal(t, 2, replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.False(t, replayer.Finished())
}

func TestRecorder_PassesThroughAndRecords(t *testing.T) {
	source := &scriptedInput{frames: []system.InputState{
		{Right: true},
		{Right: true, Jump: true, JumpPressed: true},
		{Jump: true},
	}}
	rec := NewRecorder(source, "level1")

	got := []system.InputState{rec.Poll(), rec.Poll(), rec.Poll()}
	assert.Equal(t, source.frames, got)
	assert.Equal(t, 3, rec.FrameCount())

	data := rec.Data()
	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, "level1", data.Scene)
	assert.Equal(t, 2, data.Frames[2].F)
	assert.True(t, data.Frames[1].JP)

	rec.Stop()
	assert.False(t, rec.IsRecording())
	rec.Poll()
	assert.Equal(t, 3, rec.FrameCount(), "stopped recorder does not record")
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	source := &scriptedInput{frames: []system.InputState{
		{Left: true},
		{JumpPressed: true, Jump: true},
		{},
		{Pause: true},
	}}
	rec := NewRecorder(source, "level2")
	for i := 0; i < 4; i++ {
		rec.Poll()
	}

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, "level2", data.Scene)

	replayer := NewReplayer(*data)
	for _, want := range source.frames {
		assert.Equal(t, want, replayer.Poll())
	}
	assert.True(t, replayer.Finished())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(&scriptedInput{}, "level1")
	assert.Error(t, rec.Save(filepath.Join(t.TempDir(), "empty.json")))
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadReplay(bad)
	assert.ErrorContains(t, err, "failed to decode replay")

	old := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":"0.1","frames":[]}`), 0o644))
	_, err = LoadReplay(old)
	assert.ErrorContains(t, err, "unsupported replay version")
}
