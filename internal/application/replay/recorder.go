package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/tilehop/internal/application/system"
)

// Recorder passes input through from another source and records every frame.
type Recorder struct {
	source    system.InputSource
	data      ReplayData
	recording bool
}

// NewRecorder creates a recorder wrapping source.
func NewRecorder(source system.InputSource, scene string) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   FormatVersion,
			Scene:     scene,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// Poll reads the wrapped source and records the result.
func (r *Recorder) Poll() system.InputState {
	input := r.source.Poll()
	if r.recording {
		r.data.Frames = append(r.data.Frames, FrameInput{
			F:  len(r.data.Frames),
			L:  input.Left,
			R:  input.Right,
			J:  input.Jump,
			JP: input.JumpPressed,
			P:  input.Pause,
			C:  input.Confirm,
		})
	}
	return input
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Stop stops recording; input still passes through.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded data.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
