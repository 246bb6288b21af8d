// Package replay records and plays back per-frame input.
//
// Simulation advances by a fixed dt and only reads input through
// system.InputSource, so feeding recorded frames back reproduces a run.
package replay

// FormatVersion is written into every recording.
const FormatVersion = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	J  bool `json:"j,omitempty"`  // Jump held
	JP bool `json:"jp,omitempty"` // JumpPressed
	P  bool `json:"p,omitempty"`  // Pause
	C  bool `json:"c,omitempty"`  // Confirm
}

// ReplayData contains all data needed to replay a run
type ReplayData struct {
	Version   string       `json:"version"`
	Scene     string       `json:"scene"` // scene the run started in
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
