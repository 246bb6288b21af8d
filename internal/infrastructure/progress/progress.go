// Package progress stores the run checkpoint used by "play --continue".
package progress

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	checkpointObject   = "run"
	checkpointProperty = "checkpoint"
)

// Checkpoint is the last level a run reached and the score it carried in.
type Checkpoint struct {
	Scene string `yaml:"scene"`
	Score int    `yaml:"score"`
}

// backend is the subset of *gdata.Manager the store needs.
type backend interface {
	ObjectPropExists(object, property string) bool
	LoadObjectProp(object, property string) ([]byte, error)
	SaveObjectProp(object, property string, data []byte) error
}

// Store persists a single checkpoint. A Store without a backend works in
// degraded mode: saves are dropped and loads find nothing.
type Store struct {
	data backend
}

// Open opens the per-user data directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return &Store{data: m}, nil
}

// NewStore wraps an existing manager. A nil manager yields a degraded store.
func NewStore(m *gdata.Manager) *Store {
	if m == nil {
		return &Store{}
	}
	return &Store{data: m}
}

// Enabled reports whether checkpoints are persisted.
func (s *Store) Enabled() bool {
	return s != nil && s.data != nil
}

// Save overwrites the checkpoint.
func (s *Store) Save(cp Checkpoint) error {
	if !s.Enabled() {
		return nil
	}
	if cp.Scene == "" {
		return fmt.Errorf("checkpoint has no scene")
	}
	data, err := yaml.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	if err := s.data.SaveObjectProp(checkpointObject, checkpointProperty, data); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Load returns the checkpoint and whether one exists.
func (s *Store) Load() (Checkpoint, bool, error) {
	if !s.Enabled() || !s.data.ObjectPropExists(checkpointObject, checkpointProperty) {
		return Checkpoint{}, false, nil
	}
	data, err := s.data.LoadObjectProp(checkpointObject, checkpointProperty)
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if len(data) == 0 {
		return Checkpoint{}, false, nil
	}

	var cp Checkpoint
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, false, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	if cp.Scene == "" {
		return Checkpoint{}, false, nil
	}
	if cp.Score < 0 {
		cp.Score = 0
	}
	return cp, true, nil
}

// Clear forgets the checkpoint.
func (s *Store) Clear() error {
	if !s.Enabled() {
		return nil
	}
	if err := s.data.SaveObjectProp(checkpointObject, checkpointProperty, nil); err != nil {
		return fmt.Errorf("failed to clear checkpoint: %w", err)
	}
	return nil
}
