package settings

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/oomph-ac/locomotion/game"
	"gopkg.in/yaml.v3"
)

// Values are the user-facing settings the locomotion controller reads.
type Values struct {
	FieldOfView      float32 `yaml:"field_of_view"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	InvertY          bool    `yaml:"invert_y"`
}

// DefaultValues returns the default user settings.
func DefaultValues() Values {
	return Values{
		FieldOfView:      game.DefaultFieldOfView,
		MouseSensitivity: game.DefaultMouseSensitivity,
	}
}

// Settings holds the user settings. Every write marks the settings as updated; the controller picks the
// update up with Consume once per step.
type Settings struct {
	mu      sync.Mutex
	v       Values
	updated bool
}

// New returns settings holding v. New settings start out updated so that the first step applies them.
func New(v Values) *Settings {
	return &Settings{v: v, updated: true}
}

// Values returns the current values without clearing the updated flag.
func (s *Settings) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

// Set replaces all values.
func (s *Settings) Set(v Values) {
	s.mu.Lock()
	s.v, s.updated = v, true
	s.mu.Unlock()
}

// SetFieldOfView ...
func (s *Settings) SetFieldOfView(fov float32) {
	s.mu.Lock()
	s.v.FieldOfView, s.updated = fov, true
	s.mu.Unlock()
}

// SetMouseSensitivity ...
func (s *Settings) SetMouseSensitivity(sens float32) {
	s.mu.Lock()
	s.v.MouseSensitivity, s.updated = sens, true
	s.mu.Unlock()
}

// SetInvertY ...
func (s *Settings) SetInvertY(invert bool) {
	s.mu.Lock()
	s.v.InvertY, s.updated = invert, true
	s.mu.Unlock()
}

// Consume returns the current values and whether they changed since the last call, then clears the
// updated flag.
func (s *Settings) Consume() (Values, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := s.updated
	s.updated = false
	return s.v, updated
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	return Save(path, DefaultValues())
}

// Save writes v to path.
func Save(path string, v Values) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Fields missing from the file keep their default values.
func Load(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Values{}, fmt.Errorf("error reading settings: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (Values, error) {
	v := DefaultValues()
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Values{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return v, nil
}
