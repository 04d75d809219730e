// Package settings manages the assistant settings blob: a small, mutable
// key-value document persisted as YAML and editable at runtime.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Supported generation providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Settings holds every assistant knob. Folder values are vault-relative
// paths; the zero threshold is a valid "suggest everything" setting.
type Settings struct {
	APIKey              string  `yaml:"apiKey" json:"apiKey"`
	APIProvider         string  `yaml:"apiProvider" json:"apiProvider"`
	APIEndpoint         string  `yaml:"apiEndpoint" json:"apiEndpoint"`
	FleetingFolder      string  `yaml:"fleetingNotesFolder" json:"fleetingNotesFolder"`
	PermanentFolder     string  `yaml:"permanentNotesFolder" json:"permanentNotesFolder"`
	StructureFolder     string  `yaml:"structureNotesFolder" json:"structureNotesFolder"`
	AutoProcess         bool    `yaml:"autoProcess" json:"autoProcess"`
	ConnectionThreshold float64 `yaml:"connectionThreshold" json:"connectionThreshold"`
}

// NewDefault returns the settings used when no file exists yet. The API key
// is intentionally empty: generation stays unavailable until the user sets
// one.
func NewDefault() Settings {
	return Settings{
		APIProvider:         ProviderOpenAI,
		FleetingFolder:      "Fleeting Notes",
		PermanentFolder:     "Permanent Notes",
		StructureFolder:     "Structure Notes",
		AutoProcess:         false,
		ConnectionThreshold: 0.7,
	}
}

// Validate checks the settings blob.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.APIProvider, validation.Required, validation.In(ProviderOpenAI, ProviderAnthropic)),
		validation.Field(&s.FleetingFolder, validation.Required),
		validation.Field(&s.PermanentFolder, validation.Required),
		validation.Field(&s.StructureFolder, validation.Required),
		validation.Field(&s.ConnectionThreshold, validation.Min(0.0), validation.Max(1.0)),
	)
}

// Load reads settings from path, expanding ${ENV} references. A missing file
// yields the defaults.
func Load(path string) (Settings, error) {
	s := NewDefault()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings: validate %s: %w", path, err)
	}
	return s, nil
}

// Store holds the current settings and persists every accepted update. An
// empty path keeps the store in memory only.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  Settings
}

// NewStore creates a store seeded with s. No validation happens here; pass
// settings that already validated.
func NewStore(path string, s Settings) *Store {
	return &Store{path: path, cur: s}
}

// Open loads settings from path and wraps them in a store.
func Open(path string) (*Store, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(path, s), nil
}

// Current returns a copy of the active settings.
func (st *Store) Current() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur
}

// Update applies fn to a copy of the current settings, validates the result,
// persists it, and makes it active. On any failure the previous settings
// stay in effect.
func (st *Store) Update(fn func(*Settings)) (Settings, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	next := st.cur
	fn(&next)
	if err := next.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	if st.path != "" {
		if err := save(st.path, next); err != nil {
			return Settings{}, err
		}
	}
	st.cur = next
	return next, nil
}

func save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	// 0600: the file carries the API key.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
