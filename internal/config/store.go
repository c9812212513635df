package config

import (
	"encoding/json"
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/model"
)

// KeyAppState is the preferences key holding the serialized model.Preferences
const KeyAppState = "app_state"

// Store persists model.Preferences as one JSON document in the Fyne
// preferences of the running app
type Store struct {
	prefs fyne.Preferences
}

// NewStore creates a store backed by prefs
func NewStore(prefs fyne.Preferences) *Store {
	return &Store{prefs: prefs}
}

// Load returns the persisted preferences. A missing or unreadable document
// yields the defaults.
func (s *Store) Load() model.Preferences {
	raw := s.prefs.String(KeyAppState)
	if raw == "" {
		return model.DefaultPreferences()
	}

	prefs := model.DefaultPreferences()
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logrus.WithError(err).Warn("Stored app state is corrupt, using defaults")
		return model.DefaultPreferences()
	}
	return prefs
}

// Save writes prefs, replacing any previous document
func (s *Store) Save(prefs model.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode app state: %w", err)
	}
	s.prefs.SetString(KeyAppState, string(data))
	return nil
}
