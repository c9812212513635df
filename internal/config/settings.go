package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/logging"
	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir = "download_directory"
	KeyEngine      = "fetch_engine"
	KeyLanguage    = "app_language"
	KeyLogLevel    = "log_level"
)

// Default values
const (
	DefaultEngine   = fetch.DefaultEngine
	DefaultLanguage = "system"
	DefaultLogLevel = logging.DefaultLevel
	FallbackDir     = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetEngine returns the configured fetch engine
func (s *Settings) GetEngine() string {
	engine := s.app.Preferences().String(KeyEngine)
	if !isEngine(engine) {
		s.SetEngine(DefaultEngine)
		return DefaultEngine
	}
	return engine
}

// SetEngine sets the fetch engine. Unknown names fall back to the default.
func (s *Settings) SetEngine(engine string) {
	if !isEngine(engine) {
		engine = DefaultEngine
	}
	s.app.Preferences().SetString(KeyEngine, engine)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	level := s.app.Preferences().String(KeyLogLevel)
	if _, err := logging.ParseLevel(level); err != nil || level == "" {
		s.SetLogLevel(DefaultLogLevel)
		return DefaultLogLevel
	}
	return level
}

// SetLogLevel sets the log level
func (s *Settings) SetLogLevel(level string) {
	s.app.Preferences().SetString(KeyLogLevel, level)
}

// GetEngineOptions returns available fetch engines
func (s *Settings) GetEngineOptions() []string {
	return fetch.Engines()
}

// GetLogLevelOptions returns available log levels
func (s *Settings) GetLogLevelOptions() []string {
	return logging.Levels()
}

// GetDownloadTypeOptions returns the download modes in display order
func (s *Settings) GetDownloadTypeOptions() []model.DownloadType {
	return model.DownloadTypes()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func isEngine(name string) bool {
	for _, e := range fetch.Engines() {
		if e == name {
			return true
		}
	}
	return false
}
