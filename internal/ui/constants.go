package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconError    = "❌"
)

// Text fragments
const (
	ByteProgressFormat  = "%s / %s"
	ProgressLabelFormat = "%d%%"
	FailureFormat       = "%s %s"
	MiddleDotSeparator  = " · "
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 360
)
