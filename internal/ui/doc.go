// Package ui contains the Fyne-based desktop user interface. RootUI is the
// render loop over a download.Controller: it reads one snapshot per redraw,
// gates the controls by download state, and persists the URL and mode.
// All UI strings are localized via Localization.
package ui
