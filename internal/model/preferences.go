package model

// Preferences are the user inputs persisted across restarts.
// Transient download state is never part of it.
type Preferences struct {
	URL          string       `json:"url"`
	DownloadType DownloadType `json:"download_type"`
}

// DefaultPreferences returns the values used for missing fields
func DefaultPreferences() Preferences {
	return Preferences{
		URL:          "",
		DownloadType: DownloadAudioOnly,
	}
}
