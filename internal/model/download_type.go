package model

// DownloadType selects which streams are fetched for a video
type DownloadType int

const (
	// DownloadAudioOnly fetches the best audio-only stream
	DownloadAudioOnly DownloadType = iota

	// DownloadVideoAudio fetches the best stream carrying both video and audio
	DownloadVideoAudio
)

// Serialized names, kept stable for persisted preferences
const (
	downloadAudioOnlyName  = "AudioOnly"
	downloadVideoAudioName = "VideoAudio"
)

// DownloadTypes returns all download types in display order
func DownloadTypes() []DownloadType {
	return []DownloadType{DownloadAudioOnly, DownloadVideoAudio}
}

// String returns a human-friendly label for the download type
func (t DownloadType) String() string {
	switch t {
	case DownloadVideoAudio:
		return "Video + Audio"
	default:
		return "Audio Only"
	}
}

// Extension returns the file extension suggested for files of this type
func (t DownloadType) Extension() string {
	if t == DownloadVideoAudio {
		return ".mp4"
	}
	return ".mp3"
}

// SuggestedFileName returns the default file name offered by the save dialog
func (t DownloadType) SuggestedFileName() string {
	if t == DownloadVideoAudio {
		return "video" + t.Extension()
	}
	return "soundtrack" + t.Extension()
}

// MarshalText encodes the type by its stable name
func (t DownloadType) MarshalText() ([]byte, error) {
	if t == DownloadVideoAudio {
		return []byte(downloadVideoAudioName), nil
	}
	return []byte(downloadAudioOnlyName), nil
}

// UnmarshalText decodes a stable name. Unknown names fall back to
// DownloadAudioOnly so newer or corrupted blobs still load.
func (t *DownloadType) UnmarshalText(text []byte) error {
	*t = ParseDownloadType(string(text))
	return nil
}

// ParseDownloadType converts a stable name or label into a DownloadType
func ParseDownloadType(s string) DownloadType {
	switch s {
	case downloadVideoAudioName, DownloadVideoAudio.String(), "video":
		return DownloadVideoAudio
	default:
		return DownloadAudioOnly
	}
}
