package model

import (
	"encoding/json"
	"testing"
)

func TestPreferences_RoundTrip(t *testing.T) {
	prefs := Preferences{URL: "x", DownloadType: DownloadVideoAudio}

	blob, err := json.Marshal(prefs)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded := DefaultPreferences()
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded != prefs {
		t.Errorf("Round trip mismatch: got %+v, expected %+v", decoded, prefs)
	}
}

func TestPreferences_MissingDownloadType(t *testing.T) {
	decoded := DefaultPreferences()
	if err := json.Unmarshal([]byte(`{"url":"https://youtu.be/abc"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.DownloadType != DownloadAudioOnly {
		t.Errorf("Expected default %s, got %s", DownloadAudioOnly, decoded.DownloadType)
	}
	if decoded.URL != "https://youtu.be/abc" {
		t.Errorf("Expected URL to be kept, got %q", decoded.URL)
	}
}

func TestPreferences_SerializedNames(t *testing.T) {
	blob, err := json.Marshal(Preferences{URL: "x", DownloadType: DownloadVideoAudio})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	expected := `{"url":"x","download_type":"VideoAudio"}`
	if string(blob) != expected {
		t.Errorf("Expected %s, got %s", expected, string(blob))
	}
}

func TestParseDownloadType(t *testing.T) {
	tests := []struct {
		input    string
		expected DownloadType
	}{
		{"AudioOnly", DownloadAudioOnly},
		{"VideoAudio", DownloadVideoAudio},
		{"Video + Audio", DownloadVideoAudio},
		{"video", DownloadVideoAudio},
		{"audio", DownloadAudioOnly},
		{"something-new", DownloadAudioOnly},
		{"", DownloadAudioOnly},
	}

	for _, test := range tests {
		result := ParseDownloadType(test.input)
		if result != test.expected {
			t.Errorf("ParseDownloadType(%q) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestDownloadType_SuggestedFileName(t *testing.T) {
	if name := DownloadAudioOnly.SuggestedFileName(); name != "soundtrack.mp3" {
		t.Errorf("unexpected audio file name: %s", name)
	}
	if name := DownloadVideoAudio.SuggestedFileName(); name != "video.mp4" {
		t.Errorf("unexpected video file name: %s", name)
	}
}
