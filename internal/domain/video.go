package domain

import (
	"fmt"
	"strings"
)

// VideoIDLength is the fixed length of a YouTube video identifier.
const VideoIDLength = 11

// VideoID is the 11-character token YouTube uses to address a video.
// It is produced by the identifier extractor and never checked against YouTube before acquisition.
type VideoID string

func (id VideoID) String() string {
	return string(id)
}

// WatchURL returns the canonical watch page URL.
func (id VideoID) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}

// ThumbnailURL returns the templated preview image URL. The image is not fetched or validated.
func (id VideoID) ThumbnailURL() string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", id)
}

// IsVideoIDChar reports whether r may appear in a video identifier.
func IsVideoIDChar(r byte) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	default:
		return false
	}
}

type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the ordered caption track of one video.
type Transcript struct {
	VideoID   VideoID           `json:"video_id"`
	Title     string            `json:"title,omitempty"`
	Language  string            `json:"language,omitempty"`
	Generated bool              `json:"generated,omitempty"`
	Entries   []TranscriptEntry `json:"entries"`
}

// Text joins the entry texts in service order with a single space.
func (t *Transcript) Text() string {
	if t == nil || len(t.Entries) == 0 {
		return ""
	}
	parts := make([]string, len(t.Entries))
	for i, entry := range t.Entries {
		parts[i] = entry.Text
	}
	return strings.Join(parts, " ")
}

func (t *Transcript) IsEmpty() bool {
	return t == nil || len(t.Entries) == 0
}
