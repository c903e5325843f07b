package transcript

import (
	"context"
	"errors"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

// Errors a CaptionSource reports for service-confirmed, video-specific conditions.
// Anything else is treated as unclassified.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscriptFound   = errors.New("no transcript found for this video")
)

// CaptionSource fetches the caption track of one video.
type CaptionSource interface {
	FetchTranscript(ctx context.Context, id domain.VideoID) (*domain.Transcript, error)
}

// Cache stores acquired transcripts. A miss returns (nil, nil).
type Cache interface {
	GetTranscript(ctx context.Context, id domain.VideoID) (*domain.Transcript, error)
	SetTranscript(ctx context.Context, t *domain.Transcript) error
}
