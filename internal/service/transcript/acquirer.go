package transcript

import (
	"context"
	"errors"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"go.uber.org/zap"
)

// Acquirer turns a raw link into a transcript or exactly one classified failure.
type Acquirer struct {
	source CaptionSource
	cache  Cache
	logger *zap.Logger
}

type AcquirerOption func(*Acquirer)

// WithCache serves and stores successful transcripts through c.
func WithCache(c Cache) AcquirerOption {
	return func(a *Acquirer) {
		a.cache = c
	}
}

func NewAcquirer(source CaptionSource, logger *zap.Logger, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		source: source,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire extracts the identifier from rawURL and fetches its transcript.
// Exactly one of the return values is non-nil. An unrecognized link fails
// before any network call.
func (a *Acquirer) Acquire(ctx context.Context, rawURL string) (*domain.Transcript, *domain.Failure) {
	id, ok := ExtractVideoID(rawURL)
	if !ok {
		return nil, domain.NewInvalidURLFailure()
	}
	return a.AcquireByID(ctx, id)
}

func (a *Acquirer) AcquireByID(ctx context.Context, id domain.VideoID) (*domain.Transcript, *domain.Failure) {
	if id == "" {
		return nil, domain.NewInvalidURLFailure()
	}

	if cached := a.lookupCache(ctx, id); cached != nil {
		return cached, nil
	}

	t, err := a.source.FetchTranscript(ctx, id)
	if err != nil {
		failure := Classify(err)
		a.logger.Warn("Transcript acquisition failed",
			zap.String("video_id", id.String()),
			zap.String("reason", failure.Reason.String()),
			zap.Error(err),
		)
		return nil, failure
	}
	if t.IsEmpty() {
		a.logger.Warn("Caption track has no entries", zap.String("video_id", id.String()))
		return nil, domain.NewNoTranscriptFailure(ErrNoTranscriptFound)
	}
	if t.VideoID == "" {
		t.VideoID = id
	}

	a.storeCache(ctx, t)
	return t, nil
}

// Classify maps a CaptionSource error to its failure category.
func Classify(err error) *domain.Failure {
	switch {
	case errors.Is(err, ErrTranscriptsDisabled):
		return domain.NewTranscriptsDisabledFailure(err)
	case errors.Is(err, ErrNoTranscriptFound):
		return domain.NewNoTranscriptFailure(err)
	default:
		return domain.NewUnclassifiedFailure(err)
	}
}

func (a *Acquirer) lookupCache(ctx context.Context, id domain.VideoID) *domain.Transcript {
	if a.cache == nil {
		return nil
	}
	t, err := a.cache.GetTranscript(ctx, id)
	if err != nil {
		a.logger.Warn("Transcript cache lookup failed", zap.String("video_id", id.String()), zap.Error(err))
		return nil
	}
	if t.IsEmpty() {
		return nil
	}
	a.logger.Debug("Transcript cache hit", zap.String("video_id", id.String()))
	return t
}

func (a *Acquirer) storeCache(ctx context.Context, t *domain.Transcript) {
	if a.cache == nil {
		return
	}
	if err := a.cache.SetTranscript(ctx, t); err != nil {
		a.logger.Warn("Transcript cache store failed", zap.String("video_id", t.VideoID.String()), zap.Error(err))
	}
}
