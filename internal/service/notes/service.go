package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/ai"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/transcript"
	"go.uber.org/zap"
)

// TranscriptAcquirer yields a transcript or exactly one failure.
type TranscriptAcquirer interface {
	AcquireByID(ctx context.Context, id domain.VideoID) (*domain.Transcript, *domain.Failure)
}

// Summarizer turns a transcript into notes.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, *ai.GenerateMetadata, error)
}

// TitleProvider looks up a video's display title.
type TitleProvider interface {
	VideoTitle(ctx context.Context, id domain.VideoID) (string, error)
}

// Service handles one user interaction per call and returns a Result for rendering.
type Service struct {
	acquirer   TranscriptAcquirer
	summarizer Summarizer
	titles     TitleProvider
	logger     *zap.Logger
	newID      func() string
}

type Option func(*Service)

// WithTitleProvider enables title lookups for rendered results.
func WithTitleProvider(p TitleProvider) Option {
	return func(s *Service) {
		s.titles = p
	}
}

func NewService(acquirer TranscriptAcquirer, summarizer Summarizer, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		acquirer:   acquirer,
		summarizer: summarizer,
		logger:     logger,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview resolves the thumbnail for rawURL without any network call.
func (s *Service) Preview(ctx context.Context, rawURL string) *domain.Result {
	requestID := s.newID()
	logger := s.logger.With(zap.String("request_id", requestID))

	id, ok := transcript.ExtractVideoID(rawURL)
	if !ok {
		logger.Info("Preview rejected: no video identifier", zap.String("input", rawURL))
		result := domain.NewErrorResult("", domain.NewInvalidURLFailure())
		result.RequestID = requestID
		return result
	}

	result := domain.NewPreviewResult(id, "")
	result.RequestID = requestID
	logger.Debug("Preview resolved", zap.String("video_id", id.String()))
	return result
}

// Notes runs extract, acquire and summarize for rawURL. Acquisition failures are
// returned as an error Result; a summarization failure is returned as error.
func (s *Service) Notes(ctx context.Context, rawURL string) (*domain.Result, error) {
	requestID := s.newID()
	logger := s.logger.With(zap.String("request_id", requestID))
	started := time.Now()

	id, ok := transcript.ExtractVideoID(rawURL)
	if !ok {
		logger.Info("Notes rejected: no video identifier", zap.String("input", rawURL))
		result := domain.NewErrorResult("", domain.NewInvalidURLFailure())
		result.RequestID = requestID
		return result, nil
	}
	logger = logger.With(zap.String("video_id", id.String()))

	tr, failure := s.acquirer.AcquireByID(ctx, id)
	if failure != nil {
		logger.Info("Notes stopped at acquisition",
			zap.String("reason", failure.Reason.String()),
			zap.NamedError("cause", failure.Cause),
		)
		result := domain.NewErrorResult(id, failure)
		result.RequestID = requestID
		return result, nil
	}

	text := tr.Text()
	summary, meta, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		logger.Error("Summarization failed", zap.Error(err), zap.Int("transcript_length", len(text)))
		return nil, fmt.Errorf("summarize %s: %w", id, err)
	}

	result := domain.NewSummaryResult(id, s.lookupTitle(ctx, logger, id, tr), summary, summaryMetadata(meta, tr, text))
	result.RequestID = requestID

	logger.Info("Notes generated",
		zap.Int("transcript_length", len(text)),
		zap.Int("summary_length", len(summary)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (s *Service) lookupTitle(ctx context.Context, logger *zap.Logger, id domain.VideoID, tr *domain.Transcript) string {
	if s.titles != nil {
		title, err := s.titles.VideoTitle(ctx, id)
		if err != nil {
			logger.Warn("Title lookup failed", zap.Error(err))
		} else if title != "" {
			return title
		}
	}
	return tr.Title
}

func summaryMetadata(meta *ai.GenerateMetadata, tr *domain.Transcript, text string) *domain.SummaryMetadata {
	out := &domain.SummaryMetadata{
		TranscriptLen: len(text),
		Language:      tr.Language,
	}
	if meta != nil {
		out.Provider = meta.Provider
		out.Model = meta.Model
		out.UsedFallback = meta.UsedFallback
	}
	return out
}
