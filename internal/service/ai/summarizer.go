package ai

import (
	"context"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/prompt"
	"go.uber.org/zap"
)

// Generator is the part of ModelManager the summarizer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error)
}

// Summarizer sends the fixed instruction plus the raw transcript to the model.
type Summarizer struct {
	generator Generator
	preset    ModelPreset
	logger    *zap.Logger
}

func NewSummarizer(generator Generator, preset ModelPreset, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		generator: generator,
		preset:    preset,
		logger:    logger,
	}
}

// Summarize returns the model's text unchanged. Errors are returned to the caller as is.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, *GenerateMetadata, error) {
	s.logger.Debug("Summarizing transcript",
		zap.Int("transcript_length", len(transcript)),
		zap.String("preset", string(s.preset)),
	)
	return s.generator.Generate(ctx, prompt.BuildSummaryPrompt(transcript), s.preset, nil)
}
