package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/prompt"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/ai"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/transcript"
	"go.uber.org/zap"
)

type fakeSource struct {
	transcript *domain.Transcript
	err        error
	calls      int
}

func (f *fakeSource) FetchTranscript(_ context.Context, id domain.VideoID) (*domain.Transcript, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	t := *f.transcript
	t.VideoID = id
	return &t, nil
}

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, p string, _ ai.ModelPreset, _ *ai.GenerateOptions) (string, *ai.GenerateMetadata, error) {
	g.prompts = append(g.prompts, p)
	if g.err != nil {
		return "", nil, g.err
	}
	return g.text, &ai.GenerateMetadata{Provider: "Gemini", Model: "gemini-2.5-flash"}, nil
}

type fakeTitles struct {
	title string
	err   error
}

func (f *fakeTitles) VideoTitle(context.Context, domain.VideoID) (string, error) {
	return f.title, f.err
}

func newService(source *fakeSource, gen *fakeGenerator, opts ...Option) *Service {
	logger := zap.NewNop()
	acquirer := transcript.NewAcquirer(source, logger)
	summarizer := ai.NewSummarizer(gen, ai.PresetBalanced, logger)
	return NewService(acquirer, summarizer, logger, opts...)
}

func TestNotesEndToEnd(t *testing.T) {
	source := &fakeSource{transcript: &domain.Transcript{
		Language: "en",
		Entries:  []domain.TranscriptEntry{{Text: "Hello"}, {Text: "world"}},
	}}
	gen := &fakeGenerator{text: "1. Greeting\n2. The world"}
	svc := newService(source, gen)

	result, err := svc.Notes(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if result.Kind != domain.ResultSummary {
		t.Fatalf("unexpected kind %q", result.Kind)
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id %q", result.VideoID)
	}
	if result.Summary != gen.text {
		t.Fatalf("summary must equal the collaborator's text, got %q", result.Summary)
	}
	if len(gen.prompts) != 1 || gen.prompts[0] != prompt.SummaryInstruction+"Hello world" {
		t.Fatalf("unexpected prompt %q", gen.prompts)
	}
	if result.RequestID == "" {
		t.Fatalf("request id not set")
	}
	if result.Metadata == nil || result.Metadata.Provider != "Gemini" || result.Metadata.TranscriptLen != len("Hello world") {
		t.Fatalf("unexpected metadata %+v", result.Metadata)
	}
	if result.ThumbnailURL != "https://img.youtube.com/vi/dQw4w9WgXcQ/0.jpg" {
		t.Fatalf("unexpected thumbnail %q", result.ThumbnailURL)
	}
}

func TestNotesInvalidURL(t *testing.T) {
	source := &fakeSource{}
	gen := &fakeGenerator{}
	svc := newService(source, gen)

	result, err := svc.Notes(context.Background(), "not a url")
	if err != nil {
		t.Fatalf("invalid input is not an error: %v", err)
	}
	if result.Kind != domain.ResultError || result.Failure.Message != "Invalid YouTube URL" {
		t.Fatalf("unexpected result %+v", result)
	}
	if source.calls != 0 || len(gen.prompts) != 0 {
		t.Fatalf("no collaborator may be called: source=%d generator=%d", source.calls, len(gen.prompts))
	}
}

func TestNotesAcquisitionFailureSkipsSummarizer(t *testing.T) {
	source := &fakeSource{err: transcript.ErrTranscriptsDisabled}
	gen := &fakeGenerator{text: "unused"}
	svc := newService(source, gen)

	result, err := svc.Notes(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if !result.IsError() || result.Failure.Reason != domain.FailureTranscriptsDisabled {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("failure result should keep the identifier")
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("summarizer must not run after a failed acquisition")
	}
}

func TestNotesSummarizerErrorPropagates(t *testing.T) {
	source := &fakeSource{transcript: &domain.Transcript{Entries: []domain.TranscriptEntry{{Text: "x"}}}}
	quota := errors.New("quota exceeded")
	svc := newService(source, &fakeGenerator{err: quota})

	result, err := svc.Notes(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if result != nil {
		t.Fatalf("no result expected on summarization failure")
	}
	if !errors.Is(err, quota) {
		t.Fatalf("expected summarizer error to propagate, got %v", err)
	}
}

func TestNotesTitle(t *testing.T) {
	source := &fakeSource{transcript: &domain.Transcript{
		Title:   "Page title",
		Entries: []domain.TranscriptEntry{{Text: "x"}},
	}}

	svc := newService(source, &fakeGenerator{text: "s"}, WithTitleProvider(&fakeTitles{title: "API title"}))
	result, err := svc.Notes(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil || result.Title != "API title" {
		t.Fatalf("expected API title, got %q %v", result.Title, err)
	}

	svc = newService(source, &fakeGenerator{text: "s"}, WithTitleProvider(&fakeTitles{err: errors.New("quota")}))
	result, err = svc.Notes(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil || result.Title != "Page title" {
		t.Fatalf("title lookup failure must fall back to the page title, got %q %v", result.Title, err)
	}
}

func TestPreview(t *testing.T) {
	svc := newService(&fakeSource{}, &fakeGenerator{})

	result := svc.Preview(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if result.Kind != domain.ResultPreview || result.ThumbnailURL != "https://img.youtube.com/vi/dQw4w9WgXcQ/0.jpg" {
		t.Fatalf("unexpected preview %+v", result)
	}

	result = svc.Preview(context.Background(), "hello there")
	if !result.IsError() || result.Failure.Reason != domain.FailureInvalidURL {
		t.Fatalf("unexpected preview %+v", result)
	}
}
