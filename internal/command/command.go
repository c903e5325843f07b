package command

import (
	"context"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/adapter"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// NotesService produces renderable results for a raw link argument.
type NotesService interface {
	Notes(ctx context.Context, rawURL string) (*domain.Result, error)
	Preview(ctx context.Context, rawURL string) *domain.Result
}

// MessageSender posts replies back to the chat.
type MessageSender interface {
	SendMessage(ctx context.Context, room, message string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

// ThumbnailFetcher downloads a thumbnail as base64.
type ThumbnailFetcher interface {
	FetchBase64(ctx context.Context, imageURL string) (string, error)
}

type Dependencies struct {
	Notes      NotesService
	Formatter  *adapter.ResponseFormatter
	Sender     MessageSender
	Thumbnails ThumbnailFetcher
	Logger     *zap.Logger
	// MaxMessageLength bounds a single chat message; longer replies are split.
	MaxMessageLength int
}

// sendText splits long replies and stops at the first failed chunk.
func (d *Dependencies) sendText(ctx context.Context, room, message string) error {
	for _, chunk := range adapter.SplitMessage(message, d.MaxMessageLength) {
		if err := d.Sender.SendMessage(ctx, room, chunk); err != nil {
			return err
		}
	}
	return nil
}

func urlParam(params map[string]any) string {
	if params == nil {
		return ""
	}
	if v, ok := params["url"].(string); ok {
		return v
	}
	return ""
}
