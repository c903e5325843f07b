package command

import (
	"context"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/transcript"
	"go.uber.org/zap"
)

// NotesCommand summarizes the linked video into study notes.
type NotesCommand struct {
	deps *Dependencies
}

func NewNotesCommand(deps *Dependencies) *NotesCommand {
	return &NotesCommand{deps: deps}
}

func (c *NotesCommand) Name() string {
	return domain.CommandNotes.String()
}

func (c *NotesCommand) Description() string {
	return "Summarize a YouTube video into detailed notes"
}

func (c *NotesCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	rawURL := urlParam(params)
	if rawURL == "" {
		return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatMissingURL(domain.CommandNotes))
	}

	// Acknowledge valid links first; generation takes a while.
	if id, ok := transcript.ExtractVideoID(rawURL); ok {
		if err := c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatProcessing(id)); err != nil {
			c.deps.Logger.Warn("Failed to send processing notice", zap.Error(err))
		}
	}

	result, err := c.deps.Notes.Notes(ctx, rawURL)
	if err != nil {
		c.deps.Logger.Error("Notes generation failed",
			zap.String("room", cmdCtx.RoomName),
			zap.String("sender", cmdCtx.Sender),
			zap.Error(err),
		)
		return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatSummaryError())
	}

	return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatResult(result))
}
