package command

import (
	"context"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"go.uber.org/zap"
)

// PreviewCommand posts the video thumbnail, falling back to a text link when
// the image cannot be fetched or sent.
type PreviewCommand struct {
	deps *Dependencies
}

func NewPreviewCommand(deps *Dependencies) *PreviewCommand {
	return &PreviewCommand{deps: deps}
}

func (c *PreviewCommand) Name() string {
	return domain.CommandPreview.String()
}

func (c *PreviewCommand) Description() string {
	return "Show the thumbnail of a YouTube video"
}

func (c *PreviewCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	rawURL := urlParam(params)
	if rawURL == "" {
		return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatMissingURL(domain.CommandPreview))
	}

	result := c.deps.Notes.Preview(ctx, rawURL)
	if result.IsError() {
		if implicit, _ := params["implicit"].(bool); implicit {
			// bare links that are not videos (channels, playlists) are ignored
			return nil
		}
		return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatResult(result))
	}

	if c.deps.Thumbnails != nil {
		image, err := c.deps.Thumbnails.FetchBase64(ctx, result.ThumbnailURL)
		if err == nil {
			if err = c.deps.Sender.SendImage(ctx, cmdCtx.Room, image); err == nil {
				return nil
			}
		}
		c.deps.Logger.Warn("Thumbnail image unavailable, sending link",
			zap.String("video_id", result.VideoID.String()),
			zap.Error(err),
		)
	}

	return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatPreview(result))
}
