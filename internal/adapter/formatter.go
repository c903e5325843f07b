package adapter

import (
	"fmt"
	"strings"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/util"
)

// ResponseFormatter formats bot responses
type ResponseFormatter struct {
	prefix             string
	autoPreview        bool
	exposeErrorDetails bool
}

func NewResponseFormatter(prefix string, autoPreview, exposeErrorDetails bool) *ResponseFormatter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!"
	}
	return &ResponseFormatter{
		prefix:             prefix,
		autoPreview:        autoPreview,
		exposeErrorDetails: exposeErrorDetails,
	}
}

type notesView struct {
	Title        string
	WatchURL     string
	Summary      string
	Provider     string
	Model        string
	UsedFallback bool
}

// FormatResult renders any Result kind.
func (f *ResponseFormatter) FormatResult(result *domain.Result) string {
	if result == nil {
		return f.FormatNoTranscript()
	}
	switch result.Kind {
	case domain.ResultSummary:
		return f.FormatNotes(result)
	case domain.ResultPreview:
		return f.FormatPreview(result)
	case domain.ResultError:
		return f.FormatFailure(result.Failure)
	default:
		return f.FormatNoTranscript()
	}
}

// FormatNotes renders the summary under the "Detailed Notes" header. The summary text is not altered.
func (f *ResponseFormatter) FormatNotes(result *domain.Result) string {
	view := notesView{
		Title:    util.TruncateString(result.Title, constants.StringLimits.VideoTitle),
		WatchURL: result.VideoID.WatchURL(),
		Summary:  result.Summary,
	}
	if result.Metadata != nil {
		view.Provider = result.Metadata.Provider
		view.Model = result.Metadata.Model
		view.UsedFallback = result.Metadata.UsedFallback
	}

	rendered, err := renderReply(replyNotes, view)
	if err != nil {
		return fmt.Sprintf("## 📌 Detailed Notes:\n%s", view.Summary)
	}
	return rendered
}

func (f *ResponseFormatter) FormatPreview(result *domain.Result) string {
	var sb strings.Builder
	sb.WriteString("🖼 ")
	if result.Title != "" {
		sb.WriteString(result.Title)
		sb.WriteString("\n")
	}
	sb.WriteString(result.ThumbnailURL)
	return sb.String()
}

// FormatFailure renders an acquisition failure as a short warning.
func (f *ResponseFormatter) FormatFailure(failure *domain.Failure) string {
	if failure == nil {
		return f.FormatNoTranscript()
	}
	message := failure.UserMessage(f.exposeErrorDetails)
	switch failure.Reason {
	case domain.FailureTranscriptsDisabled, domain.FailureUnclassified:
		return fmt.Sprintf("❌ %s", message)
	default:
		return fmt.Sprintf("⚠️ %s", message)
	}
}

// FormatNoTranscript covers a pipeline that produced neither transcript nor failure.
func (f *ResponseFormatter) FormatNoTranscript() string {
	return "⚠️ No transcript found for this video."
}

func (f *ResponseFormatter) FormatSummaryError() string {
	return "❌ Could not generate notes for this video right now. Please try again later."
}

func (f *ResponseFormatter) FormatProcessing(id domain.VideoID) string {
	return fmt.Sprintf("⏳ Reading the transcript of %s ...", id)
}

func (f *ResponseFormatter) FormatMissingURL(command domain.CommandType) string {
	return fmt.Sprintf("⚠️ Please add a YouTube link. Example: %s%s https://youtu.be/dQw4w9WgXcQ", f.prefix, command)
}

func (f *ResponseFormatter) FormatHelp() string {
	rendered, err := renderReply(replyHelp, struct {
		Prefix      string
		AutoPreview bool
	}{Prefix: f.prefix, AutoPreview: f.autoPreview})
	if err != nil {
		return fmt.Sprintf("%snotes [YouTube link] - summarize a video", f.prefix)
	}
	return rendered
}

func (f *ResponseFormatter) FormatError(message string) string {
	return fmt.Sprintf("❌ %s", message)
}

// SplitMessage breaks text into chat-sized chunks, preferring line boundaries.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = constants.StringLimits.MaxMessageLength
	}
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if currentLen+len(runes) > limit {
			flush()
		}
		current.WriteString(string(runes))
		currentLen += len(runes)
	}
	flush()
	return chunks
}
