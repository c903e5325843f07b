package adapter

import (
	"regexp"
	"strings"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/iris"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/util"
)

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	youtubeLinkPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.|music\.)?(?:youtube\.com|youtu\.be|youtube-nocookie\.com)/\S+`)
)

var (
	notesKeywords   = []string{"notes", "note", "summary", "summarize", "sum", "노트", "요약"}
	previewKeywords = []string{"preview", "thumb", "thumbnail", "미리보기", "썸네일"}
	helpKeywords    = []string{"help", "commands", "도움말", "도움", "명령어"}
)

// MessageAdapter converts KakaoTalk messages to bot commands
type MessageAdapter struct {
	prefix      string
	autoPreview bool
}

func NewMessageAdapter(prefix string, autoPreview bool) *MessageAdapter {
	return &MessageAdapter{prefix: prefix, autoPreview: autoPreview}
}

// ParsedCommand represents a parsed command
type ParsedCommand struct {
	Type       domain.CommandType
	Params     map[string]any
	RawMessage string
	// Implicit is set when the command was inferred from a bare link.
	Implicit bool
}

// URL returns the link argument, if any.
func (pc *ParsedCommand) URL() string {
	if pc == nil || pc.Params == nil {
		return ""
	}
	if v, ok := pc.Params["url"].(string); ok {
		return v
	}
	return ""
}

// ParseMessage parses a KakaoTalk message into a command
func (ma *MessageAdapter) ParseMessage(message *iris.Message) *ParsedCommand {
	if message == nil || message.Msg == "" {
		return ma.createUnknownCommand("")
	}

	text := strings.TrimSpace(message.Msg)

	if !strings.HasPrefix(text, ma.prefix) {
		if ma.autoPreview {
			if link := youtubeLinkPattern.FindString(text); link != "" {
				return &ParsedCommand{
					Type:       domain.CommandPreview,
					Params:     map[string]any{"url": ma.sanitizeURL(link)},
					RawMessage: text,
					Implicit:   true,
				}
			}
		}
		return ma.createUnknownCommand(text)
	}

	commandText := strings.TrimSpace(text[len(ma.prefix):])
	parts := strings.Fields(commandText)
	if len(parts) == 0 {
		return ma.createUnknownCommand(text)
	}

	command := strings.ToLower(parts[0])
	argument := ma.sanitizeURL(strings.Join(parts[1:], " "))

	switch {
	case util.Contains(notesKeywords, command):
		return &ParsedCommand{
			Type:       domain.CommandNotes,
			Params:     map[string]any{"url": argument},
			RawMessage: text,
		}
	case util.Contains(previewKeywords, command):
		return &ParsedCommand{
			Type:       domain.CommandPreview,
			Params:     map[string]any{"url": argument},
			RawMessage: text,
		}
	case util.Contains(helpKeywords, command):
		return &ParsedCommand{
			Type:       domain.CommandHelp,
			Params:     make(map[string]any),
			RawMessage: text,
		}
	default:
		return ma.createUnknownCommand(text)
	}
}

func (ma *MessageAdapter) createUnknownCommand(text string) *ParsedCommand {
	return &ParsedCommand{
		Type:       domain.CommandUnknown,
		Params:     make(map[string]any),
		RawMessage: text,
	}
}

// sanitizeURL strips control characters, collapses whitespace and caps the length.
// The result is otherwise passed to the extractor untouched.
func (ma *MessageAdapter) sanitizeURL(input string) string {
	cleaned := util.StripControlChars(input)
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))

	if len(cleaned) > constants.StringLimits.MaxURLArgument {
		return cleaned[:constants.StringLimits.MaxURLArgument]
	}
	return cleaned
}
