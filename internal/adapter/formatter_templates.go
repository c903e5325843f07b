package adapter

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Chat replies that span several lines (notes, help) live in templates/ so the
// wording can change without touching the formatter.
//
//go:embed templates/*.tmpl
var replyTemplateFS embed.FS

type replyTemplate string

const (
	replyNotes replyTemplate = "notes"
	replyHelp  replyTemplate = "help"
)

var loadReplyTemplates = sync.OnceValues(func() (*template.Template, error) {
	return template.New("replies").ParseFS(replyTemplateFS, "templates/*.tmpl")
})

// renderReply fills a reply template. Trailing newlines are dropped because
// KakaoTalk shows them as an empty last line.
func renderReply(name replyTemplate, data any) (string, error) {
	tmpl, err := loadReplyTemplates()
	if err != nil {
		return "", fmt.Errorf("load reply templates: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, string(name), data); err != nil {
		return "", fmt.Errorf("render %s reply: %w", name, err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
