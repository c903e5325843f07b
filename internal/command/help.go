package command

import (
	"context"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return domain.CommandHelp.String()
}

func (c *HelpCommand) Description() string {
	return "Show the available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	return c.deps.sendText(ctx, cmdCtx.Room, c.deps.Formatter.FormatHelp())
}
