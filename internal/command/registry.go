package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

// ErrUnknownCommand means no handler exists for the chat keyword's command type.
var ErrUnknownCommand = errors.New("unknown command")

// Registry maps command types (notes, preview, help) to their handlers. The
// adapter already folds chat keywords and aliases into a type, so lookups here
// are by type name only.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Command)}
}

// Register replaces any handler already bound to the same type.
func (r *Registry) Register(handler Command) {
	if handler == nil {
		return
	}
	key := strings.ToLower(handler.Name())

	r.mu.Lock()
	r.handlers[key] = handler
	r.mu.Unlock()
}

// Execute runs the handler for cmdType and returns its error unchanged.
func (r *Registry) Execute(ctx context.Context, cmdCtx *domain.CommandContext, cmdType string, params map[string]any) error {
	if r == nil {
		return errors.New("command registry is nil")
	}
	handler, ok := r.lookup(cmdType)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmdType)
	}
	return handler.Execute(ctx, cmdCtx, params)
}

// Count reports how many command types are wired; logged once at startup.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func (r *Registry) lookup(cmdType string) (Command, bool) {
	if cmdType == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[strings.ToLower(cmdType)]
	return handler, ok
}
