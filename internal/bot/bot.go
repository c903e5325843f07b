package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/adapter"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/command"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/iris"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/util"
)

// Listener delivers chat messages until ctx is cancelled.
type Listener interface {
	Run(ctx context.Context) error
}

type Dependencies struct {
	Adapter    *adapter.MessageAdapter
	Dispatcher command.Dispatcher
	Logger     *zap.Logger

	// Rooms restricts handling to these room names; empty allows every room.
	Rooms          []string
	MaxConcurrency int
	// Closers run in reverse order on Shutdown.
	Closers []func()
}

// Bot turns chat messages into command executions.
type Bot struct {
	adapter    *adapter.MessageAdapter
	dispatcher command.Dispatcher
	logger     *zap.Logger
	rooms      map[string]struct{}
	closers    []func()

	// slots holds one token per running command.
	slots      chan struct{}
	inflight   conc.WaitGroup
	workCtx    context.Context
	cancelWork context.CancelFunc

	mu       sync.Mutex
	listener Listener
	closed   bool
	stopCh   chan struct{}
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies must not be nil")
	}
	if deps.Adapter == nil || deps.Dispatcher == nil {
		return nil, fmt.Errorf("bot requires a message adapter and dispatcher")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := deps.MaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	rooms := make(map[string]struct{}, len(deps.Rooms))
	for _, room := range deps.Rooms {
		if room = strings.TrimSpace(room); room != "" {
			rooms[room] = struct{}{}
		}
	}

	workCtx, cancelWork := context.WithCancel(context.Background())
	return &Bot{
		adapter:    deps.Adapter,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		rooms:      rooms,
		closers:    deps.Closers,
		slots:      make(chan struct{}, concurrency),
		workCtx:    workCtx,
		cancelWork: cancelWork,
		stopCh:     make(chan struct{}),
	}, nil
}

// SetListener attaches the message source used by Start.
func (b *Bot) SetListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = l
}

// Start blocks on the listener until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	listener := b.listener
	b.mu.Unlock()
	if listener == nil {
		return fmt.Errorf("bot has no message listener")
	}

	b.logger.Info("Bot listening for messages", zap.Int("room_filter", len(b.rooms)))
	return listener.Run(ctx)
}

// HandleMessage is the listener callback. Commands run in their own goroutine
// with a context that outlives the listener, so in-flight summaries finish
// during shutdown. When every slot is busy the call waits for one, or returns
// without running the command once Shutdown starts.
func (b *Bot) HandleMessage(message *iris.Message) {
	if message == nil {
		return
	}
	if !b.roomAllowed(message.Room) {
		return
	}

	parsed := b.adapter.ParseMessage(message)
	if parsed.Type == domain.CommandUnknown {
		return
	}

	cmdCtx := domain.NewCommandContext(message.ReplyTarget(), message.Room, message.SenderName(), parsed.RawMessage)
	params := parsed.Params
	if parsed.Implicit {
		params["implicit"] = true
	}
	event := command.CommandEvent{Type: parsed.Type, Params: params}

	select {
	case b.slots <- struct{}{}:
	case <-b.stopCh:
		b.logger.Warn("Dropping command received during shutdown", zap.String("command", parsed.Type.String()))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		<-b.slots
		b.logger.Warn("Dropping command received during shutdown", zap.String("command", parsed.Type.String()))
		return
	}
	b.inflight.Go(func() {
		defer func() { <-b.slots }()
		b.execute(b.workCtx, cmdCtx, event)
	})
}

func (b *Bot) execute(ctx context.Context, cmdCtx *domain.CommandContext, event command.CommandEvent) {
	logger := b.logger.With(
		zap.String("command", event.Type.String()),
		zap.String("room", cmdCtx.RoomName),
		zap.String("sender", cmdCtx.Sender),
	)

	var catcher panics.Catcher
	catcher.Try(func() {
		if _, err := b.dispatcher.Publish(ctx, cmdCtx, event); err != nil {
			logger.Error("Command failed",
				zap.String("message", util.TruncateString(cmdCtx.Message, constants.StringLimits.LogPreview)),
				zap.Error(err),
			)
		}
	})
	if recovered := catcher.Recovered(); recovered != nil {
		logger.Error("Command panicked", zap.String("panic", recovered.String()))
	}
}

func (b *Bot) roomAllowed(room string) bool {
	if len(b.rooms) == 0 {
		return true
	}
	_, ok := b.rooms[room]
	return ok
}

// Shutdown stops accepting commands, waits for running ones up to ctx, then
// runs the registered closers.
func (b *Bot) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.stopCh)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
		b.logger.Info("In-flight commands finished")
	case <-ctx.Done():
		err = fmt.Errorf("waiting for in-flight commands: %w", ctx.Err())
		b.logger.Warn("Shutdown timed out with commands still running")
	}
	b.cancelWork()

	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	return err
}
