package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/adapter"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/bot"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/command"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/config"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/iris"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/ai"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/cache"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/notes"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/transcript"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/service/youtube"
)

// Container bundles assembled services for constructing runtime components like Bot.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Notes        *notes.Service
	ModelManager *ai.ModelManager

	botDeps    *bot.Dependencies
	irisClient *iris.Client

	closers   []func()
	closeOnce sync.Once
}

// NewBot instantiates a bot wired to the Iris WebSocket.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	b, err := bot.NewBot(c.botDeps)
	if err != nil {
		return nil, err
	}
	b.SetListener(iris.NewWebSocket(c.Config.Iris.WSURL, b.HandleMessage, c.Logger.Named("iris-ws"),
		iris.WithReconnect(constants.WebSocketConfig.MaxReconnectAttempts, constants.WebSocketConfig.ReconnectDelay),
	))
	return b, nil
}

// Close releases external resources (the Redis connection) in reverse creation
// order. Safe to call more than once; a bot built from this container calls it
// at the end of Shutdown.
func (c *Container) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		for i := len(c.closers) - 1; i >= 0; i-- {
			c.closers[i]()
		}
	})
}

// Iris exposes the HTTP client for startup health checks.
func (c *Container) Iris() *iris.Client {
	return c.irisClient
}

// Build assembles every service. Optional integrations (Redis, YouTube Data
// API) are skipped when not configured; a failure in a configured one aborts.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache
	var cacheSvc *cache.CacheService
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewCacheService(ctx, cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	// Transcript acquisition
	httpClient := &http.Client{Timeout: cfg.Transcript.HTTPTimeout}
	source := transcript.NewYouTubeSource(httpClient, cfg.Transcript.Languages, logger.Named("youtube"))
	var acquirerOpts []transcript.AcquirerOption
	if cacheSvc != nil {
		acquirerOpts = append(acquirerOpts, transcript.WithCache(cacheSvc))
	}
	acquirer := transcript.NewAcquirer(source, logger.Named("acquirer"), acquirerOpts...)

	// AI stack
	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		EnableFallback:     cfg.OpenAI.EnableFallback,
	}, logger.Named("ai"))
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}
	summarizer := ai.NewSummarizer(modelManager, ai.ParsePreset(cfg.Notes.Preset), logger.Named("summarizer"))

	// Notes pipeline
	var notesOpts []notes.Option
	if cfg.YouTube.APIKey != "" {
		var titleCache youtube.TitleCache
		if cacheSvc != nil {
			titleCache = cacheSvc
		}
		metadata, metaErr := youtube.NewMetadataService(ctx, cfg.YouTube.APIKey, titleCache, logger.Named("youtube-api"))
		if metaErr != nil {
			err = metaErr
			return nil, fmt.Errorf("failed to create YouTube metadata service: %w", err)
		}
		notesOpts = append(notesOpts, notes.WithTitleProvider(metadata))
	}
	notesSvc := notes.NewService(acquirer, summarizer, logger.Named("notes"), notesOpts...)

	// Presentation
	irisClient := iris.NewClient(cfg.Iris.BaseURL, nil, logger.Named("iris"))
	messageAdapter := adapter.NewMessageAdapter(cfg.Bot.Prefix, cfg.Bot.AutoPreview)
	formatter := adapter.NewResponseFormatter(cfg.Bot.Prefix, cfg.Bot.AutoPreview, cfg.Notes.ExposeErrorDetails)

	cmdDeps := &command.Dependencies{
		Notes:            notesSvc,
		Formatter:        formatter,
		Sender:           irisClient,
		Thumbnails:       youtube.NewThumbnailFetcher(httpClient),
		Logger:           logger.Named("command"),
		MaxMessageLength: constants.StringLimits.MaxMessageLength,
	}
	registry := command.NewRegistry()
	registry.Register(command.NewNotesCommand(cmdDeps))
	registry.Register(command.NewPreviewCommand(cmdDeps))
	registry.Register(command.NewHelpCommand(cmdDeps))

	logger.Info("Services assembled",
		zap.Int("commands", registry.Count()),
		zap.Bool("redis_cache", cacheSvc != nil),
		zap.Bool("youtube_data_api", cfg.YouTube.APIKey != ""),
		zap.Bool("summarizer_configured", cfg.HasSummarizer()),
		zap.Strings("transcript_languages", cfg.Transcript.Languages),
	)

	container = &Container{
		Config:       cfg,
		Logger:       logger,
		Notes:        notesSvc,
		ModelManager: modelManager,
		irisClient:   irisClient,
		closers:      closers,
	}
	container.botDeps = &bot.Dependencies{
		Adapter:        messageAdapter,
		Dispatcher:     command.NewSequentialDispatcher(registry),
		Logger:         logger.Named("bot"),
		Rooms:          cfg.Kakao.Rooms,
		MaxConcurrency: cfg.Bot.MaxConcurrency,
		Closers:        []func(){container.Close},
	}
	return container, nil
}
