package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Iris: config.IrisConfig{BaseURL: "http://127.0.0.1:1", WSURL: "ws://127.0.0.1:1/ws"},
		Bot:  config.BotConfig{Prefix: "!", MaxConcurrency: 2},
		Gemini: config.GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		OpenAI: config.OpenAIConfig{Model: "gpt-5-mini"},
		Transcript: config.TranscriptConfig{
			Languages:   []string{"en"},
			HTTPTimeout: time.Second,
		},
		Notes:   config.NotesConfig{Preset: "balanced"},
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestBuildRejectsNilInputs(t *testing.T) {
	if _, err := Build(context.Background(), nil, zap.NewNop()); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := Build(context.Background(), testConfig(), nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestBuildWithoutOptionalIntegrations(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if container.Notes == nil || container.ModelManager == nil || container.Iris() == nil {
		t.Fatal("container is missing core services")
	}

	b, err := container.NewBot()
	if err != nil {
		t.Fatalf("NewBot() error = %v", err)
	}
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestBuildFailsWhenRedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := Build(ctx, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error when redis is enabled but unreachable")
	}
}

func TestNewBotWithoutBuild(t *testing.T) {
	var c *Container
	if _, err := c.NewBot(); err == nil {
		t.Fatal("expected error for nil container")
	}
}

func TestContainerCloseRunsClosersOnce(t *testing.T) {
	var order []string
	c := &Container{closers: []func(){
		func() { order = append(order, "cache") },
		func() { order = append(order, "client") },
	}}

	c.Close()
	c.Close()

	if len(order) != 2 || order[0] != "client" || order[1] != "cache" {
		t.Fatalf("closers ran as %v, want [client cache] once", order)
	}

	var nilContainer *Container
	nilContainer.Close()
}

func TestBotShutdownClosesContainer(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	closed := 0
	container.closers = append(container.closers, func() { closed++ })

	b, err := container.NewBot()
	if err != nil {
		t.Fatalf("NewBot() error = %v", err)
	}
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	container.Close()

	if closed != 1 {
		t.Fatalf("container closers ran %d times, want 1", closed)
	}
}
