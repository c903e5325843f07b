package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/util"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrServiceUnavailable is returned while the circuit breaker is open.
var ErrServiceUnavailable = errors.New("AI service temporarily unavailable")

var (
	statusCodeRE   = regexp.MustCompile(`\b(5\d{2})\b`)
	geminiCodeRE   = regexp.MustCompile(`"code":\s*(\d{3})`)
	leadingCodeRE  = regexp.MustCompile(`^(\d{3})\s`)
	geminiStatusRE = regexp.MustCompile(`Error (\d{3}),`)
)

type ModelManager struct {
	primary        TextProvider
	fallback       TextProvider
	logger         *zap.Logger
	circuitBreaker *util.CircuitBreaker
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	EnableFallback     bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	defaultGemini := cfg.DefaultGeminiModel
	if defaultGemini == "" {
		defaultGemini = "gemini-2.5-flash"
	}

	defaultOpenAI := cfg.DefaultOpenAIModel
	if defaultOpenAI == "" {
		defaultOpenAI = "gpt-5-mini"
	}

	var geminiClient *genai.Client
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		geminiClient = client
	} else {
		logger.Warn("Gemini API key is not set; summaries will fail until GEMINI_API_KEY or GOOGLE_API_KEY is configured")
	}

	primary := NewGeminiProvider(geminiClient, defaultGemini, logger)

	var fallback TextProvider
	if cfg.EnableFallback {
		if openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, defaultOpenAI, logger); openaiProvider != nil {
			logger.Info("OpenAI fallback enabled", zap.String("model", defaultOpenAI))
			fallback = openaiProvider
		} else {
			logger.Info("OpenAI fallback disabled (no API key)")
		}
	}

	return NewModelManagerWithProviders(primary, fallback, logger), nil
}

// NewModelManagerWithProviders wires explicit providers; fallback may be nil.
func NewModelManagerWithProviders(primary, fallback TextProvider, logger *zap.Logger, opts ...util.CircuitBreakerOption) *ModelManager {
	mm := &ModelManager{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}

	cbOpts := append([]util.CircuitBreakerOption{
		util.WithHealthCheck(mm.healthCheckPing,
			constants.CircuitBreakerConfig.HealthCheckInterval,
			constants.CircuitBreakerConfig.HealthCheckTimeout),
	}, opts...)

	mm.circuitBreaker = util.NewCircuitBreaker(
		"ai",
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		logger,
		cbOpts...,
	)
	return mm
}

// Generate returns the text produced by the primary provider, or by the fallback
// when the primary fails.
func (mm *ModelManager) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	if !mm.circuitBreaker.CanExecute() {
		status := mm.circuitBreaker.Status()
		fields := []zap.Field{
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		}
		if status.NextRetryTime != nil {
			fields = append(fields, zap.Time("next_retry", *status.NextRetryTime))
		}
		mm.logger.Error("AI service unavailable (Circuit OPEN)", fields...)
		return "", nil, ErrServiceUnavailable
	}

	primaryResult, primaryErr := mm.invokeProvider(ctx, mm.primary, prompt, preset, opts)
	if primaryErr == nil {
		mm.circuitBreaker.RecordSuccess()
		return primaryResult.Text, &GenerateMetadata{
			Provider: mm.primary.Name(),
			Model:    primaryResult.Model,
		}, nil
	}

	if mm.fallback != nil {
		mm.logger.Warn("Primary provider failed, trying fallback",
			zap.String("primary", mm.primary.Name()),
			zap.Error(primaryErr),
		)

		// Model names are provider specific.
		var fallbackOpts *GenerateOptions
		if opts != nil {
			copied := *opts
			copied.Model = ""
			fallbackOpts = &copied
		}

		fallbackResult, fallbackErr := mm.invokeProvider(ctx, mm.fallback, prompt, preset, fallbackOpts)
		if fallbackErr == nil {
			mm.circuitBreaker.RecordSuccess()
			return fallbackResult.Text, &GenerateMetadata{
				Provider:     mm.fallback.Name(),
				Model:        fallbackResult.Model,
				UsedFallback: true,
			}, nil
		}

		mm.recordFailure(primaryErr)
		mm.recordFailure(fallbackErr)
		return "", nil, fmt.Errorf("%s failed: %w; %s failed: %v", mm.primary.Name(), primaryErr, mm.fallback.Name(), fallbackErr)
	}

	mm.recordFailure(primaryErr)
	return "", nil, fmt.Errorf("%s failed: %w", mm.primary.Name(), primaryErr)
}

func (mm *ModelManager) invokeProvider(ctx context.Context, provider TextProvider, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if provider == nil {
		return ProviderResult{}, fmt.Errorf("model provider is not configured")
	}
	result, err := provider.Generate(ctx, prompt, preset, opts)
	if err != nil {
		return ProviderResult{}, err
	}
	if strings.TrimSpace(result.Text) == "" {
		return ProviderResult{}, fmt.Errorf("%s API returned empty response", provider.Name())
	}
	return result, nil
}

func (mm *ModelManager) recordFailure(err error) {
	if !isServiceFailure(err) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}
	mm.circuitBreaker.RecordFailure(timeout)
}

func (mm *ModelManager) healthCheckPing(ctx context.Context) bool {
	primaryOK := mm.primary != nil && mm.primary.Ping(ctx)
	fallbackOK := mm.fallback != nil && mm.fallback.Ping(ctx)
	healthy := primaryOK || fallbackOK

	mm.logger.Info("Health Check: Result",
		zap.Bool("primary", primaryOK),
		zap.Bool("fallback", fallbackOK),
		zap.Bool("healthy", healthy),
	)
	return healthy
}

func (mm *ModelManager) CircuitStatus() util.CircuitBreakerStatus {
	return mm.circuitBreaker.Status()
}

func (mm *ModelManager) ResetCircuit() {
	mm.circuitBreaker.Reset()
}

func statusCodeOf(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	msg := err.Error()
	for _, re := range []*regexp.Regexp{geminiCodeRE, geminiStatusRE, leadingCodeRE} {
		if m := re.FindStringSubmatch(msg); len(m) > 1 {
			if code, convErr := strconv.Atoi(m[1]); convErr == nil {
				return code
			}
		}
	}
	return 0
}

// isServiceFailure reports provider-side failures that count against the circuit.
// Missing credentials and bad requests do not.
func isServiceFailure(err error) bool {
	if err == nil || errors.Is(err, ErrNoCredential) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT") {
		return true
	}
	if isRateLimitError(err) {
		return true
	}

	if code := statusCodeOf(err); code != 0 {
		return code >= 500 && code < 600
	}
	return statusCodeRE.MatchString(msg)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	if statusCodeOf(err) == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit") || strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "quota")
}
