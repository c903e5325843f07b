package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"IRIS_BASE_URL", "IRIS_WS_URL", "KAKAO_ROOMS", "BOT_PREFIX", "BOT_AUTO_PREVIEW",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_ENABLE_FALLBACK",
		"TRANSCRIPT_LANGUAGES", "TRANSCRIPT_HTTP_TIMEOUT", "REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT",
		"NOTES_EXPOSE_ERROR_DETAILS", "NOTES_MODEL_PRESET", "LOG_LEVEL", "LOG_FILE", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Prefix != "!" {
		t.Errorf("expected default prefix, got %q", cfg.Bot.Prefix)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected default model %q", cfg.Gemini.Model)
	}
	if len(cfg.Transcript.Languages) != 1 || cfg.Transcript.Languages[0] != "en" {
		t.Errorf("unexpected languages %v", cfg.Transcript.Languages)
	}
	if cfg.Transcript.HTTPTimeout != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Transcript.HTTPTimeout)
	}
	if cfg.Redis.Enabled {
		t.Errorf("redis must be disabled by default")
	}
	if cfg.Notes.ExposeErrorDetails {
		t.Errorf("error details must be hidden by default")
	}
}

func TestLoadWithoutCredentialSucceeds(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing credential must not fail startup: %v", err)
	}
	if cfg.HasSummarizer() {
		t.Fatalf("no summarizer credential expected")
	}
}

func TestLoadGoogleAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "google-key" {
		t.Fatalf("expected GOOGLE_API_KEY to be used, got %q", cfg.Gemini.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "gemini-key" {
		t.Fatalf("GEMINI_API_KEY must take precedence, got %q", cfg.Gemini.APIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAKAO_ROOMS", "notes, study ,")
	t.Setenv("TRANSCRIPT_LANGUAGES", "ko,en")
	t.Setenv("TRANSCRIPT_HTTP_TIMEOUT", "45")
	t.Setenv("BOT_AUTO_PREVIEW", "true")
	t.Setenv("NOTES_MODEL_PRESET", "precise")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Kakao.Rooms) != 2 || cfg.Kakao.Rooms[1] != "study" {
		t.Errorf("unexpected rooms %v", cfg.Kakao.Rooms)
	}
	if cfg.Transcript.Languages[0] != "ko" {
		t.Errorf("unexpected languages %v", cfg.Transcript.Languages)
	}
	if cfg.Transcript.HTTPTimeout != 45*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Transcript.HTTPTimeout)
	}
	if !cfg.Bot.AutoPreview {
		t.Errorf("auto preview not enabled")
	}
}

func TestLoadTranscriptTimeoutZeroMeansNoOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSCRIPT_HTTP_TIMEOUT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transcript.HTTPTimeout != 0 {
		t.Errorf("unexpected timeout %v", cfg.Transcript.HTTPTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"preset":    {"NOTES_MODEL_PRESET": "wild"},
		"log level": {"LOG_LEVEL": "loud"},
		"port":      {"REDIS_PORT": "70000"},
		"iris url":  {"IRIS_BASE_URL": "not a url"},
		"timeout":   {"TRANSCRIPT_HTTP_TIMEOUT": "-5s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
