package constants

import "time"

var CacheTTL = struct {
	Transcript time.Duration
	VideoTitle time.Duration
}{
	Transcript: 6 * time.Hour,  // 6시간 - 자막 원문
	VideoTitle: 24 * time.Hour, // 1일 - 영상 제목
}

var CacheKeys = struct {
	TranscriptPrefix string
	TitlePrefix      string
}{
	TranscriptPrefix: "notes:transcript:",
	TitlePrefix:      "notes:title:",
}

var WebSocketConfig = struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	HandshakeTimeout     time.Duration
}{
	MaxReconnectAttempts: 5,
	ReconnectDelay:       5 * time.Second,
	HandshakeTimeout:     10 * time.Second,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,                // 3회 연속 실패 시 Circuit OPEN
	ResetTimeout:        30 * time.Second, // 기본 재시도 대기 시간 (30초)
	RateLimitTimeout:    1 * time.Hour,    // 429 Rate Limit 전용 타임아웃 (1시간)
	HealthCheckInterval: 10 * time.Minute, // Health Check 주기 (10분)
	HealthCheckTimeout:  10 * time.Second, // Health Check 타임아웃 (10초)
}

var YouTubeConfig = struct {
	WatchURL        string
	MaxPageBytes    int64
	MaxCaptionBytes int64
	MaxThumbBytes   int64
	UserAgent       string
}{
	WatchURL:        "https://www.youtube.com/watch",
	MaxPageBytes:    6 * 1024 * 1024,
	MaxCaptionBytes: 4 * 1024 * 1024,
	MaxThumbBytes:   2 * 1024 * 1024,
	UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
}

var StringLimits = struct {
	MaxURLArgument   int
	VideoTitle       int
	LogPreview       int
	MaxMessageLength int
}{
	MaxURLArgument:   512,
	VideoTitle:       100,
	LogPreview:       120,
	MaxMessageLength: 4000, // 카카오톡 단일 메시지 기준
}

var ShutdownConfig = struct {
	Timeout time.Duration
}{
	Timeout: 30 * time.Second,
}
