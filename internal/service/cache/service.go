package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	apperrors "github.com/kumargauravtiwari/youtube-summarizer/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(ctx context.Context, cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, constants.RedisConfig.ReadyTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB),
	)

	return NewCacheServiceWithClient(client, logger), nil
}

// NewCacheServiceWithClient wraps an existing client without pinging it.
func NewCacheServiceWithClient(client *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{client: client, logger: logger}
}

// Get decodes the value at key into dest. found is false on a miss.
func (c *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return false, apperrors.NewCacheError("get failed", "get", key, err)
	}

	if err := json.Unmarshal(value, dest); err != nil {
		c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return false, apperrors.NewCacheError("unmarshal failed", "get", key, err)
	}
	return true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return apperrors.NewCacheError("set failed", "set", key, err)
	}
	return nil
}

func (c *CacheService) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return apperrors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func TranscriptKey(id domain.VideoID) string {
	return constants.CacheKeys.TranscriptPrefix + id.String()
}

func TitleKey(id domain.VideoID) string {
	return constants.CacheKeys.TitlePrefix + id.String()
}

func (c *CacheService) GetTranscript(ctx context.Context, id domain.VideoID) (*domain.Transcript, error) {
	var t domain.Transcript
	found, err := c.Get(ctx, TranscriptKey(id), &t)
	if err != nil || !found {
		return nil, err
	}
	return &t, nil
}

func (c *CacheService) SetTranscript(ctx context.Context, t *domain.Transcript) error {
	if t.IsEmpty() {
		return nil
	}
	return c.Set(ctx, TranscriptKey(t.VideoID), t, constants.CacheTTL.Transcript)
}

func (c *CacheService) GetTitle(ctx context.Context, id domain.VideoID) (string, bool, error) {
	var title string
	found, err := c.Get(ctx, TitleKey(id), &title)
	return title, found, err
}

func (c *CacheService) SetTitle(ctx context.Context, id domain.VideoID, title string) error {
	return c.Set(ctx, TitleKey(id), title, constants.CacheTTL.VideoTitle)
}

func (c *CacheService) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CacheService) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis client", zap.Error(err))
		return err
	}
	c.logger.Info("Redis connection closed")
	return nil
}
