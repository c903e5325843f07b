package youtube

import (
	"context"
	"fmt"
	"sync"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// TitleCache stores looked-up video titles.
type TitleCache interface {
	GetTitle(ctx context.Context, id domain.VideoID) (string, bool, error)
	SetTitle(ctx context.Context, id domain.VideoID, title string) error
}

// MetadataService looks up video titles through the YouTube Data API.
type MetadataService struct {
	service   *youtube.Service
	cache     TitleCache
	logger    *zap.Logger
	quotaUsed int
	quotaMu   sync.Mutex
}

const videosListQuotaCost = 1 // videos.list cost

func NewMetadataService(ctx context.Context, apiKey string, cache TitleCache, logger *zap.Logger, opts ...option.ClientOption) (*MetadataService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	logger.Info("YouTube metadata service initialized")

	return &MetadataService{
		service: service,
		cache:   cache,
		logger:  logger,
	}, nil
}

// VideoTitle returns the video's title, or an empty string when the video is unknown.
func (ms *MetadataService) VideoTitle(ctx context.Context, id domain.VideoID) (string, error) {
	if ms.cache != nil {
		title, found, err := ms.cache.GetTitle(ctx, id)
		if err != nil {
			ms.logger.Warn("Title cache lookup failed", zap.String("video_id", id.String()), zap.Error(err))
		} else if found {
			return title, nil
		}
	}

	resp, err := ms.service.Videos.List([]string{"snippet"}).
		Id(id.String()).
		MaxResults(1).
		Context(ctx).
		Do()
	ms.trackQuota(videosListQuotaCost)
	if err != nil {
		return "", fmt.Errorf("videos.list %s: %w", id, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", nil
	}

	title := resp.Items[0].Snippet.Title
	if ms.cache != nil && title != "" {
		if err := ms.cache.SetTitle(ctx, id, title); err != nil {
			ms.logger.Warn("Title cache store failed", zap.String("video_id", id.String()), zap.Error(err))
		}
	}
	return title, nil
}

func (ms *MetadataService) trackQuota(cost int) {
	ms.quotaMu.Lock()
	defer ms.quotaMu.Unlock()
	ms.quotaUsed += cost
}

// QuotaUsed reports units spent since startup.
func (ms *MetadataService) QuotaUsed() int {
	ms.quotaMu.Lock()
	defer ms.quotaMu.Unlock()
	return ms.quotaUsed
}
