package youtube

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	apperrors "github.com/kumargauravtiwari/youtube-summarizer/pkg/errors"
)

// ThumbnailFetcher downloads preview images for chat replies.
type ThumbnailFetcher struct {
	httpClient *http.Client
}

func NewThumbnailFetcher(httpClient *http.Client) *ThumbnailFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ThumbnailFetcher{httpClient: httpClient}
}

// FetchBase64 downloads the image at imageURL and returns it base64 encoded.
func (f *ThumbnailFetcher) FetchBase64(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", apperrors.NewAPIError("failed to create request", 500, map[string]any{
			"url": imageURL,
		}).WithCause(err)
	}
	req.Header.Set("User-Agent", constants.YouTubeConfig.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewAPIError("thumbnail request failed", 502, map[string]any{
			"url": imageURL,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewAPIError(fmt.Sprintf("thumbnail responded %s", resp.Status), resp.StatusCode, map[string]any{
			"url": imageURL,
		})
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", apperrors.NewAPIError("thumbnail is not an image", 415, map[string]any{
			"url":          imageURL,
			"content_type": ct,
		})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, constants.YouTubeConfig.MaxThumbBytes))
	if err != nil {
		return "", apperrors.NewAPIError("failed to read thumbnail", 502, map[string]any{
			"url": imageURL,
		}).WithCause(err)
	}
	if len(data) == 0 {
		return "", apperrors.NewAPIError("empty thumbnail", 502, map[string]any{"url": imageURL})
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
