package iris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kumargauravtiwari/youtube-summarizer/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the Iris HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient uses a 10 second timeout when httpClient is nil.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	var config Config
	if err := c.doRequest(ctx, http.MethodGet, "/config", nil, &config); err != nil {
		c.logger.Error("Failed to get Iris config", zap.Error(err))
		return nil, err
	}
	return &config, nil
}

func (c *Client) SendMessage(ctx context.Context, room, message string) error {
	return c.reply(ctx, ReplyTypeText, room, message)
}

// SendImage posts a base64 encoded image.
func (c *Client) SendImage(ctx context.Context, room, imageBase64 string) error {
	return c.reply(ctx, ReplyTypeImage, room, imageBase64)
}

func (c *Client) reply(ctx context.Context, replyType, room, data string) error {
	req := ReplyRequest{
		Type: replyType,
		Room: room,
		Data: data,
	}
	if err := c.doRequest(ctx, http.MethodPost, "/reply", req, nil); err != nil {
		c.logger.Error("Failed to send reply",
			zap.String("type", replyType),
			zap.String("room", room),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) bool {
	_, err := c.GetConfig(ctx)
	return err == nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return errors.NewAPIError("failed to marshal request", 400, map[string]any{
				"url": url,
			}).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewAPIError("request failed", 502, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.NewAPIError(
			fmt.Sprintf("Iris API error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  url,
				"body": string(bodyBytes),
			},
		)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return errors.NewAPIError("failed to decode response", 502, map[string]any{
				"url": url,
			}).WithCause(err)
		}
	}

	return nil
}
