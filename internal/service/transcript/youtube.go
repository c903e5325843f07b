package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
	apperrors "github.com/kumargauravtiwari/youtube-summarizer/pkg/errors"
	"go.uber.org/zap"
)

const playerResponseMarker = "ytInitialPlayerResponse = "

var inlineTagRE = regexp.MustCompile(`<[^>]*>`)

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails *struct {
		Title string `json:"title"`
	} `json:"videoDetails"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

func (t captionTrack) generated() bool {
	return t.Kind == "asr"
}

type timedText struct {
	Lines []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Text     string  `xml:",chardata"`
	} `xml:"text"`
}

// YouTubeSource reads caption tracks from the public watch page.
type YouTubeSource struct {
	httpClient *http.Client
	watchURL   string
	languages  []string
	logger     *zap.Logger
}

type YouTubeSourceOption func(*YouTubeSource)

// WithWatchURL overrides the watch page endpoint, used by tests.
func WithWatchURL(u string) YouTubeSourceOption {
	return func(s *YouTubeSource) {
		s.watchURL = u
	}
}

func NewYouTubeSource(httpClient *http.Client, languages []string, logger *zap.Logger, opts ...YouTubeSourceOption) *YouTubeSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	s := &YouTubeSource{
		httpClient: httpClient,
		watchURL:   constants.YouTubeConfig.WatchURL,
		languages:  languages,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *YouTubeSource) FetchTranscript(ctx context.Context, id domain.VideoID) (*domain.Transcript, error) {
	player, err := s.fetchPlayerResponse(ctx, id)
	if err != nil {
		return nil, err
	}

	tracks := player.captionTracks()
	if len(tracks) == 0 {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Status != "" && player.PlayabilityStatus.Status != "OK" {
			return nil, fmt.Errorf("video unavailable: %s", player.unplayableReason())
		}
		return nil, ErrTranscriptsDisabled
	}

	track, err := pickTrack(tracks, s.languages)
	if err != nil {
		return nil, err
	}

	entries, err := s.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Caption track fetched",
		zap.String("video_id", id.String()),
		zap.String("language", track.LanguageCode),
		zap.Bool("generated", track.generated()),
		zap.Int("entries", len(entries)),
	)

	return &domain.Transcript{
		VideoID:   id,
		Title:     player.title(),
		Language:  track.LanguageCode,
		Generated: track.generated(),
		Entries:   entries,
	}, nil
}

func (s *YouTubeSource) fetchPlayerResponse(ctx context.Context, id domain.VideoID) (*playerResponse, error) {
	u, err := url.Parse(s.watchURL)
	if err != nil {
		return nil, fmt.Errorf("invalid watch url: %w", err)
	}
	q := u.Query()
	q.Set("v", id.String())
	q.Set("hl", "en")
	u.RawQuery = q.Encode()

	body, err := s.get(ctx, u.String(), constants.YouTubeConfig.MaxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	if doc.Find(`form[action*="/das_captcha"], div#recaptcha`).Length() > 0 {
		return nil, errors.New("too many requests: YouTube is asking for a captcha")
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if idx := strings.Index(text, playerResponseMarker); idx >= 0 {
			raw = text[idx+len(playerResponseMarker):]
			return false
		}
		return true
	})
	if raw == "" {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	// The decoder stops after the first JSON value, ignoring the trailing script.
	var player playerResponse
	if err := json.NewDecoder(strings.NewReader(raw)).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &player, nil
}

func (p *playerResponse) captionTracks() []captionTrack {
	if p.Captions == nil {
		return nil
	}
	return p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}

func (p *playerResponse) title() string {
	if p.VideoDetails == nil {
		return ""
	}
	return p.VideoDetails.Title
}

func (p *playerResponse) unplayableReason() string {
	if p.PlayabilityStatus.Reason != "" {
		return p.PlayabilityStatus.Reason
	}
	return strings.ToLower(p.PlayabilityStatus.Status)
}

// pickTrack walks the language preferences in order, taking a manually created track
// before a generated one for each language.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, error) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		// Tracks with &exp=xpe require a browser PoToken.
		if !strings.Contains(t.BaseURL, "&exp=xpe") {
			usable = append(usable, t)
		}
	}

	for _, lang := range languages {
		for _, generated := range []bool{false, true} {
			for _, t := range usable {
				if t.LanguageCode == lang && t.generated() == generated {
					return t, nil
				}
			}
		}
	}

	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return captionTrack{}, errors.New("caption track requires a browser proof-of-origin token")
			}
		}
	}

	return captionTrack{}, fmt.Errorf("%w (requested languages: %s)", ErrNoTranscriptFound, strings.Join(languages, ", "))
}

func (s *YouTubeSource) fetchTimedText(ctx context.Context, baseURL string) ([]domain.TranscriptEntry, error) {
	body, err := s.get(ctx, baseURL, constants.YouTubeConfig.MaxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]domain.TranscriptEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		entries = append(entries, domain.TranscriptEntry{
			Text:     text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return entries, nil
}

// cleanCaptionText unescapes entities left after XML decoding and drops inline
// markup. Whitespace inside the caption is kept as delivered; a caption that is
// blank after cleaning becomes "" and is skipped by the caller.
func cleanCaptionText(s string) string {
	s = html.UnescapeString(s)
	s = inlineTagRE.ReplaceAllString(s, "")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func (s *YouTubeSource) get(ctx context.Context, target string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.NewAPIError("failed to create request", 500, map[string]any{
			"url": target,
		}).WithCause(err)
	}
	req.Header.Set("User-Agent", constants.YouTubeConfig.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewAPIError("request failed", 502, map[string]any{
			"url": target,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperrors.NewAPIError("too many requests", resp.StatusCode, map[string]any{
			"url": target,
		})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewAPIError(fmt.Sprintf("YouTube responded %s", resp.Status), resp.StatusCode, map[string]any{
			"url": target,
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, apperrors.NewAPIError("failed to read response", 502, map[string]any{
			"url": target,
		}).WithCause(err)
	}
	return body, nil
}
