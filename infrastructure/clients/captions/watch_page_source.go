package captions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// WatchPageSource scrapes the video watch page for the embedded player
// response, picks a caption track and fetches its timed-text JSON payload.
// Fallback strategy for videos the captions API cannot serve; it also covers
// ASR-only tracks.
type WatchPageSource struct {
	baseURL    string
	langCode   string
	httpClient *http.Client
}

func NewWatchPageSource(langCode string) *WatchPageSource {
	return &WatchPageSource{
		baseURL:    "https://www.youtube.com",
		langCode:   langCode,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the source at a different host. Tests use this.
func (s *WatchPageSource) WithBaseURL(baseURL string) *WatchPageSource {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

func (s *WatchPageSource) Name() string { return "watch-page" }

const playerResponseMarker = "ytInitialPlayerResponse = "

type watchQuery struct {
	VideoID string `url:"v"`
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

type timedText struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (s *WatchPageSource) Fetch(ctx context.Context, videoID string) (string, error) {
	values, err := query.Values(watchQuery{VideoID: videoID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/watch?"+values.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return "", errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSONObject(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return "", errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if player.Captions == nil {
		return "", errors.New("no captions in player response")
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", errors.New("no caption tracks in player response")
	}

	track := pickTrack(tracks, s.langCode)
	return s.fetchTimedText(ctx, track.BaseURL)
}

// pickTrack prefers a manual track in the requested language, then an
// auto-generated one, then any manual track, then the first track.
func pickTrack(tracks []captionTrack, langCode string) captionTrack {
	for _, t := range tracks {
		if t.LanguageCode == langCode && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == langCode {
			return t
		}
	}
	for _, t := range tracks {
		if t.Kind != "asr" {
			return t
		}
	}
	return tracks[0]
}

// fetchTimedText retrieves the caption track payload in json3 format and
// joins its segments into plain text.
func (s *WatchPageSource) fetchTimedText(ctx context.Context, trackURL string) (string, error) {
	parsed, err := url.Parse(trackURL)
	if err != nil {
		return "", fmt.Errorf("parse track url: %w", err)
	}
	q := parsed.Query()
	q.Set("fmt", "json3")
	parsed.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	var tt timedText
	if err := json.NewDecoder(io.LimitReader(resp.Body, 2*1024*1024)).Decode(&tt); err != nil {
		return "", fmt.Errorf("parse timedtext: %w", err)
	}

	var sb strings.Builder
	for _, event := range tt.Events {
		for _, seg := range event.Segs {
			text := strings.TrimSpace(html.UnescapeString(seg.UTF8))
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// extractJSONObject returns the balanced JSON object at the start of data,
// tolerating braces inside string literals.
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if escaped {
			escaped = false
			continue
		}
		switch b {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[:i+1]
				}
			}
		}
	}
	return nil
}
