package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APISource fetches transcripts from the structured captions API. It is the
// first strategy in the resolver chain.
type APISource struct {
	endpoint   string
	langCode   string
	httpClient *http.Client
}

func NewAPISource(endpoint, langCode string) *APISource {
	return &APISource{
		endpoint:   endpoint,
		langCode:   langCode,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *APISource) Name() string { return "captions-api" }

type captionsAPIRequest struct {
	VideoURL string `json:"videoUrl"`
	LangCode string `json:"langCode"`
}

type captionsAPIResponse struct {
	Captions []struct {
		Text string `json:"text"`
	} `json:"captions"`
}

func (s *APISource) Fetch(ctx context.Context, videoID string) (string, error) {
	body, err := json.Marshal(captionsAPIRequest{
		VideoURL: "https://www.youtube.com/watch?v=" + videoID,
		LangCode: s.langCode,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("captions API responded with status %d", resp.StatusCode)
	}

	var parsed captionsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4*1024*1024)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode captions response: %w", err)
	}
	if len(parsed.Captions) == 0 {
		return "", fmt.Errorf("captions API returned no captions")
	}

	lines := make([]string, 0, len(parsed.Captions))
	for _, line := range parsed.Captions {
		if line.Text != "" {
			lines = append(lines, line.Text)
		}
	}
	return strings.Join(lines, " "), nil
}
