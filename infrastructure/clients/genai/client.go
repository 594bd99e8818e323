package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
)

// Config locates the local model runtime backing both AI capabilities.
type Config struct {
	Host  string `json:"host"`
	Model string `json:"model"`
}

// Client speaks the local model runtime's HTTP API (Ollama-compatible):
// /api/tags for readiness, /api/generate for one-shot summarization,
// /api/chat for constrained prompts and streamed conversations.
type Client struct {
	host       string
	model      string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		host:  strings.TrimRight(cfg.Host, "/"),
		model: cfg.Model,
		// On-device generation is slow; no client-side deadline beyond the
		// request context.
		httpClient: &http.Client{},
	}
}

// Availability probes the runtime. An unreachable runtime reports
// unavailable; a reachable runtime without the configured model reports
// downloadable (present but not ready).
func (c *Client) Availability(ctx context.Context) (repository.Availability, error) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return repository.AvailabilityUnavailable, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return repository.AvailabilityUnavailable, nil
	}
	defer resp.Body.Close()

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return repository.AvailabilityUnavailable, fmt.Errorf("decode tags: %w", err)
	}
	for _, m := range tags.Models {
		if m.Name == c.model || strings.SplitN(m.Name, ":", 2)[0] == c.model {
			return repository.AvailabilityAvailable, nil
		}
	}
	return repository.AvailabilityDownloadable, nil
}

type generateRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs one non-streamed completion with an optional system instruction.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	var out generateResponse
	if err := c.post(ctx, "/api/generate", generateRequest{
		Model:  c.model,
		System: system,
		Prompt: prompt,
	}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

type chatRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages"`
	Format   json.RawMessage     `json:"format,omitempty"`
	Stream   bool                `json:"stream"`
}

type chatResponse struct {
	Message model.ChatMessage `json:"message"`
	Done    bool              `json:"done"`
}

// Chat runs one non-streamed exchange, optionally constrained to a JSON schema.
func (c *Client) Chat(ctx context.Context, messages []model.ChatMessage, format json.RawMessage) (string, error) {
	var out chatResponse
	if err := c.post(ctx, "/api/chat", chatRequest{
		Model:    c.model,
		Messages: messages,
		Format:   format,
	}, &out); err != nil {
		return "", err
	}
	return out.Message.Content, nil
}

// ChatStream runs one streamed exchange, pushing each reply fragment to
// onDelta as it arrives and returning the assembled reply.
func (c *Client) ChatStream(ctx context.Context, messages []model.ChatMessage, onDelta func(string)) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model runtime responded with status %d", resp.StatusCode)
	}

	var reply strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return reply.String(), fmt.Errorf("decode stream chunk: %w", err)
		}
		if chunk.Message.Content != "" {
			reply.WriteString(chunk.Message.Content)
			onDelta(chunk.Message.Content)
		}
		if chunk.Done {
			return reply.String(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return reply.String(), err
	}
	return reply.String(), nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("model runtime responded with status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
