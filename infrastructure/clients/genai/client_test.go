package genai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/clients/genai"
)

func TestClient_AvailabilityModelPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"gemma3:latest"},{"name":"llama3:8b"}]}`))
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	state, err := client.Availability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.AvailabilityAvailable, state)
}

func TestClient_AvailabilityModelMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"llama3:8b"}]}`))
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	state, err := client.Availability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.AvailabilityDownloadable, state)
}

func TestClient_AvailabilityRuntimeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	state, err := client.Availability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.AvailabilityUnavailable, state)
}

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemma3", req["model"])
		assert.Equal(t, "summarize", req["system"])
		assert.Equal(t, "long transcript", req["prompt"])
		assert.Equal(t, false, req["stream"])

		w.Write([]byte(`{"response":"short notes"}`))
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	out, err := client.Generate(context.Background(), "summarize", "long transcript")
	require.NoError(t, err)
	assert.Equal(t, "short notes", out)
}

func TestClient_ChatWithSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req struct {
			Format json.RawMessage     `json:"format"`
			Stream bool                `json:"stream"`
			Msgs   []model.ChatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `{"type":"object"}`, string(req.Format))
		assert.False(t, req.Stream)

		w.Write([]byte(`{"message":{"role":"assistant","content":"{\"questions\":[]}"},"done":true}`))
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	out, err := client.Chat(context.Background(),
		[]model.ChatMessage{{Role: model.RoleUser, Content: "make a quiz"}},
		json.RawMessage(`{"type":"object"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, out)
}

func TestClient_ChatStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Stream bool `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Write([]byte(`{"message":{"role":"assistant","content":"Hello"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":" there"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":""},"done":true}` + "\n"))
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	var chunks []string
	reply, err := client.ChatStream(context.Background(),
		[]model.ChatMessage{{Role: model.RoleUser, Content: "hi"}},
		func(delta string) { chunks = append(chunks, delta) })
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)
	assert.Equal(t, []string{"Hello", " there"}, chunks)
}

func TestClient_ChatStreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := genai.NewClient(genai.Config{Host: server.URL, Model: "gemma3"})

	_, err := client.ChatStream(context.Background(),
		[]model.ChatMessage{{Role: model.RoleUser, Content: "hi"}},
		func(string) { t.Fatal("no chunks expected") })
	assert.ErrorContains(t, err, "500")
}

func TestSummarizer_ResetRecreatesInstance(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"response":"notes"}`))
	}))
	defer server.Close()

	summarizer := genai.NewSummarizer(genai.Config{Host: server.URL, Model: "gemma3"})

	_, err := summarizer.Summarize(context.Background(), "text", "instruction")
	require.NoError(t, err)
	summarizer.Reset()
	_, err = summarizer.Summarize(context.Background(), "text", "instruction")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChatSession_KeepsHistoryAcrossTurns(t *testing.T) {
	var lastMessages []model.ChatMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []model.ChatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastMessages = req.Messages
		w.Write([]byte(`{"message":{"role":"assistant","content":"answer"},"done":true}` + "\n"))
	}))
	defer server.Close()

	languageModel := genai.NewLanguageModel(genai.Config{Host: server.URL, Model: "gemma3"})
	session, err := languageModel.NewChat(context.Background(),
		[]model.ChatMessage{{Role: model.RoleSystem, Content: "persona"}})
	require.NoError(t, err)

	require.NoError(t, session.PromptStreaming(context.Background(), "first", func(string) {}))
	require.NoError(t, session.PromptStreaming(context.Background(), "second", func(string) {}))

	// system + first turn + assistant reply + second turn
	require.Len(t, lastMessages, 4)
	assert.Equal(t, model.RoleSystem, lastMessages[0].Role)
	assert.Equal(t, "first", lastMessages[1].Content)
	assert.Equal(t, "answer", lastMessages[2].Content)
	assert.Equal(t, "second", lastMessages[3].Content)
}
