package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jijnash2636/medaiton/config"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/gateway"
	"github.com/Jijnash2636/medaiton/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *GeminiClient {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewGeminiClient(config.AIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		TriageModel: "gemini-2.5-flash",
		NotesModel:  "gemini-2.5-pro",
		Timeout:     5 * time.Second,
	}, log, validator.NewValidator())
}

// modelReply wraps text the way generateContent does.
func modelReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestSuggestTriageParsesStructuredResponse(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "system_instruction")
		assert.Contains(t, req, "generationConfig")

		json.NewEncoder(w).Encode(modelReply(`{"classification":"Critical","summary":"Immediate attention","potentialSpecialist":"Cardiologist"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	suggestion, err := client.SuggestTriage(context.Background(), &gateway.TriageRequest{
		Name:     "Jane Doe",
		Age:      40,
		Gender:   "Female",
		Symptoms: "chest pain",
	})
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, entity.TriageCritical, suggestion.Classification)
	assert.Equal(t, "Cardiologist", suggestion.PotentialSpecialist)
}

func TestSuggestTriageRejectsUnknownClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(modelReply(`{"classification":"Dire","summary":"x","potentialSpecialist":"y"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).SuggestTriage(context.Background(), &gateway.TriageRequest{Symptoms: "cough"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestDraftSOAPNotesParsesAllSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		json.NewEncoder(w).Encode(modelReply(`{"subjective":"s","objective":"o","assessment":"a","plan":"p"}`))
	}))
	defer server.Close()

	notes, err := testClient(server.URL).DraftSOAPNotes(context.Background(), &gateway.NotesRequest{
		Name:   "John Smith",
		Age:    36,
		Gender: "Male",
		Reason: "headache",
	})
	require.NoError(t, err)

	assert.Equal(t, "s", notes.Subjective)
	formatted := notes.Format()
	assert.Contains(t, formatted, "### Subjective\ns")
	assert.Contains(t, formatted, "### Plan\np")
}

func TestMissingAPIKeyFailsBeforeAnyRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(server.URL)
	client.cfg.APIKey = ""

	_, err := client.SuggestTriage(context.Background(), &gateway.TriageRequest{Symptoms: "x"})
	require.ErrorIs(t, err, gateway.ErrMissingAPIKey)
	assert.Equal(t, 0, requests)
}

func TestUpstreamErrorSurfacesWithoutRetry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).SuggestTriage(context.Background(), &gateway.TriageRequest{Symptoms: "x"})
	require.Error(t, err)
	assert.Equal(t, 1, requests, "a single attempt, no retries")
}
