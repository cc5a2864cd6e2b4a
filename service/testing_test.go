package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"safai/model"
	"safai/platform"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the package-wide handle at a fresh shared in-memory
// SQLite database and installs the schema.
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.Migrator().DropTable(
		&model.User{}, &model.Conversation{}, &model.Message{}, &model.ResearchNote{}))
	platform.DB = db
	model.InstallDB()
}

// completionRequest is the shape the fake upstream records for assertions.
type completionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// setupFakeGateway stands up an upstream that answers every completion call
// with replyText and records the last request body. Pass a non-nil failWith
// to answer with an OpenAI error envelope instead.
func setupFakeGateway(t *testing.T, replyText string, failWith *string) *completionRequest {
	t.Helper()
	last := &completionRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(last)
		w.Header().Set("Content-Type", "application/json")
		if failWith != nil {
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": *failWith, "type": "rate_limit_error"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": replyText},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)

	platform.InitLLMClient(platform.Config{
		LLMBaseURL: srv.URL + "/",
		LLMAPIKey:  "test-key",
		LLMModel:   "test-model",
	})
	return last
}
