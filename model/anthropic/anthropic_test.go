package anthropic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/eliza/model"
)

func TestBuildMessages_SkipsEmpty(t *testing.T) {
	msgs := buildMessages([]model.Message{
		{Role: model.RoleUser, Text: "hello"},
		{Role: model.RoleAssistant, Text: ""},
		{Role: model.RoleAssistant, Text: "hi"},
	})
	assert.Len(t, msgs, 2)
}

func TestModel_Generate(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-20241022",
			"content": [{"type": "text", "text": "My mother never listens"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 4, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	m := NewModel(func(o *Options) {
		o.APIKey = "test"
		o.BaseURL = srv.URL + "/"
	})

	resp, err := model.Collect(m.Generate(context.Background(), model.Request{
		Instructions: "You are a patient.",
		Messages:     []model.Message{{Role: model.RoleUser, Text: "Tell me more"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, "My mother never listens", resp.Text)
	assert.Equal(t, "end_turn", resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 9, resp.Usage.TotalTokens)
	assert.Contains(t, body, "You are a patient.")
}

func TestModel_StreamingUnsupported(t *testing.T) {
	m := NewModel(func(o *Options) { o.APIKey = "test" })
	_, err := model.Collect(m.Generate(context.Background(), model.Request{Stream: true}))
	assert.ErrorIs(t, err, ErrStreamingUnsupported)
}
