package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hupe1980/eliza/engine"
	"github.com/hupe1980/eliza/script"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("github.com/dlclark/regexp2.runClock"))
}

const greeting = "How do you do. Please tell me your problem"

func doctorFactory() (*engine.Chatbot, error) {
	return engine.New("Eliza", script.Doctor())
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(doctorFactory, func(o *Options) {
		o.Registry = prometheus.NewRegistry()
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func createSession(t *testing.T, ts *httptest.Server) sessionResponse {
	t.Helper()
	resp, body := do(t, ts, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var s sessionResponse
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	return s
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv, ts := newTestServer(t)

	s := createSession(t, ts)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Eliza", s.Name)
	assert.Equal(t, greeting, s.Text)
	assert.Equal(t, 1, srv.Sessions().Len())

	resp, body := do(t, ts, http.MethodPost, "/api/sessions/"+s.ID+"/messages", `{"text":"my mother is nice"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(body), &msg))
	assert.Equal(t, messageResponse{Text: "Tell me more about your family", Keyword: "MY", Source: "rule"}, msg)

	resp, body = do(t, ts, http.MethodPost, "/api/sessions/"+s.ID+"/messages", `{"text":"xyz"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &msg))
	assert.Equal(t, "memory", msg.Source)
	assert.Equal(t, "Lets discuss further why your mother is nice", msg.Text)

	resp, _ = do(t, ts, http.MethodDelete, "/api/sessions/"+s.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, srv.Sessions().Len())

	resp, _ = do(t, ts, http.MethodDelete, "/api/sessions/"+s.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_MessageErrors(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodPost, "/api/sessions/missing/messages", `{"text":"hi"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "session not found")

	s := createSession(t, ts)
	resp, body = do(t, ts, http.MethodPost, "/api/sessions/"+s.ID+"/messages", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "invalid request body")

	resp, _ = do(t, ts, http.MethodGet, "/api/sessions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_StaticHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "new WebSocket(")

	resp, body = do(t, ts, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	createSession(t, ts)

	resp, body = do(t, ts, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `eliza_turns_total{source="start"} 1`)
	assert.Contains(t, body, "eliza_sessions_active 1")
}

func wsURL(base string) string {
	return "ws" + strings.TrimPrefix(base, "http") + "/ws"
}

func readFrame(t *testing.T, c *websocket.Conn) outboundFrame {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)

	var f outboundFrame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestServer_WebSocket(t *testing.T) {
	srv, ts := newTestServer(t)

	c, _, err := websocket.DefaultDialer.Dial(wsURL(ts.URL), nil)
	require.NoError(t, err)

	hello := readFrame(t, c)
	assert.Equal(t, frameReply, hello.Type)
	assert.Equal(t, greeting, hello.Text)
	assert.Equal(t, "start", hello.Source)
	require.NotEmpty(t, hello.Session)

	require.NoError(t, c.WriteJSON(inboundFrame{Type: frameMessage, Text: "no"}))
	f := readFrame(t, c)
	assert.Equal(t, frameReply, f.Type)
	assert.Equal(t, "Are you saying 'no' just to be negative", f.Text)
	assert.Equal(t, "NO", f.Keyword)
	assert.Equal(t, hello.Session, f.Session)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("sorry")))
	f = readFrame(t, c)
	assert.Equal(t, "Please don't apologize", f.Text)

	require.NoError(t, c.WriteJSON(inboundFrame{Type: "dance"}))
	f = readFrame(t, c)
	assert.Equal(t, frameError, f.Type)
	assert.Contains(t, f.Error, "dance")

	require.NoError(t, c.WriteJSON(inboundFrame{Type: frameRestart}))
	restarted := readFrame(t, c)
	assert.Equal(t, greeting, restarted.Text)
	assert.NotEqual(t, hello.Session, restarted.Session)
	assert.Equal(t, 1, srv.Sessions().Len())

	// Rotation state belongs to the old session.
	require.NoError(t, c.WriteJSON(inboundFrame{Type: frameMessage, Text: "no"}))
	f = readFrame(t, c)
	assert.Equal(t, "Are you saying 'no' just to be negative", f.Text)

	require.NoError(t, c.Close())
	assert.Eventually(t, func() bool { return srv.Sessions().Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestParseFrame(t *testing.T) {
	tests := []struct {
		in   string
		want inboundFrame
	}{
		{`{"type":"message","text":"hi"}`, inboundFrame{Type: frameMessage, Text: "hi"}},
		{`{"text":"hi"}`, inboundFrame{Type: frameMessage, Text: "hi"}},
		{`{"type":"restart"}`, inboundFrame{Type: frameRestart}},
		{"hello there", inboundFrame{Type: frameMessage, Text: "hello there"}},
		{`{not json`, inboundFrame{Type: frameMessage, Text: `{not json`}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFrame([]byte(tt.in)))
		})
	}
}

func TestServer_StartShutdown(t *testing.T) {
	srv, err := New(doctorFactory, func(o *Options) {
		o.Addr = "127.0.0.1:0"
		o.Registry = prometheus.NewRegistry()
	})
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	client := &http.Client{Transport: &http.Transport{}}
	defer client.CloseIdleConnections()

	resp, err := client.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	c, _, err := websocket.DefaultDialer.Dial("ws://"+srv.Addr()+"/ws", nil)
	require.NoError(t, err)
	defer c.Close()
	readFrame(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = c.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, srv.Sessions().Len())
}

func TestServer_RejectsWebSocketAfterShutdown(t *testing.T) {
	srv, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	c, _, err := websocket.DefaultDialer.Dial(wsURL(ts.URL), nil)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = c.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	assert.Equal(t, 0, srv.Sessions().Len())
}
