// Package server exposes ELIZA chat sessions over HTTP and WebSocket.
//
// Routes:
//
//	GET    /                             single page chat client
//	GET    /ws                           WebSocket chat, one session per connection
//	POST   /api/sessions                 create a session, returns the greeting
//	POST   /api/sessions/{id}/messages   send {"text": "..."}, returns the reply
//	DELETE /api/sessions/{id}            end a session
//	GET    /metrics                      Prometheus metrics
//	GET    /healthz                      liveness probe
//
// WebSocket frames are JSON objects. Clients send {"type":"message","text":...}
// (plain text frames are accepted as messages) or {"type":"restart"}; the
// server answers with {"type":"reply","session":...,"text":...} frames.
package server
