package server

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hupe1980/eliza/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for decoupled UI
	},
}

const (
	frameMessage = "message"
	frameRestart = "restart"
	frameReply   = "reply"
	frameError   = "error"
)

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outboundFrame struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Text    string `json:"text,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

type safeConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (sc *safeConn) writeFrame(f outboundFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.Conn.WriteMessage(websocket.TextMessage, data)
}

// parseFrame accepts JSON frames and treats anything else as message text.
func parseFrame(data []byte) inboundFrame {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var f inboundFrame
		if err := json.Unmarshal(trimmed, &f); err == nil {
			if f.Type == "" {
				f.Type = frameMessage
			}
			return f
		}
	}
	return inboundFrame{Type: frameMessage, Text: string(data)}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WS upgrade failed", "error", err)
		return
	}

	conn := &safeConn{Conn: raw}
	if !s.register(conn) {
		_ = raw.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = raw.Close()
		return
	}
	defer s.unregister(conn)
	defer raw.Close()

	sess, err := s.startSession(conn)
	if err != nil {
		return
	}
	defer func() { s.store.Delete(sess.ID) }()

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WS read failed", "session_id", sess.ID, "error", err)
			}
			return
		}

		in := parseFrame(data)
		switch in.Type {
		case frameRestart:
			s.store.Delete(sess.ID)
			if sess, err = s.startSession(conn); err != nil {
				return
			}
		case frameMessage:
			reply, err := sess.Reply(in.Text)
			out := outboundFrame{Type: frameReply, Session: sess.ID}
			if err != nil {
				out = outboundFrame{Type: frameError, Session: sess.ID, Error: err.Error()}
			} else {
				resp := newMessageResponse(reply)
				out.Text, out.Keyword, out.Source = resp.Text, resp.Keyword, resp.Source
			}
			if err := conn.writeFrame(out); err != nil {
				return
			}
		default:
			if err := conn.writeFrame(outboundFrame{Type: frameError, Session: sess.ID, Error: "unknown frame type " + in.Type}); err != nil {
				return
			}
		}
	}
}

// startSession creates a session and sends its greeting.
func (s *Server) startSession(conn *safeConn) (*session.Session, error) {
	sess, err := s.store.Create()
	if err != nil {
		s.logger.Error("Create session failed", "error", err)
		_ = conn.writeFrame(outboundFrame{Type: frameError, Error: "could not create session"})
		return nil, err
	}

	greeting, err := sess.Reply("")
	if err != nil {
		s.store.Delete(sess.ID)
		_ = conn.writeFrame(outboundFrame{Type: frameError, Error: err.Error()})
		return nil, err
	}

	if err := conn.writeFrame(outboundFrame{
		Type:    frameReply,
		Session: sess.ID,
		Text:    greeting.Text,
		Source:  greeting.Source.String(),
	}); err != nil {
		s.store.Delete(sess.ID)
		return nil, err
	}
	return sess, nil
}
