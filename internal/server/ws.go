package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"patience/internal/game"
)

// command is what a connected client may ask of its session.
type command struct {
	Action string             `json:"action"`
	From   *game.LocationView `json:"from,omitempty"`
	To     *game.LocationView `json:"to,omitempty"`
}

// hub fans a session's events out to its connected clients.
type hub struct {
	sess *game.Session
	log  *logrus.Entry

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newHub(sess *game.Session, log *logrus.Logger) *hub {
	h := &hub{
		sess:    sess,
		log:     log.WithField("game_id", sess.ID),
		clients: make(map[*wsClient]struct{}),
	}
	sess.SetBroadcast(h.broadcast)
	return h
}

func (h *hub) broadcast(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Warn("event marshal failed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// slow client, drop the frame
		}
	}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.clients, c)
		close(c.send)
	}
}

func (s *Server) hubFor(sess *game.Session) *hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.hubs[sess.ID]; ok {
		return h
	}
	h := newHub(sess, s.log)
	s.hubs[sess.ID] = h
	return h
}

func (s *Server) closeHub(id uuid.UUID) {
	s.mu.Lock()
	h, ok := s.hubs[id]
	delete(s.hubs, id)
	s.mu.Unlock()
	if ok {
		h.closeAll()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}

	h := s.hubFor(sess)
	client := &wsClient{conn: conn, send: make(chan []byte, 64)}
	h.add(client)
	defer h.remove(client)

	ctx := r.Context()

	// writer
	go func() {
		ping := time.NewTicker(15 * time.Second)
		defer func() {
			ping.Stop()
			conn.Close(websocket.StatusNormalClosure, "bye")
		}()
		for {
			select {
			case msg, open := <-client.send:
				if !open {
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
					return
				}
			case <-ping.C:
				if err := conn.Ping(ctx); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// the fresh client gets a full state before anything else
	sess.SyncState()

	s.readLoop(ctx, sess, conn)
}

func (s *Server) readLoop(ctx context.Context, sess *game.Session, conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		s.dispatch(sess, cmd)
	}
}

// dispatch runs one client command. Rejections surface as broadcast events,
// not errors, so there is nothing to return.
func (s *Server) dispatch(sess *game.Session, cmd command) {
	switch cmd.Action {
	case "move":
		if cmd.From == nil || cmd.To == nil {
			return
		}
		from, err := cmd.From.ToEngine()
		if err != nil {
			return
		}
		to, err := cmd.To.ToEngine()
		if err != nil {
			return
		}
		if err := sess.Move(from, to); err != nil {
			s.log.WithError(err).Debug("move rejected")
		}
	case "auto":
		sess.AutoMoveAll()
	case "undo":
		sess.Undo()
	case "redo":
		sess.Redo()
	case "restart":
		if err := sess.Restart(); err != nil {
			s.log.WithError(err).Warn("restart failed")
		}
	case "hint":
		sess.Hint()
	case "sync":
		sess.SyncState()
	}
}
