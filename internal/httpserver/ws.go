// internal/httpserver/ws.go
//
// Websocket key stream for one session: GET /game/ws?gameId=...
// The browser sends {"key": "..."}; every message is answered with a board.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/view"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Size of the send channel buffer
	sendBufferSize = 32
)

// keyMessage is what the browser sends for every keydown.
type keyMessage struct {
	Key string `json:"key"`
}

// handleWS upgrades to a websocket bound to one session. The connection is
// the session's keyboard subscription: it starts with the current board and
// receives a fresh board after each key message.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &wsClient{
		srv:     s,
		conn:    conn,
		session: sess,
		send:    make(chan view.Board, sendBufferSize),
		done:    make(chan struct{}),
	}
	log.Debug().Str("gameId", sess.ID()).Msg("websocket connected")
	c.send <- view.Project(sess.Snapshot(), s.scoring)
	c.run()
}

// wsClient pumps key messages in and boards out.
type wsClient struct {
	srv     *Server
	conn    *websocket.Conn
	session *game.Session
	send    chan view.Board
	done    chan struct{}
	once    sync.Once
}

func (c *wsClient) run() {
	go c.writePump()
	c.readPump()
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
		log.Debug().Str("gameId", c.session.ID()).Msg("websocket closed")
	})
}

// readPump applies every key message to the session.
func (c *wsClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
		var msg keyMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// malformed frames are ignored like any other bad input
			continue
		}
		board := c.srv.press(c.session, game.Key(msg.Key))
		select {
		case c.send <- board:
		case <-c.done:
			return
		}
	}
}

// writePump writes boards and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case board := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(board); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
