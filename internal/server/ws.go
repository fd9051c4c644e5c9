// internal/server/ws.go
//
// Websocket transport for the session protocol.
//
// Responsibilities:
//   - Upgrade HTTP requests at /ws, assign a connection ID, and register the
//     connection on the game loop.
//   - Per-connection read pump decoding JSON envelopes into typed messages
//     and enqueueing them; a read error tears the connection down.
//   - Outbound sends serialize through a per-connection write mutex.
//
// The loop goroutine calls Send/CloseConn; read pumps run one goroutine per
// connection, so the connection registry itself is mutex-guarded.

package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/protocol"
)

// WSTransport accepts websocket connections and moves envelopes in and out.
type WSTransport struct {
	loop     *Loop
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu    sync.Mutex // guards conns
	conns map[string]*wsConn
}

// wsConn pairs a websocket with its write lock.
type wsConn struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewWSTransport builds the transport around the game loop.
func NewWSTransport(loop *Loop, logger zerolog.Logger) *WSTransport {
	return &WSTransport{
		loop: loop,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log:   logger,
		conns: make(map[string]*wsConn),
	}
}

// HandleWS upgrades the request and starts the connection's read pump.
func (t *WSTransport) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &wsConn{id: uuid.NewString(), conn: conn}
	t.mu.Lock()
	t.conns[c.id] = c
	t.mu.Unlock()

	t.log.Info().Str("conn", c.id).Str("remote", r.RemoteAddr).Msg("websocket connected")
	t.loop.EnqueueConnect(c.id)

	go t.readPump(c)
}

// readPump decodes inbound envelopes until the connection dies.
func (t *WSTransport) readPump(c *wsConn) {
	defer t.drop(c)

	for {
		var env protocol.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				t.log.Warn().Err(err).Str("conn", c.id).Msg("websocket read error")
			}
			return
		}
		msg, err := protocol.DecodeClient(env)
		if err != nil {
			// Malformed frames are dropped, the connection stays open.
			t.log.Warn().Err(err).Str("conn", c.id).Msg("undecodable message dropped")
			continue
		}
		t.loop.EnqueueMessage(c.id, msg)
	}
}

// drop unregisters the connection and tells the loop.
func (t *WSTransport) drop(c *wsConn) {
	_ = c.conn.Close()
	t.mu.Lock()
	delete(t.conns, c.id)
	t.mu.Unlock()
	t.loop.EnqueueDisconnect(c.id)
	t.log.Info().Str("conn", c.id).Msg("websocket disconnected")
}

// Send encodes and writes one server message, best effort.
func (t *WSTransport) Send(connID string, msg protocol.ServerMessage) {
	t.mu.Lock()
	c, ok := t.conns[connID]
	t.mu.Unlock()
	if !ok {
		t.log.Warn().Str("conn", connID).Msg("send to unknown connection dropped")
		return
	}

	env, err := protocol.EncodeServer(msg)
	if err != nil {
		t.log.Error().Err(err).Str("conn", connID).Msg("encode server message")
		return
	}
	c.writeMu.Lock()
	err = c.conn.WriteJSON(env)
	c.writeMu.Unlock()
	if err != nil {
		t.log.Warn().Err(err).Str("conn", connID).Msg("websocket write failed")
	}
}

// CloseConn terminates the connection; the read pump then unregisters it.
func (t *WSTransport) CloseConn(connID string) {
	t.mu.Lock()
	c, ok := t.conns[connID]
	t.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}
