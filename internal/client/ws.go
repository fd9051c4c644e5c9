// internal/client/ws.go
//
// Websocket connection to the game server. Outbound sends implement the
// Sender interface; inbound messages are decoded by a background read pump
// and handed over through a channel, so the update loop consumes them on
// its own goroutine and the state machine is never touched from the
// network thread.

package client

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/wordwire/wordwire/internal/protocol"
)

// WSConn is a live connection to the server.
type WSConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	inbound chan protocol.ServerMessage
	log     zerolog.Logger
}

// Dial connects to the server's websocket endpoint and starts the read pump.
func Dial(url string, logger zerolog.Logger) (*WSConn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &WSConn{
		conn:    conn,
		inbound: make(chan protocol.ServerMessage, 32),
		log:     logger,
	}
	go c.readPump()
	return c, nil
}

// Send encodes and transmits one client message.
func (c *WSConn) Send(msg protocol.ClientMessage) error {
	env, err := protocol.EncodeClient(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(env)
}

// Messages returns the inbound message channel. It is closed when the
// connection dies.
func (c *WSConn) Messages() <-chan protocol.ServerMessage { return c.inbound }

// Close tears the connection down.
func (c *WSConn) Close() error { return c.conn.Close() }

// readPump decodes server envelopes until the connection dies.
func (c *WSConn) readPump() {
	defer close(c.inbound)
	for {
		var env protocol.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("connection lost")
			}
			return
		}
		msg, err := protocol.DecodeServer(env)
		if err != nil {
			c.log.Warn().Err(err).Msg("undecodable server message dropped")
			continue
		}
		c.inbound <- msg
	}
}
