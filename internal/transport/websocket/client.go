package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/match"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Client serializes writes to one socket. conn.WriteJSON is not safe for
// concurrent use.
type Client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Close sends a close frame and closes the socket. It is safe to call more
// than once.
func (c *Client) Close(code int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
	c.conn.Close()
}

// ConnectionManager tracks the sockets watching each match.
type ConnectionManager struct {
	watchers map[string]map[*Client]struct{} // matchID → clients
	mu       sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{watchers: make(map[string]map[*Client]struct{})}
}

func (cm *ConnectionManager) AddConnection(matchID string, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.watchers[matchID] == nil {
		cm.watchers[matchID] = make(map[*Client]struct{})
	}
	cm.watchers[matchID][client] = struct{}{}
}

func (cm *ConnectionManager) RemoveConnection(matchID string, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if clients, ok := cm.watchers[matchID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(cm.watchers, matchID)
		}
	}
}

func (cm *ConnectionManager) Count(matchID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.watchers[matchID])
}

func (cm *ConnectionManager) clients(matchID string) []*Client {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	clients := make([]*Client, 0, len(cm.watchers[matchID]))
	for c := range cm.watchers[matchID] {
		clients = append(clients, c)
	}
	return clients
}

// Broadcast sends message to every watcher of matchID. A watcher whose
// write fails is dropped.
func (cm *ConnectionManager) Broadcast(matchID string, message interface{}) {
	for _, c := range cm.clients(matchID) {
		if err := c.Send(message); err != nil {
			cm.RemoveConnection(matchID, c)
			c.Close(websocket.CloseGoingAway, "write failed")
		}
	}
}

// CloseMatch closes every watcher of matchID normally.
func (cm *ConnectionManager) CloseMatch(matchID string) {
	cm.mu.Lock()
	clients := cm.watchers[matchID]
	delete(cm.watchers, matchID)
	cm.mu.Unlock()

	for c := range clients {
		c.Close(websocket.CloseNormalClosure, "match finished")
	}
}

// Observer streams a match's updates to its watchers and closes them once
// the game is over.
func (cm *ConnectionManager) Observer(matchID string) match.Observer {
	return func(u match.Update) {
		cm.Broadcast(matchID, u)
		if u.Type == match.UpdateGameOver {
			cm.CloseMatch(matchID)
		}
	}
}
