package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// wsClient serialises writes, gorilla allows only one writer per connection
type wsClient struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

func (c *wsClient) write(packet []byte) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		return fmt.Errorf("could not set write deadline: %w", err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, packet)
}

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade already replied
		a.error("couldn't make websocket: %s", err)
		return
	}
	client := &wsClient{conn: ws}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			a.debug("could not close websocket: %s", err.Error())
		}
	}(ws)

	a.addClient(client)
	defer a.removeClient(client)

	done := make(chan struct{})
	defer close(done)
	go a.websocketWriter(client, done)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		a.debug("Received: %s", msg)
	}
}

func (a *Api) addClient(c *wsClient) {
	a.wsClientsMutex.Lock()
	a.wsClients[c] = true
	n := len(a.wsClients)
	a.wsClientsMutex.Unlock()
	a.Stats.SetWsClients(n)
}

func (a *Api) removeClient(c *wsClient) {
	a.wsClientsMutex.Lock()
	delete(a.wsClients, c)
	n := len(a.wsClients)
	a.wsClientsMutex.Unlock()
	a.Stats.SetWsClients(n)
}

func (a *Api) broadcast(packet []byte) {
	a.wsClientsMutex.Lock()
	clients := make([]*wsClient, 0, len(a.wsClients))
	for c := range a.wsClients {
		clients = append(clients, c)
	}
	a.wsClientsMutex.Unlock()

	for _, c := range clients {
		if err := c.write(packet); err != nil {
			a.debug("could not push event: %s", err)
		}
	}
}

func (a *Api) websocketWriter(c *wsClient, done <-chan struct{}) {
	pingTicker := time.NewTicker(2 * time.Second)
	defer pingTicker.Stop()
	for {
		select {
		case <-done:
			return
		case <-pingTicker.C:
		}
		packet, err := json.Marshal(a.Stats.Get())
		if err != nil {
			return
		}
		if err := c.write(packet); err != nil {
			return
		}
	}
}
