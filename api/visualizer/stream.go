package vizapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient wraps a WebSocket connection with thread-safe writes.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// send writes one event frame to the client.
func (c *wsClient) send(event RunEventResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}

// events streams a session's run feed over a WebSocket. The feed stays
// open across runs until the session is removed or the peer hangs up.
func (vc *VisualizerController) events(ctx *gin.Context) {
	id, ok := vc.sessionID(ctx)
	if !ok {
		return
	}

	feed, unsubscribe, err := vc.visualizer.Subscribe(id)
	if err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		unsubscribe()
		return
	}
	defer conn.Close()
	defer unsubscribe()

	client := &wsClient{conn: conn}

	// TODO: ping/pong keepalive so idle feeds survive proxies.
	// Inbound frames are discarded, but the read pump notices when the
	// peer goes away.
	readClosed := make(chan struct{})
	go func() {
		defer close(readClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, open := <-feed:
			if !open {
				return
			}
			if err := client.send(newRunEventResponse(event)); err != nil {
				return
			}
		case <-readClosed:
			return
		}
	}
}
