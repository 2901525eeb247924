package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeAssignmentFeed upgrades the connection to a WebSocket and streams
// assignment lifecycle events from the Redis pub/sub channel until the client
// disconnects. Admin dashboards use this to watch planner output and
// approvals live.
func (h *Handler) ServeAssignmentFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	if _, err := h.validateAndGetAdminID(token); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}
	defer conn.Close()

	pubsub := h.Storage.SubscribeAssignmentEvents()
	defer pubsub.Close()

	// Reader goroutine: the feed is write-only, but reading is what notices
	// a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events := pubsub.Channel()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("ERROR: Failed to write assignment event to websocket: %v", err)
				return
			}
		}
	}
}
