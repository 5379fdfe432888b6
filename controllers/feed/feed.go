package feed

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adithyakrishnan/bazario-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	clientsMu sync.Mutex
	clients   = make(map[*websocket.Conn]bool)
)

// OrderFeedHandler upgrades the connection and keeps it registered until
// the client goes away. Clients only listen; inbound messages are drained.
func OrderFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	clientsMu.Lock()
	clients[conn] = true
	clientsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
			break
		}
	}
}

type orderEvent struct {
	ID          uint               `json:"id"`
	UserID      uint               `json:"user_id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
}

// BroadcastOrder pushes an order summary to every connected client. Dead
// connections are dropped on the next read error.
func BroadcastOrder(order models.Order) {
	data, err := json.Marshal(orderEvent{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	})
	if err != nil {
		return
	}

	clientsMu.Lock()
	defer clientsMu.Unlock()
	for client := range clients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
