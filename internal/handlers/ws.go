package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	campaignClients   = make(map[string]map[*websocket.Conn]bool)
	campaignClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every dashboard watching a campaign to refetch.
// Called after enrollments and completion changes.
func BroadcastRefresh(campaignID string) {
	campaignClientsMu.RLock()
	clients, exists := campaignClients[campaignID]
	if !exists || len(clients) == 0 {
		campaignClientsMu.RUnlock()
		return
	}

	// Copy the connections so the lock is not held while writing
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	campaignClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":        "refresh",
			"message":     "Campaign data updated",
			"campaign_id": campaignID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			campaignClientsMu.Lock()
			if clients, exists := campaignClients[campaignID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(campaignClients, campaignID)
				}
			}
			campaignClientsMu.Unlock()
			conn.Close()
		}
	}
}

func (h *Handler) WebSocket(c *gin.Context) {
	campaignID := c.Param("campaign_id")

	if campaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign ID is required"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.log.Error("failed to set initial read deadline", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	campaignClientsMu.Lock()
	if campaignClients[campaignID] == nil {
		campaignClients[campaignID] = make(map[*websocket.Conn]bool)
	}
	campaignClients[campaignID][conn] = true
	campaignClientsMu.Unlock()

	defer func() {
		campaignClientsMu.Lock()

		if clients, exists := campaignClients[campaignID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(campaignClients, campaignID)
			}
		}

		campaignClientsMu.Unlock()
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":        "connected",
		"message":     "WebSocket connection established",
		"campaign_id": campaignID,
	})

	if err != nil {
		h.log.Error("failed to send welcome message", "error", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error", "campaign_id", campaignID, "error", err)
			}
			break
		}
	}
}
