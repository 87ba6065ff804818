package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/dev-ventures/ventures/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	boardClients   = make(map[string]map[*websocket.Conn]bool)
	boardClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastBoardRefresh tells every client watching the project's task board
// to re-fetch. Called by the task handlers after any mutation.
func BroadcastBoardRefresh(projectID string) {
	boardClientsMu.RLock()
	clients, exists := boardClients[projectID]
	if !exists || len(clients) == 0 {
		boardClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	boardClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":       "refresh",
			"message":    "Task board updated",
			"project_id": projectID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			boardClientsMu.Lock()
			if clients, exists := boardClients[projectID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(boardClients, projectID)
				}
			}
			boardClientsMu.Unlock()
			conn.Close()
		}
	}
}

func pingLoop(conn *websocket.Conn, ticker *time.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BoardFeed upgrades the request to a websocket and keeps the client
// subscribed to refresh events for the project's task board.
func BoardFeed(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.First(&models.Project{}, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	key := ctx.Param("project_id")

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	boardClientsMu.Lock()
	if boardClients[key] == nil {
		boardClients[key] = make(map[*websocket.Conn]bool)
	}
	boardClients[key][conn] = true
	boardClientsMu.Unlock()

	defer func() {
		boardClientsMu.Lock()

		if clients, exists := boardClients[key]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(boardClients, key)
			}
		}

		boardClientsMu.Unlock()
		conn.Close()

		log.Printf("Board feed closed for project %s", key)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":       "connected",
		"message":    "Board feed connected",
		"project_id": key,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	// done gives the ping goroutine an exit path; a stopped ticker's channel
	// is never closed, so ranging over it alone would leak the goroutine.
	done := make(chan struct{})
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go pingLoop(conn, ticker, done)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Board feed error for project %s: %v", key, err)
			}
			break
		}
	}
}
