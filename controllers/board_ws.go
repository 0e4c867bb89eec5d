package controller

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

// BoardEvent is pushed to every websocket client watching a board when
// a task on that board is created or updated. Delivery is best-effort;
// the hub owns no state beyond the open connections.
type BoardEvent struct {
	Type    string       `json:"type"` // task_created, task_updated
	BoardID uint         `json:"board_id"`
	Task    *models.Task `json:"task"`
}

// BoardHub fans board events out to connected clients.
type BoardHub struct {
	mu      sync.Mutex
	clients map[uint]map[*websocket.Conn]struct{}
	db      *gorm.DB
	logger  *log.Logger
}

func NewBoardHub(db *gorm.DB, logger *log.Logger) *BoardHub {
	return &BoardHub{
		clients: make(map[uint]map[*websocket.Conn]struct{}),
		db:      db,
		logger:  logger,
	}
}

func (h *BoardHub) add(boardID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[boardID] == nil {
		h.clients[boardID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[boardID][conn] = struct{}{}
}

func (h *BoardHub) remove(boardID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[boardID], conn)
	if len(h.clients[boardID]) == 0 {
		delete(h.clients, boardID)
	}
}

// Broadcast sends the event to every client watching the board. Dead
// connections are dropped on write failure. Writes happen under mu:
// the underlying conn permits only one concurrent writer, and nothing
// else writes to registered connections.
func (h *BoardHub) Broadcast(event BoardEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients[event.BoardID] {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Printf("Board event write failed: %v", err)
			conn.Close()
			delete(h.clients[event.BoardID], conn)
		}
	}
	if len(h.clients[event.BoardID]) == 0 {
		delete(h.clients, event.BoardID)
	}
}

// RequireBoardAccess gates the websocket upgrade behind the same
// membership walk as the board's REST routes.
func (h *BoardHub) RequireBoardAccess(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	boardID := utils.ParseUint(c.Params("boardId"))

	if _, err := FindBoardForMember(h.db, boardID, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Board not found or access denied")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("boardID", boardID)
	return c.Next()
}

// Handle keeps the connection registered until the client goes away.
// Inbound messages are discarded; the stream is one-way.
func (h *BoardHub) Handle() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		boardID := conn.Locals("boardID").(uint)

		h.add(boardID, conn)
		defer func() {
			h.remove(boardID, conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
