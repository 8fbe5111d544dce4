package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/presence"
	"github.com/lrmsph/lrms-backend/internal/sse"
)

type PresenceHandler struct {
	log     *logger.Logger
	tracker *presence.Tracker
	hub     *sse.Hub
}

func NewPresenceHandler(baseLog *logger.Logger, tracker *presence.Tracker, hub *sse.Hub) *PresenceHandler {
	return &PresenceHandler{
		log:     baseLog.With("handler", "PresenceHandler"),
		tracker: tracker,
		hub:     hub,
	}
}

// GET /online-users
func (h *PresenceHandler) OnlineUsers(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, "Online users fetched successfully", h.tracker.Snapshot())
}

// GET /sse/stream?name=<display name>
// The connection itself is the presence signal: joining registers the user
// as online, the stream closing registers them as offline.
func (h *PresenceHandler) Stream(c *gin.Context) {
	displayName := c.Query("name")
	if displayName == "" {
		displayName = "anonymous"
	}

	client := h.hub.Connect(displayName)
	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
