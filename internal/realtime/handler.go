package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fieldops/internal/pkg/jwt"
)

// WSHandler upgrades authenticated clients onto the hub.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
	log        *logrus.Entry
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, log *logrus.Entry) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
		log:        log,
	}
}

// HandleWebSocket handles GET /api/v1/ws?token=JWT&lead=LEAD_ID
//
// Authentication rides a query parameter because browsers cannot set
// headers on WebSocket dials. An optional lead query subscribes the
// connection to that lead's channel immediately.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	var channels []string
	if leadID := c.Query("lead"); leadID != "" {
		channels = append(channels, LeadChannel(leadID))
	}

	h.log.WithField("user_id", claims.UserID).Debug("websocket connected")
	h.hub.ServeWS(conn, claims.UserID, channels)
}
