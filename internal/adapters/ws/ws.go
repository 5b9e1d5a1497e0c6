package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"freshroute/internal/application/usecases"
	"freshroute/internal/domain/models"
	"freshroute/internal/tracking"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 32
)

// inbound is the envelope clients send over the tracking socket
type inbound struct {
	Type       string  `json:"type"`
	ShipmentID string  `json:"trip_id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// outbound wraps relayed location events for the wire
type outbound struct {
	Type string `json:"type"`
	models.LocationEvent
}

// Handler upgrades HTTP requests to tracking connections
type Handler struct {
	hub             *tracking.Hub
	trackingUseCase *usecases.TrackingUseCase
	logger          *slog.Logger
	upgrader        websocket.Upgrader
}

// NewHandler creates a new websocket handler
func NewHandler(hub *tracking.Hub, trackingUseCase *usecases.TrackingUseCase, logger *slog.Logger) *Handler {
	return &Handler{
		hub:             hub,
		trackingUseCase: trackingUseCase,
		logger:          logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboards and driver apps connect from anywhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades the connection and runs its read/write pumps
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", "error", err)
		return
	}

	client := &client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan models.LocationEvent, sendBuffer),
		handler: h,
	}

	h.hub.Register(client.id, client.send)
	h.logger.Info("Tracking connection opened", "conn_id", client.id, "remote", r.RemoteAddr)

	go client.writePump()
	go client.readPump()
}

// client is one tracking connection
type client struct {
	id      string
	conn    *websocket.Conn
	send    chan models.LocationEvent
	handler *Handler
}

// readPump consumes client messages until the connection dies, then
// detaches the connection from every tracking group. It owns the
// connection-lifetime context: the HTTP request context is canceled as
// soon as Handle returns, long before the socket closes.
func (c *client) readPump() {
	h := c.handler
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		h.hub.Disconnect(c.id)
		close(c.send)
		c.conn.Close()
		h.logger.Info("Tracking connection closed", "conn_id", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Tracking connection error", "conn_id", c.id, "error", err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn("Malformed tracking message", "conn_id", c.id, "error", err)
			continue
		}

		switch msg.Type {
		case "join_trip_tracking":
			if msg.ShipmentID == "" {
				continue
			}
			h.hub.Join(c.id, msg.ShipmentID)
		case "driver_location_update":
			if msg.ShipmentID == "" {
				continue
			}
			h.trackingUseCase.Publish(ctx, c.id, models.LocationUpdate{
				ShipmentID: msg.ShipmentID,
				Lat:        msg.Lat,
				Lon:        msg.Lon,
				ReceivedAt: time.Now(),
			})
		default:
			h.logger.Debug("Unknown tracking message type", "conn_id", c.id, "type", msg.Type)
		}
	}
}

// writePump pushes relayed events and keepalive pings to the client
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload := outbound{Type: "live_map_movement", LocationEvent: event}
			if err := c.conn.WriteJSON(payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
