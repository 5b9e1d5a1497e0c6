package tracking

import (
	"log/slog"
	"sync"
	"time"

	"freshroute/internal/domain/models"
)

// Hub relays live position updates between the connections tracking the
// same shipment. It is an explicitly constructed component: each process
// (and each test) owns its own instance and its own membership map.
//
// Delivery is fire-and-forget with a drop policy: if a subscriber's
// channel is full the event is dropped for that subscriber rather than
// queued, so one slow observer never blocks the rest of the group.
type Hub struct {
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
	// subscribers maps connection id -> outbound event channel
	subscribers map[string]chan<- models.LocationEvent
	// groups maps shipment id -> set of member connection ids
	groups map[string]map[string]struct{}
	// memberships maps connection id -> set of shipment ids it joined
	memberships map[string]map[string]struct{}

	delivered uint64
	dropped   uint64
}

// Stats is a snapshot of the hub's relay counters.
type Stats struct {
	Subscribers int    `json:"subscribers"`
	Groups      int    `json:"groups"`
	Delivered   uint64 `json:"delivered"`
	Dropped     uint64 `json:"dropped"`
}

// NewHub creates a hub. A nil clock defaults to time.Now.
func NewHub(logger *slog.Logger, now func() time.Time) *Hub {
	if now == nil {
		now = time.Now
	}
	return &Hub{
		logger:      logger,
		now:         now,
		subscribers: make(map[string]chan<- models.LocationEvent),
		groups:      make(map[string]map[string]struct{}),
		memberships: make(map[string]map[string]struct{}),
	}
}

// Register attaches a connection's outbound channel to the hub. The
// connection receives nothing until it joins a tracking group.
func (h *Hub) Register(connID string, ch chan<- models.LocationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribers[connID] = ch
	h.logger.Debug("Connection registered", "conn_id", connID)
}

// Join adds the connection to the tracking group for a shipment. The
// group is created on first join. Joining a group twice is a no-op.
func (h *Hub) Join(connID, shipmentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[connID]; !ok {
		h.logger.Warn("Join from unregistered connection", "conn_id", connID, "shipment_id", shipmentID)
		return
	}

	group, ok := h.groups[shipmentID]
	if !ok {
		group = make(map[string]struct{})
		h.groups[shipmentID] = group
	}
	group[connID] = struct{}{}

	joined, ok := h.memberships[connID]
	if !ok {
		joined = make(map[string]struct{})
		h.memberships[connID] = joined
	}
	joined[shipmentID] = struct{}{}

	h.logger.Info("Connection joined tracking group", "conn_id", connID, "shipment_id", shipmentID)
}

// Publish relays a position sample to every member of the shipment's
// tracking group except the publisher. A server-side timestamp is
// attached. Publishing to a shipment with no group is silently dropped:
// there is nobody to notify.
func (h *Hub) Publish(connID, shipmentID string, lat, lon float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[shipmentID]
	if !ok {
		return
	}

	event := models.LocationEvent{
		ShipmentID: shipmentID,
		Lat:        lat,
		Lon:        lon,
		Timestamp:  h.now(),
	}

	for memberID := range group {
		if memberID == connID {
			continue
		}
		ch, ok := h.subscribers[memberID]
		if !ok {
			continue
		}
		select {
		case ch <- event:
			h.delivered++
		default:
			// Subscriber can't keep up; drop rather than block the group.
			h.dropped++
			h.logger.Warn("Dropped location event", "conn_id", memberID, "shipment_id", shipmentID)
		}
	}
}

// Disconnect removes the connection from every group it joined and
// forgets its channel. Disconnecting an unknown connection is a no-op.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for shipmentID := range h.memberships[connID] {
		if group, ok := h.groups[shipmentID]; ok {
			delete(group, connID)
			if len(group) == 0 {
				delete(h.groups, shipmentID)
			}
		}
	}
	delete(h.memberships, connID)
	delete(h.subscribers, connID)

	h.logger.Debug("Connection disconnected", "conn_id", connID)
}

// Stats returns a snapshot of the hub's counters.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Stats{
		Subscribers: len(h.subscribers),
		Groups:      len(h.groups),
		Delivered:   h.delivered,
		Dropped:     h.dropped,
	}
}
