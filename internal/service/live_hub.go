package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dark0-7s/scams-20b.io/internal/model"
)

// Subscriber is one open live-update channel for a session. The channel is
// closed by Unsubscribe or when the session stops; consumers range over Ch.
type Subscriber struct {
	SessionID string
	Ch        chan model.LiveUpdate
}

// LiveHub fans out accepted attendance records to subscribers of a session.
// Purely in-memory; subscriptions live at most as long as the session.
type LiveHub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscriber]struct{} // sessionID -> set of subscribers
	buffer int
	log    *zap.Logger
}

// NewLiveHub creates an empty hub. buffer is the per-subscriber channel depth.
func NewLiveHub(buffer int, log *zap.Logger) *LiveHub {
	if buffer <= 0 {
		buffer = 16
	}
	return &LiveHub{
		subs:   make(map[string]map[*Subscriber]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a new subscriber for the session. Late joiners only see
// events published after this call; there is no replay.
func (h *LiveHub) Subscribe(sessionID string) *Subscriber {
	sub := &Subscriber{
		SessionID: sessionID,
		Ch:        make(chan model.LiveUpdate, h.buffer),
	}
	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*Subscriber]struct{})
	}
	h.subs[sessionID][sub] = struct{}{}
	h.mu.Unlock()

	h.log.Info("stream subscriber added", zap.String("session_id", sessionID))
	return sub
}

// Unsubscribe removes a single subscriber and closes its channel. Safe to
// call more than once and after CloseSession.
func (h *LiveHub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.subs[sub.SessionID]
	if !ok {
		return
	}
	if _, ok := m[sub]; !ok {
		return
	}
	delete(m, sub)
	if len(m) == 0 {
		delete(h.subs, sub.SessionID)
	}
	close(sub.Ch)
	h.log.Info("stream subscriber removed", zap.String("session_id", sub.SessionID))
}

// Publish delivers a record to every current subscriber of the session.
// Best-effort: a subscriber whose buffer is full misses the update.
func (h *LiveHub) Publish(sessionID string, rec model.AttendanceRecord) {
	update := model.LiveUpdate{Type: "attendance", Data: rec}

	h.mu.RLock()
	m, ok := h.subs[sessionID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	subs := make([]*Subscriber, 0, len(m))
	for s := range m {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	for _, s := range subs {
		select {
		case s.Ch <- update:
		default:
			h.log.Warn("subscriber buffer full, update dropped",
				zap.String("session_id", sessionID),
				zap.String("record_id", rec.ID))
		}
	}
}

// CloseSession closes every subscriber channel for the session and removes
// the subscriber set. Called when the session stops.
func (h *LiveHub) CloseSession(sessionID string) {
	h.mu.Lock()
	m, ok := h.subs[sessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, sessionID)
	h.mu.Unlock()

	for s := range m {
		close(s.Ch)
	}
	h.log.Info("session stream closed",
		zap.String("session_id", sessionID),
		zap.Int("subscribers", len(m)))
}

// SubscriberCount returns the number of open subscribers for a session.
func (h *LiveHub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
