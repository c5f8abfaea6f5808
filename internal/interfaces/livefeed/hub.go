// Package livefeed streams match score snapshots to websocket subscribers.
package livefeed

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

const (
	messageTypeSnapshot = "match.snapshot"
	maxInboundBytes     = 512
)

type Config struct {
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	SendBuffer     int
	AllowedOrigins []string
}

func DefaultConfig() Config {
	return Config{
		PingInterval: 30 * time.Second,
		WriteTimeout: 10 * time.Second,
		SendBuffer:   16,
	}
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = def.SendBuffer
	}
	return cfg
}

type subscriber struct {
	matchID   string
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscriber(matchID string, buffer int) *subscriber {
	return &subscriber{
		matchID: matchID,
		send:    make(chan []byte, buffer),
		done:    make(chan struct{}),
	}
}

func (s *subscriber) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Hub fans match snapshots out to the subscribers of each match. A
// subscriber whose buffer is full is disconnected instead of blocking
// publishers.
type Hub struct {
	mu       sync.RWMutex
	subs     map[string]map[*subscriber]struct{}
	upgrader websocket.Upgrader
	cfg      Config
	logger   *logging.Logger
	now      func() time.Time
}

func NewHub(cfg Config, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = normalizeConfig(cfg)

	h := &Hub{
		subs:   make(map[string]map[*subscriber]struct{}),
		cfg:    cfg,
		logger: logger.Named("livefeed"),
		now:    time.Now,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" || len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Publish implements usecase.MatchPublisher.
func (h *Hub) Publish(ctx context.Context, m match.Match) {
	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs[m.ID]))
	for sub := range h.subs[m.ID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	payload, err := h.encode(m)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode match snapshot failed", "match_id", m.ID, "error", err)
		return
	}

	for _, sub := range targets {
		select {
		case sub.send <- payload:
		case <-sub.done:
		default:
			h.logger.WarnContext(ctx, "dropping slow live feed subscriber", "match_id", m.ID)
			sub.close()
		}
	}
}

func (h *Hub) encode(m match.Match) ([]byte, error) {
	return sonic.Marshal(snapshotMessage{
		Type:   messageTypeSnapshot,
		Match:  toMatchView(m),
		SentAt: h.now().UTC(),
	})
}

// ServeMatch upgrades the request and blocks until the subscriber leaves.
func (h *Hub) ServeMatch(w http.ResponseWriter, r *http.Request, initial match.Match) {
	ctx := r.Context()
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "match_id", initial.ID, "error", err)
		return
	}
	defer conn.Close()

	sub := newSubscriber(initial.ID, h.cfg.SendBuffer)
	if payload, err := h.encode(initial); err == nil {
		sub.send <- payload
	}
	h.add(sub)
	defer h.remove(sub)

	h.logger.DebugContext(ctx, "live feed subscriber joined", "match_id", initial.ID)

	var wg conc.WaitGroup
	wg.Go(func() { h.writeLoop(conn, sub) })
	wg.Go(func() { h.readLoop(conn, sub) })
	wg.Wait()

	h.logger.DebugContext(ctx, "live feed subscriber left", "match_id", initial.ID)
}

// readLoop only services control frames; client messages are discarded.
func (h *Hub) readLoop(conn *websocket.Conn, sub *subscriber) {
	defer sub.close()

	conn.SetReadLimit(maxInboundBytes)
	deadline := 2 * h.cfg.PingInterval
	_ = conn.SetReadDeadline(h.now().Add(deadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(h.now().Add(deadline))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warn("live feed read failed", "match_id", sub.matchID, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		// unblocks readLoop
		_ = conn.Close()
	}()

	for {
		select {
		case <-sub.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				h.now().Add(h.cfg.WriteTimeout))
			return
		case payload := <-sub.send:
			_ = conn.SetWriteDeadline(h.now().Add(h.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				sub.close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, h.now().Add(h.cfg.WriteTimeout)); err != nil {
				sub.close()
				return
			}
		}
	}
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.matchID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[sub.matchID] = set
	}
	set[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	sub.close()

	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[sub.matchID]
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.matchID)
	}
}

// Subscribers reports how many clients follow a match.
func (h *Hub) Subscribers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[matchID])
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, set := range h.subs {
		for sub := range set {
			sub.close()
		}
	}
}
