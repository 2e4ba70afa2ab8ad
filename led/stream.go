package led

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledgrid/pixel"
)

// writeWait bounds each client write so one stalled connection cannot hold
// up the flush path.
const writeWait = 200 * time.Millisecond

// Streamer broadcasts every transmitted frame to websocket clients, the
// browser-preview counterpart of a hardware transport. Register it on an
// HTTP mux and point the preview page at the endpoint.
type Streamer struct {
	w, h int

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	closed  bool
}

type streamFrame struct {
	W   int    `json:"w"`
	H   int    `json:"h"`
	RGB string `json:"rgb"` // base64, 3 bytes per LED in transmission order
}

// NewStreamer advertises the canvas dimensions to clients alongside frames.
func NewStreamer(w, h int) *Streamer {
	return &Streamer{w: w, h: h, clients: map[*websocket.Conn]bool{}}
}

// ServeHTTP upgrades the request and registers the client for frames. A
// per-client read loop drains control frames and unregisters the client the
// moment it disconnects.
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("stream upgrade failed")
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[conn] = true
	s.mu.Unlock()
	log.Info().Str("remote", r.RemoteAddr).Msg("preview client connected")

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Transmit fans the frame out to every client, dropping the ones whose
// writes fail or stall past the write deadline. It never reports failure:
// a lost preview is not a lost frame.
func (s *Streamer) Transmit(frame []pixel.Color) error {
	rgb := make([]byte, 0, len(frame)*3)
	for _, c := range frame {
		rgb = pixel.AppendWire(rgb, c, 3)
	}
	b, err := json.Marshal(streamFrame{W: s.w, H: s.h, RGB: base64.StdEncoding.EncodeToString(rgb)})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
			_ = c.Close()
			delete(s.clients, c)
		}
	}
	return nil
}

// Close disconnects every client.
func (s *Streamer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for c := range s.clients {
		_ = c.Close()
		delete(s.clients, c)
	}
	return nil
}
