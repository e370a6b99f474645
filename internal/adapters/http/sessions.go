package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/lumilearn/chalkboard"
)

// session pairs a player with its frame subscribers. Subscribers receive
// marshalled SSE payloads; slow consumers drop frames rather than stall
// the playback timers.
type session struct {
	id     string
	player *chalkboard.Player

	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func newSession(id string) *session {
	return &session{id: id, subs: make(map[chan []byte]struct{})}
}

func (s *session) subscribe() chan []byte {
	ch := make(chan []byte, 64)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *session) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *session) publish(event string, payload any) {
	data, err := json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{Event: event, Data: payload})
	if err != nil {
		return
	}
	s.mu.Lock()
	for ch := range s.subs {
		select {
		case ch <- data:
		default: // drop frame for slow consumer
		}
	}
	s.mu.Unlock()
}

func (s *session) close() {
	s.player.Close()
	s.mu.Lock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

// registry tracks live playback sessions by id.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session)}
}

func (r *registry) add(s *session) {
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
}

func (r *registry) get(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	return s, ok
}

// closeAll tears down every session, for server shutdown.
func (r *registry) closeAll() {
	r.mu.Lock()
	sessions := make([]*session, 0, len(r.sessions))
	for id, s := range r.sessions {
		sessions = append(sessions, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	for _, s := range sessions {
		s.close()
	}
}

func newSessionID() string {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
