package handler

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Raymond9734/community-site/internal/service"
)

const (
	sessionCookieName = "enquiry_session"
	sessionIdleTTL    = 30 * time.Minute
)

type sessionEntry struct {
	controller *service.EnquiryController
	lastUsed   time.Time
}

// ControllerStore gives every browser session its own enquiry controller
type ControllerStore struct {
	mu            sync.Mutex
	entries       map[string]*sessionEntry
	newController func() *service.EnquiryController
	idleTTL       time.Duration
	now           func() time.Time
}

// NewControllerStore creates a store that builds controllers with newController
func NewControllerStore(newController func() *service.EnquiryController) *ControllerStore {
	return &ControllerStore{
		entries:       make(map[string]*sessionEntry),
		newController: newController,
		idleTTL:       sessionIdleTTL,
		now:           time.Now,
	}
}

// ControllerFor returns the controller of the request's session, issuing a session cookie if needed
func (s *ControllerStore) ControllerFor(w http.ResponseWriter, r *http.Request) *service.EnquiryController {
	id, ok := sessionFromCookie(r)
	if !ok {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.get(id)
}

// ClientControllerFor serves API callers. Without a session cookie the controller
// is keyed by client address, so cookie-less clients still get one controller.
func (s *ControllerStore) ClientControllerFor(r *http.Request) *service.EnquiryController {
	if id, ok := sessionFromCookie(r); ok {
		return s.get(id)
	}
	return s.get("client:" + clientHost(r.RemoteAddr))
}

func sessionFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	parsed, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// clientHost strips the port; RealIP has already rewritten RemoteAddr behind proxies
func clientHost(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

func (s *ControllerStore) get(id string) *service.EnquiryController {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	entry, ok := s.entries[id]
	if !ok {
		entry = &sessionEntry{controller: s.newController()}
		s.entries[id] = entry
	}
	entry.lastUsed = now
	return entry.controller
}

// sweep drops idle sessions that have nothing in flight
func (s *ControllerStore) sweep(now time.Time) {
	for id, entry := range s.entries {
		if now.Sub(entry.lastUsed) > s.idleTTL && !entry.controller.InFlight() {
			delete(s.entries, id)
		}
	}
}

// Len returns the number of live sessions
func (s *ControllerStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
