package presence

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lrmsph/lrms-backend/internal/logger"
)

// OnlineUser is one currently connected user as reported by the realtime
// layer.
type OnlineUser struct {
	ConnectionID uuid.UUID `json:"connection_id"`
	DisplayName  string    `json:"display_name"`
}

// Tracker maps realtime connection ids to display names. It is owned by the
// server process and injected where needed; readers get point-in-time
// snapshots, not a live view.
type Tracker struct {
	mu     sync.RWMutex
	log    *logger.Logger
	online map[uuid.UUID]string
}

func NewTracker(baseLog *logger.Logger) *Tracker {
	return &Tracker{
		log:    baseLog.With("component", "PresenceTracker"),
		online: make(map[uuid.UUID]string),
	}
}

func (t *Tracker) Join(connID uuid.UUID, displayName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.online[connID] = displayName
	t.log.Debug("User connected", "connection_id", connID, "display_name", displayName, "online", len(t.online))
}

func (t *Tracker) Leave(connID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.online, connID)
	t.log.Debug("User disconnected", "connection_id", connID, "online", len(t.online))
}

// Snapshot returns a copy of the current online set, sorted by display name
// for stable responses.
func (t *Tracker) Snapshot() []OnlineUser {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := make([]OnlineUser, 0, len(t.online))
	for id, name := range t.online {
		users = append(users, OnlineUser{ConnectionID: id, DisplayName: name})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].DisplayName == users[j].DisplayName {
			return users[i].ConnectionID.String() < users[j].ConnectionID.String()
		}
		return users[i].DisplayName < users[j].DisplayName
	})
	return users
}

func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.online)
}
