package memory

import (
	"sync"
	"time"

	"clinivoice-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// completedRetention keeps stopped sessions readable for a while so
// transcripts and note generation still work after stop. Active sessions
// never expire.
const completedRetention = 24 * time.Hour

// SessionRepository is the explicit session registry. All mutations go
// through the repository under a single lock, which gives the
// single-writer-per-session guarantee the pipeline assumes; reads return
// copies and may run concurrently.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.RWMutex
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &SessionRepository{cache: c}
}

func (r *SessionRepository) Save(session *entity.ConversationSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.Id.String(), session, cache.NoExpiration)
}

// Get returns a snapshot of the session. Callers read it freely without
// holding the repository lock; concurrent appends only affect the stored
// session, never a handed-out snapshot.
func (r *SessionRepository) Get(sessionId uuid.UUID) (*entity.ConversationSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, found := r.get(sessionId)
	if !found {
		return nil, false
	}
	return snapshot(session), true
}

// get returns the live stored session; only call with r.mu held.
func (r *SessionRepository) get(sessionId uuid.UUID) (*entity.ConversationSession, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*entity.ConversationSession), true
	}
	return nil, false
}

func snapshot(session *entity.ConversationSession) *entity.ConversationSession {
	copied := *session
	copied.Messages = make([]entity.ConversationMessage, len(session.Messages))
	copy(copied.Messages, session.Messages)
	return &copied
}

// Append adds a message to an active session. Returns false when the
// session is absent or already completed.
func (r *SessionRepository) Append(sessionId uuid.UUID, msg entity.ConversationMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(sessionId)
	if !found || session.Status != entity.SessionStatusActive {
		return false
	}
	session.Messages = append(session.Messages, msg)
	return true
}

// Complete transitions active -> completed, records the end time and puts
// the session on the retention clock. A second call on the same id fails:
// the session is no longer active.
func (r *SessionRepository) Complete(sessionId uuid.UUID) (*entity.ConversationSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(sessionId)
	if !found || session.Status != entity.SessionStatusActive {
		return nil, false
	}

	now := time.Now()
	session.EndTime = &now
	session.Status = entity.SessionStatusCompleted
	r.cache.Set(session.Id.String(), session, completedRetention)
	return snapshot(session), true
}

// Transcript returns a copy of the ordered message list for an active or
// completed session.
func (r *SessionRepository) Transcript(sessionId uuid.UUID) ([]entity.ConversationMessage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, found := r.get(sessionId)
	if !found {
		return nil, false
	}
	messages := make([]entity.ConversationMessage, len(session.Messages))
	copy(messages, session.Messages)
	return messages, true
}

// Active lists snapshots of all sessions still accepting appends.
func (r *SessionRepository) Active() []*entity.ConversationSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*entity.ConversationSession
	for _, item := range r.cache.Items() {
		session := item.Object.(*entity.ConversationSession)
		if session.Status == entity.SessionStatusActive {
			active = append(active, snapshot(session))
		}
	}
	return active
}
