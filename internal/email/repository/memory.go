package repository

import (
	"sync"
	"time"

	emaildomain "internmail-backend/internal/email/domain"
)

// In-memory implementations of the store interfaces. The backing mechanism
// is an injected abstraction, so tests (and token-less demo runs) use these
// while production wires the gorm versions.

type memoryEmailRepository struct {
	mu     sync.RWMutex
	emails map[string]map[string]*emaildomain.EmailSnapshot // userID -> id -> snapshot
}

// NewMemoryEmailRepository creates an in-memory EmailRepository
func NewMemoryEmailRepository() EmailRepository {
	return &memoryEmailRepository{
		emails: make(map[string]map[string]*emaildomain.EmailSnapshot),
	}
}

func (r *memoryEmailRepository) GetAll(userID string) ([]*emaildomain.EmailSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]*emaildomain.EmailSnapshot, 0, len(r.emails[userID]))
	for _, s := range r.emails[userID] {
		copied := *s
		snapshots = append(snapshots, &copied)
	}
	return snapshots, nil
}

func (r *memoryEmailRepository) GetByID(userID, id string) (*emaildomain.EmailSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.emails[userID][id]
	if !ok {
		return nil, emaildomain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memoryEmailRepository) CreateIfAbsent(snapshot *emaildomain.EmailSnapshot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emails[snapshot.UserID] == nil {
		r.emails[snapshot.UserID] = make(map[string]*emaildomain.EmailSnapshot)
	}
	if _, exists := r.emails[snapshot.UserID][snapshot.ID]; exists {
		return false, nil
	}

	copied := *snapshot
	copied.LastUpdated = time.Now()
	r.emails[snapshot.UserID][snapshot.ID] = &copied
	return true, nil
}

func (r *memoryEmailRepository) SaveAIResults(userID, id string, results emaildomain.AIResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.emails[userID][id]
	if !ok {
		return nil
	}

	s.AIResults = &results
	s.Processed = true
	s.IsInternship = results.Category == emaildomain.CategoryInternship
	s.LastUpdated = time.Now()
	return nil
}

func (r *memoryEmailRepository) UpdateBodies(userID, id, textBody, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.emails[userID][id]
	if !ok {
		return nil
	}

	s.TextBody = textBody
	s.HTMLBody = htmlBody
	s.LastUpdated = time.Now()
	return nil
}

func (r *memoryEmailRepository) KnownIDs(userID string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	known := make(map[string]struct{}, len(r.emails[userID]))
	for id := range r.emails[userID] {
		known[id] = struct{}{}
	}
	return known, nil
}

type memorySystemStateRepository struct {
	mu     sync.Mutex
	states map[string]*emaildomain.SystemState
}

// NewMemorySystemStateRepository creates an in-memory SystemStateRepository
func NewMemorySystemStateRepository() SystemStateRepository {
	return &memorySystemStateRepository{
		states: make(map[string]*emaildomain.SystemState),
	}
}

func (r *memorySystemStateRepository) Get(userID string) (*emaildomain.SystemState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.states[userID]
	if !ok {
		return &emaildomain.SystemState{UserID: userID}, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memorySystemStateRepository) SetLastFetchTime(userID string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.ensure(userID)
	s.LastFetchTime = &t
	s.LastUpdated = time.Now()
	return nil
}

func (r *memorySystemStateRepository) IncrementProcessed(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.ensure(userID)
	s.TotalEmailsProcessed++
	s.LastUpdated = time.Now()
	return nil
}

func (r *memorySystemStateRepository) IncrementInternshipsFound(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.ensure(userID)
	s.TotalInternshipsFound++
	s.LastUpdated = time.Now()
	return nil
}

func (r *memorySystemStateRepository) ensure(userID string) *emaildomain.SystemState {
	s, ok := r.states[userID]
	if !ok {
		s = &emaildomain.SystemState{UserID: userID}
		r.states[userID] = s
	}
	return s
}
