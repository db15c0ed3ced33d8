package repository

import (
	"sort"
	"sync"
	"time"

	internshipdomain "internmail-backend/internal/internship/domain"

	"github.com/google/uuid"
)

// memoryInternshipRepository is the in-memory InternshipRepository used by
// tests and token-less demo runs
type memoryInternshipRepository struct {
	mu      sync.RWMutex
	records map[string]map[string]*internshipdomain.InternshipRecord // userID -> id -> record
}

// NewMemoryInternshipRepository creates an in-memory InternshipRepository
func NewMemoryInternshipRepository() InternshipRepository {
	return &memoryInternshipRepository{
		records: make(map[string]map[string]*internshipdomain.InternshipRecord),
	}
}

func (r *memoryInternshipRepository) GetAll(userID string) ([]*internshipdomain.InternshipRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*internshipdomain.InternshipRecord, 0, len(r.records[userID]))
	for _, rec := range r.records[userID] {
		copied := *rec
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *memoryInternshipRepository) FindByID(userID, id string) (*internshipdomain.InternshipRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[userID][id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (r *memoryInternshipRepository) FindByEmailID(userID, emailID string) (*internshipdomain.InternshipRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records[userID] {
		if rec.EmailID == emailID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryInternshipRepository) Create(record *internshipdomain.InternshipRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	if r.records[record.UserID] == nil {
		r.records[record.UserID] = make(map[string]*internshipdomain.InternshipRecord)
	}
	copied := *record
	r.records[record.UserID][record.ID] = &copied
	return nil
}

func (r *memoryInternshipRepository) Update(record *internshipdomain.InternshipRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.UpdatedAt = time.Now()
	if r.records[record.UserID] == nil {
		r.records[record.UserID] = make(map[string]*internshipdomain.InternshipRecord)
	}
	copied := *record
	r.records[record.UserID][record.ID] = &copied
	return nil
}

func (r *memoryInternshipRepository) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records[userID], id)
	return nil
}

func (r *memoryInternshipRepository) ClearAll(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, userID)
	return nil
}
