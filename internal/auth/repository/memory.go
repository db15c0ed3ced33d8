package repository

import (
	"sync"
	"time"

	authdomain "internmail-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryUserRepository is an in-memory UserRepository for tests
type memoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*authdomain.User
	refresh map[string]*authdomain.RefreshToken
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:   make(map[string]*authdomain.User),
		refresh: make(map[string]*authdomain.RefreshToken),
	}
}

func (r *memoryUserRepository) Create(user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepository) FindByEmail(email string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) FindByID(id string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepository) Update(user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepository) FindAllWithTokens() ([]*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*authdomain.User
	for _, u := range r.users {
		if u.AccessToken != "" {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryUserRepository) SaveRefreshToken(token *authdomain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.refresh[token.Token] = &cp
	return nil
}

func (r *memoryUserRepository) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.refresh[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memoryUserRepository) DeleteRefreshToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refresh, token)
	return nil
}

func (r *memoryUserRepository) DeleteRefreshTokensByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.refresh {
		if t.UserID == userID {
			delete(r.refresh, k)
		}
	}
	return nil
}
