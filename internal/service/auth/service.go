// Package auth implements login, registration and logout for a session. The
// account registry is in-memory and seeded with the demo users; the
// logged-in user record of a session is persisted to the session store and
// removed on logout.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/repository/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// seedPassword is the well-known password of the demo accounts.
const seedPassword = "password123"

const passwordMin = 8

type sessionRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo   sessionRepo
	logger *log.Logger
	now    func() time.Time

	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func New(repo session.Repository, logger *log.Logger) (*Service, error) {
	s := &Service{
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		byEmail: make(map[string]domain.User),
	}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := s.now()
	for _, u := range []domain.User{
		{
			ID:    "1",
			Name:  "Admin User",
			Email: "admin@example.com",
			Image: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=1480&auto=format&fit=crop",
			Role:  domain.RoleAdmin,
		},
		{
			ID:    "2",
			Name:  "John Doe",
			Email: "john@example.com",
			Image: "https://images.unsplash.com/photo-1599566150163-29194dcaad36?q=80&w=1374&auto=format&fit=crop",
			Role:  domain.RoleUser,
		},
	} {
		u.PasswordHash = string(hash)
		u.CreatedAt = now
		u.UpdatedAt = now
		s.byEmail[u.Email] = u
	}
	return nil
}

// Login validates credentials and writes the user record to the session
// store, so a reload within the same session stays logged in.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	s.mu.RLock()
	user, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.saveSessionUser(ctx, sessionID, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account and logs the session in as it.
func (s *Service) Register(ctx context.Context, sessionID, name, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("email required")
	}
	if len(strings.TrimSpace(password)) < passwordMin {
		return nil, fmt.Errorf("password must be at least %d characters", passwordMin)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.byEmail[email]; exists {
		s.mu.Unlock()
		return nil, domain.ErrEmailTaken
	}
	now := s.now()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byEmail[email] = user
	s.mu.Unlock()

	if err := s.saveSessionUser(ctx, sessionID, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout removes the session's user record.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, session.UserKey(sessionID))
}

// CurrentUser returns the user the session is logged in as, or
// domain.ErrNotFound. A corrupt stored record is discarded and treated as
// being logged out.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	key := session.UserKey(sessionID)
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var stored domain.User
	if err := json.Unmarshal(data, &stored); err != nil {
		if s.logger != nil {
			s.logger.Printf("discarding corrupt user record for session %s: %v", sessionID, err)
		}
		_ = s.repo.Delete(ctx, key)
		return nil, domain.ErrNotFound
	}
	return &stored, nil
}

// Users lists all known accounts, ordered by creation then ID.
func (s *Service) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.byEmail))
	for _, u := range s.byEmail {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// saveSessionUser persists the record under the session's user key; the
// password hash never makes it in, the domain type's json tag drops it.
func (s *Service) saveSessionUser(ctx context.Context, sessionID string, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, session.UserKey(sessionID), data)
}
