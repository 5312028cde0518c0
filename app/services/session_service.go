package services

import (
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login session lasts.
const DefaultSessionTTL = 24 * time.Hour

// SessionService issues and resolves login sessions backed by the
// session repository. Tokens are random UUIDs carried in the session
// cookie.
type SessionService struct {
	sessionRepo repositories.SessionRepository
	userRepo    repositories.UserRepository
	ttl         time.Duration
}

// NewSessionService creates a new SessionService. A ttl of zero means
// DefaultSessionTTL.
func NewSessionService(sessionRepo repositories.SessionRepository, userRepo repositories.UserRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		ttl:         ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration { return s.ttl }

// Start opens a new session for the user and returns it.
func (s *SessionService) Start(user *models.User) (*models.Session, error) {
	session := &models.Session{
		Token:  uuid.NewString(),
		UserID: user.ID,
	}
	if err := s.sessionRepo.Create(session, s.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve returns the user behind a session token, or ErrNotFound for
// an unknown or expired token.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	session, err := s.sessionRepo.Get(token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(session.UserID)
}

// End deletes the session, logging the user out.
func (s *SessionService) End(token string) error {
	return s.sessionRepo.Delete(token)
}
