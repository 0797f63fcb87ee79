package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/event"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	"github.com/mtsdb/dropship-oasis-storefront/internal/repository"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

// LoginInput holds the credentials submitted to Login. The password is
// required but never verified against anything; the directory holds no
// credentials. This mirrors the demo it reproduces and is not a security
// mechanism.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput holds the fields submitted to Register.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session is the result of a successful login or registration: the opaque
// token the client presents on later requests, plus the identity snapshot
// committed to the session slot.
type Session struct {
	Token string               `json:"token"`
	User  *domain.UserIdentity `json:"user"`
}

// SessionService implements the authentication gate: a user directory,
// opaque session tokens, and the persisted identity snapshot.
type SessionService struct {
	sessions repository.SessionRepository
	notifier notify.Notifier
	producer *event.Producer
	logger   *slog.Logger

	sessionTTL time.Duration
	authDelay  time.Duration

	// Registered identities merge into the seeded directory for the
	// lifetime of the process. Lookup is by exact email match.
	mu        sync.RWMutex
	directory map[string]domain.UserIdentity
}

// NewSessionService creates a session service with the seeded directory.
func NewSessionService(
	sessions repository.SessionRepository,
	notifier notify.Notifier,
	producer *event.Producer,
	logger *slog.Logger,
	sessionTTL, authDelay time.Duration,
) *SessionService {
	directory := make(map[string]domain.UserIdentity)
	for _, u := range domain.SeededUsers() {
		directory[u.Email] = u
	}

	return &SessionService{
		sessions:   sessions,
		notifier:   notifier,
		producer:   producer,
		logger:     logger,
		sessionTTL: sessionTTL,
		authDelay:  authDelay,
		directory:  directory,
	}
}

// Login resolves the email against the directory after the simulated
// backend delay. The password is accepted as submitted. On success the
// identity snapshot is committed to the session slot before the success
// notification fires, so a crash between the two never yields a notified
// but unauthenticated state.
func (s *SessionService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := s.simulateDelay(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	identity, ok := s.directory[input.Email]
	s.mu.RUnlock()

	if !ok {
		s.notifier.Error(ctx, "Invalid email or password")
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	session, err := s.commitSession(ctx, &identity)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(ctx, fmt.Sprintf("Welcome back, %s!", identity.Name))

	if err := s.producer.PublishUserLoggedIn(ctx, &identity); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.logged_in event",
			slog.String("user_id", identity.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", identity.ID),
		slog.String("role", identity.Role),
	)

	return session, nil
}

// Register adds a new identity to the directory after the simulated delay
// and logs it in. Registered users always carry the non-admin role.
func (s *SessionService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := s.simulateDelay(ctx); err != nil {
		return nil, err
	}

	identity := domain.UserIdentity{
		ID:    fmt.Sprintf("user-%d", time.Now().UnixMilli()),
		Email: input.Email,
		Name:  input.Name,
		Role:  domain.RoleUser,
	}

	s.mu.Lock()
	if _, exists := s.directory[input.Email]; exists {
		s.mu.Unlock()
		s.notifier.Error(ctx, "User with this email already exists")
		return nil, apperrors.AlreadyExists("user", "email", input.Email)
	}
	s.directory[input.Email] = identity
	s.mu.Unlock()

	session, err := s.commitSession(ctx, &identity)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(ctx, "Account created successfully!")

	if err := s.producer.PublishUserRegistered(ctx, &identity); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", identity.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", identity.ID),
	)

	return session, nil
}

// Logout clears the session slot. Logging out an absent session is not an
// error; the outcome is the same anonymous state either way.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token != "" {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	s.notifier.Info(ctx, "You have been logged out")
	return nil
}

// CurrentUser resolves a session token to its identity snapshot. A missing
// or discarded snapshot resolves to nil, the anonymous state, rather than
// an error.
func (s *SessionService) CurrentUser(ctx context.Context, token string) (*domain.UserIdentity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	identity, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return identity, nil
}

func (s *SessionService) commitSession(ctx context.Context, identity *domain.UserIdentity) (*Session, error) {
	token := uuid.New().String()
	if err := s.sessions.Save(ctx, token, identity); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Session{Token: token, User: identity}, nil
}

// simulateDelay blocks for the configured fake-backend latency, honoring
// context cancellation.
func (s *SessionService) simulateDelay(ctx context.Context) error {
	if s.authDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.authDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
