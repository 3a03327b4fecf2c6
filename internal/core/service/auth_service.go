package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionManager
	activity ports.ActivityRecorder
	now      func() time.Time
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionManager,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		activity: activity,
		now:      time.Now,
		log:      log,
	}
}

// bcrypt ignores input past 72 bytes; longer passwords are rejected.
const maxPasswordBytes = 72

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("retail-inventory"), bcrypt.DefaultCost)
	return h
})

// Register creates a user with role "user". The username pre-check gives the
// friendly duplicate error; the store's unique constraint catches the race.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrValidation
	}
	if len(password) > maxPasswordBytes {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrPasswordTooLong
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrDuplicateUsername
	}

	created, err := s.createUser(ctx, username, email, password, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	s.activity.Record(ctx, domain.ActivityRecord{
		UserID:      created.ID,
		Type:        domain.ActivityRegistration,
		Description: fmt.Sprintf("User %s registered", username),
	})
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", created.ID).Str("username", username).Msg("user registered")
	return created, nil
}

// Login checks the credential and opens a session. The returned token is the
// session key; the user carries the refreshed last-login time.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.sessions.Create(ctx, *user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.activity.Record(ctx, domain.ActivityRecord{
		UserID:      user.ID,
		Type:        domain.ActivityLogin,
		Description: fmt.Sprintf("User %s logged in", username),
	})
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	user.PasswordHash = ""
	return token, user, nil
}

// Logout records the logout for a live session and destroys it. Unknown
// tokens are a no-op apart from the delete.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	user, err := s.sessions.Get(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("logout: session lookup failed")
	}
	if user != nil {
		s.activity.Record(ctx, domain.ActivityRecord{
			UserID:      user.ID,
			Type:        domain.ActivityLogout,
			Description: fmt.Sprintf("User %s logged out", user.Username),
		})
	}

	return s.sessions.Destroy(ctx, token)
}

// EnsureAdmin creates an admin account unless the username is already taken.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" || password == "" {
		return false, domain.ErrValidation
	}
	if len(password) > maxPasswordBytes {
		return false, domain.ErrPasswordTooLong
	}
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.createUser(ctx, username, email, password, domain.RoleAdmin); err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	s.log.Info().Str("username", username).Msg("bootstrap admin created")
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
}
