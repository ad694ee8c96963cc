package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/pkg/cryptox"
	"github.com/hackmatehq/hackmate/pkg/idx"
	"github.com/hackmatehq/hackmate/pkg/jwtx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUserNotFound       = errors.New("user not found")
)

// MinPasswordLength is enforced at registration only; existing hashes are
// never re-checked against it.
const MinPasswordLength = 8

type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Register creates a new account with a complete matching profile and
// returns the user together with a freshly minted session token. The
// profile fields are validated against the closed vocabularies up front so
// a registered user is always matchable.
func (s *AuthService) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
	role domain.Role,
	experience domain.Experience,
	interests []string,
	bio string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return domain.User{}, "", ErrInvalidProfile
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, "", ErrWeakPassword
	}
	if !domain.ValidRole(role) || !domain.ValidExperience(experience) || !domain.ValidInterests(interests) {
		return domain.User{}, "", ErrInvalidProfile
	}

	// 2. Hash the password using Argon2id.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 3. Create the user. The UNIQUE index on email is the source of truth
	// for uniqueness; a pre-check would only race.
	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Experience:   experience,
		Interests:    interests,
		Bio:          strings.TrimSpace(bio),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration attempted with taken email")
			return domain.User{}, "", ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 4. Mint the session token.
	token, err := s.Signer.Sign(user.ID, now)
	if err != nil {
		log.Error("failed to sign session token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, "", err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("experience", string(user.Experience)),
	)

	return user, token, nil
}

// Login verifies credentials and mints a session token. Unknown emails and
// wrong passwords collapse into the same error so the endpoint does not
// leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the account.
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown email")
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch user by email", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 2. Verify the password. Any verification failure, including a
	// malformed stored hash, looks identical to the caller.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login attempted with wrong password", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	// 3. Logging back in reactivates a deactivated account, matching the
	// profile deactivate/return flow.
	if !user.IsActive {
		if err := s.Store.Users().SetActive(ctx, user.ID, true); err != nil {
			log.Error("failed to reactivate user",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			return domain.User{}, "", err
		}
		user.IsActive = true
	}

	// 4. Mint the session token.
	token, err := s.Signer.Sign(user.ID, time.Now().UTC())
	if err != nil {
		log.Error("failed to sign session token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, "", err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
