package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gamehub/internal/apperr"
	"gamehub/internal/models"
	"gamehub/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

const (
	MinPasswordLength = 6
	tokenIssuer       = "gamehub"
)

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)

// AuthService is the password-account adapter. The core only ever sees the
// resulting profile id.
type AuthService struct {
	store  ProfileStore
	fanout *Fanout
	secret []byte
	expiry time.Duration
}

func NewAuthService(st ProfileStore, f *Fanout, secret string, expiry time.Duration) *AuthService {
	return &AuthService{store: st, fanout: f, secret: []byte(secret), expiry: expiry}
}

func (s *AuthService) Register(ctx context.Context, email, username, password string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("email is invalid")
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := s.fanout.withTimeout(ctx)
	defer cancel()
	profile := &models.Profile{Username: username, Email: email, Password: hash}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Authenticate returns apperr.ErrUnauthenticated for an unknown email or a
// wrong password alike.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	profile, err := read(ctx, s.fanout, "profile_by_email", func(ctx context.Context) (*models.Profile, error) {
		return s.store.GetProfileByEmail(ctx, email)
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, profile.Password) {
		return nil, errInvalidCredentials
	}
	return profile, nil
}

// IssueToken signs an HS256 bearer token whose subject is the profile id.
func (s *AuthService) IssueToken(profileID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprint(profileID),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its profile id.
func (s *AuthService) ParseToken(raw string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	id, err := utils.ParseID(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	return id, nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 3 || n > 32 {
		return apperr.Validation("username must be 3 to 32 characters")
	}
	return nil
}
