package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/deckbuilder/internal/dependencies/clock"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const defaultIssuer = "deckstub"

// Service handles accounts and token issuing
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	secret   []byte
	tokenTTL time.Duration
	issuer   string
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs issued tokens (HS256)
	Secret []byte
	// TokenTTL is how long an issued token stays valid
	TokenTTL time.Duration
	// Issuer is written to the iss claim
	Issuer string
}

// DefaultConfig returns default auth configuration. The secret is a
// development value and must be overridden in any shared deployment.
func DefaultConfig() Config {
	return Config{
		Secret:   []byte("deckstub-dev-secret"),
		TokenTTL: 24 * time.Hour,
		Issuer:   defaultIssuer,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if len(cfg.Secret) == 0 {
		cfg.Secret = def.Secret
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = def.TokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = def.Issuer
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		logger:   logger,
		secret:   cfg.Secret,
		tokenTTL: cfg.TokenTTL,
		issuer:   cfg.Issuer,
	}
}

// Register creates an account
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Login checks credentials and issues a signed token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.Username)
}

// IssueToken signs a token whose subject is username
func (s *Service) IssueToken(username string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ValidateToken verifies token and returns the username it was issued to
func (s *Service) ValidateToken(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
