// Package account drives the login and sign up forms
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/deckbuilder/internal/remote"
	"github.com/mcoot/deckbuilder/internal/session"
)

// Messages shown on the login and sign up forms
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidCredentials  = "Invalid username or password"
	MsgInvalidResponse     = "Authentication failed: Invalid response format"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgSignupFailed        = "Failed to create account"
	MsgSessionNotSaved     = "Failed to save session"
)

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
)

// Authenticator is the subset of the remote deck service used for accounts
type Authenticator interface {
	Login(ctx context.Context, creds remote.Credentials) (string, error)
	CreateUser(ctx context.Context, creds remote.Credentials) error
}

// Session holds the bearer token
type Session interface {
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Coordinator owns the login and sign up form state
type Coordinator struct {
	auth      Authenticator
	session   Session
	navigator session.Navigator
	logger    *slog.Logger

	mu           sync.Mutex
	errorMessage string
}

// New creates an account Coordinator. navigator may be nil.
func New(auth Authenticator, sess Session, navigator session.Navigator, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		auth:      auth,
		session:   sess,
		navigator: navigator,
		logger:    logger,
	}
}

// ErrorMessage returns the message from the last failed attempt, or ""
func (c *Coordinator) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

// Login authenticates and stores the returned token
func (c *Coordinator) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		c.setError(MsgCredentialsRequired)
		return ErrCredentialsRequired
	}

	token, err := c.auth.Login(ctx, remote.Credentials{Username: username, Password: password})
	if err != nil {
		c.logger.Error("login failed", "username", username, "error", err)
		if errors.Is(err, remote.ErrInvalidResponseFormat) {
			c.setError(MsgInvalidResponse)
		} else {
			c.setError(MsgInvalidCredentials)
		}
		return fmt.Errorf("login: %w", err)
	}

	if err := c.session.SetToken(ctx, token); err != nil {
		c.logger.Error("failed to store token", "username", username, "error", err)
		c.setError(MsgSessionNotSaved)
		return err
	}

	c.setError("")
	return nil
}

// Signup creates an account and then logs straight into it. A failed
// automatic login is logged but does not fail the sign up.
func (c *Coordinator) Signup(ctx context.Context, username, password, confirm string) error {
	if username == "" || password == "" {
		c.setError(MsgCredentialsRequired)
		return ErrCredentialsRequired
	}
	if password != confirm {
		c.setError(MsgPasswordMismatch)
		return ErrPasswordMismatch
	}

	creds := remote.Credentials{Username: username, Password: password}
	if err := c.auth.CreateUser(ctx, creds); err != nil {
		c.logger.Error("signup failed", "username", username, "error", err)
		c.setError(remote.MessageOr(err, MsgSignupFailed))
		return fmt.Errorf("create user: %w", err)
	}
	c.setError("")
	c.logger.Info("user created", "username", username)

	token, err := c.auth.Login(ctx, creds)
	if err != nil {
		c.logger.Error("auto-login failed after signup", "username", username, "error", err)
		return nil
	}
	if err := c.session.SetToken(ctx, token); err != nil {
		c.logger.Error("auto-login failed after signup", "username", username, "error", err)
		return nil
	}

	if c.navigator != nil {
		c.navigator.Navigate(session.LandingPath)
	}
	return nil
}

// Logout drops the session
func (c *Coordinator) Logout(ctx context.Context) error {
	return c.session.ClearToken(ctx)
}

func (c *Coordinator) setError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorMessage = message
}
