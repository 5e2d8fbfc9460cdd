package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/deckbuilder/internal/dependencies/mocks"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/storage/memory"
	"github.com/mcoot/deckbuilder/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterPersistsHashedPassword() {
	err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEmpty(user.PasswordHash)
	s.NotEqual("password123", user.PasswordHash) // Should be hashed
	s.Equal(s.clock.Now(), user.CreatedAt)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	err := s.service.Register(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *ServiceSuite) TestRegisterRequiresCredentials() {
	s.ErrorIs(s.service.Register(s.ctx, "", "pw"), ErrMissingCredentials)
	s.ErrorIs(s.service.Register(s.ctx, "alice", ""), ErrMissingCredentials)
}

// Login tests

func (s *ServiceSuite) TestLoginIssuesTokenForUser() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.NotEmpty(token)

	username, err := s.service.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("alice", username)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	_, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Token tests

func (s *ServiceSuite) TestTokenSubjectIsUsername() {
	token, err := s.service.IssueToken("alice")
	s.Require().NoError(err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	s.Require().NoError(err)
	s.Equal("alice", claims["sub"])
	s.Equal(defaultIssuer, claims["iss"])
}

func (s *ServiceSuite) TestTokenExpires() {
	token, _ := s.service.IssueToken("alice")

	s.clock.Advance(23 * time.Hour)
	_, err := s.service.ValidateToken(token)
	s.NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.service.ValidateToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestTokenFromOtherSecretRejected() {
	other := New(s.storage, s.clock, Config{Secret: []byte("another-secret")}, testutil.NopLogger())
	token, _ := other.IssueToken("alice")

	_, err := s.service.ValidateToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestGarbageTokenRejected() {
	_, err := s.service.ValidateToken("not-a-jwt")
	s.ErrorIs(err, ErrInvalidToken)
}
