package auth

import (
	"errors"
	"time"

	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrInvalidCredentials covers both unknown user and wrong password, so a
// login response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	users  repository.UserRepository
	tokens *TokenManager
}

func NewService(users repository.UserRepository, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

func (s *Service) Register(username, password string) error {
	if username == "" {
		return models.ValidationError{Field: "username", Reason: "required"}
	}
	if password == "" {
		return models.ValidationError{Field: "password", Reason: "required"}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Add(models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("registered user")
	return nil
}

func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.GetByUsername(username)
	if errors.Is(err, models.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user)
}

func (s *Service) Verify(rawToken string) Session {
	return s.tokens.SessionFrom(rawToken)
}
