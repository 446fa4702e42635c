package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/user"
)

type Service struct {
	store    CredentialStore
	verifier PasswordVerifier
	logger   *slog.Logger
}

func NewService(store CredentialStore, verifier PasswordVerifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate returns the account for valid credentials. Unknown email and
// wrong password yield the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.store.FindByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.logger.Info("login rejected: unknown email")
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up credentials", "error", err)
		return nil, internal.NewStoreError(fmt.Errorf("find user by email: %w", err))
	}

	if !s.verifier.Verify(dm.PasswordHash, dto.Password) {
		s.logger.Info("login rejected: password mismatch", "user_id", dm.ID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", dm.ID)
	return user.FromDataModel(dm), nil
}
