package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/absence-request/internal"
	userDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/user"
)

// PasswordHasher turns a plaintext password into a one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Repository interface {
	Create(ctx context.Context, user *userDatamodel.User) error
	FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Register validates the payload, hashes the password and stores the account.
// A duplicate email surfaces as a store error; there is no pre-check.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	reg, err := dto.Validate()
	if err != nil {
		s.logger.Debug("registration validation failed", "error", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Credentials().Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewStoreError(fmt.Errorf("hash password: %w", err))
	}

	u := NewUser(reg, hash)
	dm := ToDataModel(u)
	if err := s.repo.Create(ctx, dm); err != nil {
		s.logger.Error("failed to create user", "error", err, "role", u.Role.String())
		return nil, internal.NewStoreError(fmt.Errorf("create user: %w", err))
	}

	u.ID = dm.ID
	u.CreatedAt = dm.CreatedAt

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role.String())
	return u, nil
}
