package activity

import (
	"context"
	"log/slog"

	activityDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/activity"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*activityDatamodel.Category, error)
	GetByName(ctx context.Context, name string) (*activityDatamodel.Category, error)
	Create(ctx context.Context, category *activityDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListActivities returns the active categories in catalogue order.
func (s *Service) ListActivities(ctx context.Context) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get activity categories from repository", "error", err)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, record := range dataCategories {
		category := FromDataModel(record)
		if category.Active {
			responses = append(responses, category.ToResponse())
		}
	}

	s.logger.Debug("retrieved activity categories", "count", len(responses))
	return responses, nil
}

// EnsureCategory creates the category unless one with the same name exists.
func (s *Service) EnsureCategory(ctx context.Context, name, description string) (created bool, err error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if err := s.repo.Create(ctx, newCategoryRecord(name, description)); err != nil {
		s.logger.Error("failed to create activity category", "name", name, "error", err)
		return false, err
	}

	s.logger.Info("activity category created", "name", name)
	return true, nil
}
