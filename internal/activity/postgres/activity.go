package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/absence-request/internal/activity"
	activityDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/activity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) GetAll(ctx context.Context) ([]*activityDatamodel.Category, error) {
	var categories []*activityDatamodel.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *ActivityRepository) GetByName(ctx context.Context, name string) (*activityDatamodel.Category, error) {
	var cat activityDatamodel.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *ActivityRepository) Create(ctx context.Context, cat *activityDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}
