package activity

import (
	"time"

	"github.com/frahmantamala/absence-request/internal/absence"
	activityDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/activity"
)

// Category is a kind of activity a student can be excused for, shown to
// students when they fill in a request.
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RequiresComment mirrors the submission rule for the catch-all activity.
func (c *Category) RequiresComment() bool {
	return absence.Activity(c.Name).IsOther()
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:            c.Name,
		Description:     c.Description,
		RequiresComment: c.RequiresComment(),
	}
}

// DefaultCategories is the catalogue installed by the seed command, in display order.
var DefaultCategories = []struct {
	Name        string
	Description string
}{
	{"就職活動", "採用試験・面接"},
	{"会社説明会", "企業説明会・セミナー"},
	{"インターンシップ", "インターンシップ参加"},
	{"資格試験", "資格・検定試験の受験"},
	{absence.OtherActivity, "上記以外（コメント必須）"},
}

func newCategoryRecord(name, description string) *activityDatamodel.Category {
	return &activityDatamodel.Category{
		Name:        name,
		Description: description,
		IsActive:    true,
	}
}

func FromDataModel(c *activityDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
