package activity_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/frahmantamala/absence-request/internal/activity"
	activityDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/activity"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockRepository implements activity.RepositoryAPI for testing
type MockRepository struct {
	categories []*activityDatamodel.Category
	failError  error
}

func (m *MockRepository) GetAll(_ context.Context) ([]*activityDatamodel.Category, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.categories, nil
}

func (m *MockRepository) GetByName(_ context.Context, name string) (*activityDatamodel.Category, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(_ context.Context, c *activityDatamodel.Category) error {
	if m.failError != nil {
		return m.failError
	}
	c.ID = int64(len(m.categories) + 1)
	m.categories = append(m.categories, c)
	return nil
}

var _ = Describe("Activity Service", func() {
	var (
		ctx     context.Context
		repo    *MockRepository
		service *activity.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = &MockRepository{}
		service = activity.NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	Describe("ListActivities", func() {
		It("returns active categories in catalogue order", func() {
			repo.categories = []*activityDatamodel.Category{
				{ID: 1, Name: "就職活動", Description: "採用試験・面接", IsActive: true},
				{ID: 2, Name: "廃止", IsActive: false},
				{ID: 3, Name: "その他", Description: "上記以外", IsActive: true},
			}

			list, err := service.ListActivities(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(Equal([]activity.CategoryResponse{
				{Name: "就職活動", Description: "採用試験・面接"},
				{Name: "その他", Description: "上記以外", RequiresComment: true},
			}))
		})

		It("returns an empty list rather than nil", func() {
			list, err := service.ListActivities(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
			Expect(list).To(BeEmpty())
		})

		It("passes repository failures through", func() {
			repo.failError = errors.New("db down")
			_, err := service.ListActivities(ctx)
			Expect(err).To(MatchError("db down"))
		})
	})

	Describe("EnsureCategory", func() {
		It("creates a missing category once", func() {
			created, err := service.EnsureCategory(ctx, "資格試験", "資格・検定試験の受験")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())

			created, err = service.EnsureCategory(ctx, "資格試験", "資格・検定試験の受験")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(repo.categories).To(HaveLen(1))
			Expect(repo.categories[0].IsActive).To(BeTrue())
		})

		It("seeds the whole default catalogue", func() {
			for _, c := range activity.DefaultCategories {
				_, err := service.EnsureCategory(ctx, c.Name, c.Description)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(repo.categories).To(HaveLen(len(activity.DefaultCategories)))
			Expect(repo.categories[len(repo.categories)-1].Name).To(Equal("その他"))
		})
	})
})
