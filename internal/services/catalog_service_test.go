package services

import (
	"context"
	"errors"
	"testing"

	"github.com/korelium/catalog-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCatalogRepository is a mock implementation of CatalogRepository
type mockCatalogRepository struct {
	course     *models.Course
	courses    []models.Course
	categories []string
	counts     []models.CategoryCount
	related    []models.Course
	total      int
	err        error

	lastFilter models.CourseFilter
	lastLimit  int
	lastOffset int
}

func (m *mockCatalogRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil {
		return nil, models.ErrCourseNotFound
	}
	return m.course, nil
}

func (m *mockCatalogRepository) Count(ctx context.Context, filter models.CourseFilter) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.lastFilter = filter
	return m.total, nil
}

func (m *mockCatalogRepository) List(ctx context.Context, filter models.CourseFilter, limit, offset int) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFilter = filter
	m.lastLimit = limit
	m.lastOffset = offset
	return m.courses, nil
}

func (m *mockCatalogRepository) GetDistinctCategories(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCatalogRepository) GetCategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.counts, nil
}

func (m *mockCatalogRepository) GetRelated(ctx context.Context, category, excludeSlug string, limit int) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.related, nil
}

func TestNewCatalogService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{}

	svc := NewCatalogService(repo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.courseRepo)
	assert.Equal(t, logger, svc.logger)
}

func TestCatalogService_GetCourseBySlug(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name          string
		repo          *mockCatalogRepository
		expectedError error
	}{
		{
			name: "success",
			repo: &mockCatalogRepository{
				course: &models.Course{
					ID:       1,
					Title:    "Go Basics",
					Slug:     "go-basics",
					Category: "Web Development",
					Tags:     `["go","backend"]`,
					Students: 1500,
					Rating:   4.5,
				},
			},
		},
		{
			name:          "course not found",
			repo:          &mockCatalogRepository{},
			expectedError: models.ErrCourseNotFound,
		},
		{
			name:          "repository error",
			repo:          &mockCatalogRepository{err: errors.New("database error")},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCatalogService(tt.repo, logger)

			result, err := svc.GetCourseBySlug(context.Background(), "go-basics")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			case tt.repo.err != nil:
				assert.Error(t, err)
				assert.Nil(t, result)
			default:
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "Go Basics", result.Title)
				assert.Equal(t, "web-development", result.CategorySlug)
				assert.Equal(t, []string{"go", "backend"}, result.Tags)
			}
		})
	}
}

func TestCatalogService_ListCoursesByCategory_All(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{
		courses: []models.Course{
			{ID: 1, Title: "Go Basics", Slug: "go-basics", Category: "Programming"},
		},
		total: 25,
	}
	svc := NewCatalogService(repo, logger)

	result, err := svc.ListCoursesByCategory(context.Background(), "all", "", 2, 12)

	assert.NoError(t, err)
	require.NotNil(t, result)

	// "all" disables the category filter entirely
	assert.Empty(t, repo.lastFilter.Category)
	assert.Equal(t, 12, repo.lastLimit)
	assert.Equal(t, 12, repo.lastOffset)

	assert.True(t, result.Category.Found)
	assert.Equal(t, "all", result.Category.Slug)
	require.NotNil(t, result.Category.Name)
	assert.Equal(t, "All Categories", *result.Category.Name)

	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.Equal(t, 25, result.Pagination.TotalCourses)
	assert.True(t, result.Pagination.HasNextPage)
	assert.True(t, result.Pagination.HasPrevPage)
	assert.Equal(t, 12, result.Pagination.Limit)
}

func TestCatalogService_ListCoursesByCategory_ResolvesSlug(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{
		categories: []string{"Web Development", "DevOps"},
		courses: []models.Course{
			{ID: 1, Title: "HTML", Slug: "html", Category: "Web Development"},
		},
		total: 1,
	}
	svc := NewCatalogService(repo, logger)

	result, err := svc.ListCoursesByCategory(context.Background(), "web-development", "", 1, 12)

	assert.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Web Development", repo.lastFilter.Category)
	assert.True(t, result.Category.Found)
	require.NotNil(t, result.Category.Name)
	assert.Equal(t, "Web Development", *result.Category.Name)
	assert.Len(t, result.Courses, 1)
}

func TestCatalogService_ListCoursesByCategory_UnknownSlug(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{
		categories: []string{"Web Development"},
	}
	svc := NewCatalogService(repo, logger)

	result, err := svc.ListCoursesByCategory(context.Background(), "no-such-category", "", 3, 5)

	// An unknown category is an empty result, not an error
	assert.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Category.Found)
	assert.Nil(t, result.Category.Name)
	assert.Equal(t, "no-such-category", result.Category.Slug)
	assert.NotNil(t, result.Courses)
	assert.Empty(t, result.Courses)
	assert.Equal(t, 3, result.Pagination.CurrentPage)
	assert.Equal(t, 5, result.Pagination.Limit)
	assert.Equal(t, 0, result.Pagination.TotalCourses)
	assert.False(t, result.Pagination.HasNextPage)
}

func TestCatalogService_ListCoursesByCategory_SearchPassthrough(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{total: 0}
	svc := NewCatalogService(repo, logger)

	result, err := svc.ListCoursesByCategory(context.Background(), "all", "docker", 1, 12)

	assert.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "docker", repo.lastFilter.Search)
	require.NotNil(t, result.Filters.Search)
	assert.Equal(t, "docker", *result.Filters.Search)
	assert.Equal(t, "all", result.Filters.CategorySlug)
}

func TestCatalogService_ListCoursesByCategory_DefaultsPagination(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{total: 5}
	svc := NewCatalogService(repo, logger)

	result, err := svc.ListCoursesByCategory(context.Background(), "all", "", 0, 0)

	assert.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.Pagination.CurrentPage)
	assert.Equal(t, DefaultPageSize, result.Pagination.Limit)
	assert.Equal(t, 0, repo.lastOffset)
}

func TestCatalogService_ListCoursesByCategory_PaginationTruthTable(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name        string
		page        int
		total       int
		hasNext     bool
		hasPrev     bool
		totalPages  int
	}{
		{name: "single page", page: 1, total: 5, hasNext: false, hasPrev: false, totalPages: 1},
		{name: "first of many", page: 1, total: 30, hasNext: true, hasPrev: false, totalPages: 3},
		{name: "middle page", page: 2, total: 30, hasNext: true, hasPrev: true, totalPages: 3},
		{name: "last page", page: 3, total: 30, hasNext: false, hasPrev: true, totalPages: 3},
		{name: "exact multiple", page: 2, total: 24, hasNext: false, hasPrev: true, totalPages: 2},
		{name: "no courses", page: 1, total: 0, hasNext: false, hasPrev: false, totalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCatalogRepository{total: tt.total}
			svc := NewCatalogService(repo, logger)

			result, err := svc.ListCoursesByCategory(context.Background(), "all", "", tt.page, 12)

			assert.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.totalPages, result.Pagination.TotalPages)
			assert.Equal(t, tt.hasNext, result.Pagination.HasNextPage)
			assert.Equal(t, tt.hasPrev, result.Pagination.HasPrevPage)
		})
	}
}

func TestCatalogService_GetCategories(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockCatalogRepository{
		counts: []models.CategoryCount{
			{Name: "DevOps", Count: 3},
			{Name: "Web Development", Count: 9},
		},
	}
	svc := NewCatalogService(repo, logger)

	categories, err := svc.GetCategories(context.Background())

	assert.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, 1, categories[0].ID)
	assert.Equal(t, "DevOps", categories[0].Name)
	assert.Equal(t, "devops", categories[0].Slug)
	assert.Equal(t, 3, categories[0].CourseCount)

	assert.Equal(t, 2, categories[1].ID)
	assert.Equal(t, "web-development", categories[1].Slug)
}

func TestCatalogService_GetRelatedCourses(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("success", func(t *testing.T) {
		repo := &mockCatalogRepository{
			course: &models.Course{ID: 1, Slug: "go-basics", Category: "Programming"},
			related: []models.Course{
				{ID: 2, Title: "Go Advanced", Slug: "go-advanced", Category: "Programming"},
			},
		}
		svc := NewCatalogService(repo, logger)

		related, err := svc.GetRelatedCourses(context.Background(), "go-basics", 4)

		assert.NoError(t, err)
		require.Len(t, related, 1)
		assert.Equal(t, "go-advanced", related[0].Slug)
	})

	t.Run("course not found", func(t *testing.T) {
		repo := &mockCatalogRepository{}
		svc := NewCatalogService(repo, logger)

		related, err := svc.GetRelatedCourses(context.Background(), "nonexistent", 4)

		assert.ErrorIs(t, err, models.ErrCourseNotFound)
		assert.Nil(t, related)
	})

	t.Run("no related courses", func(t *testing.T) {
		repo := &mockCatalogRepository{
			course: &models.Course{ID: 1, Slug: "solo", Category: "Misc"},
		}
		svc := NewCatalogService(repo, logger)

		related, err := svc.GetRelatedCourses(context.Background(), "solo", 4)

		assert.NoError(t, err)
		assert.NotNil(t, related)
		assert.Empty(t, related)
	})
}
