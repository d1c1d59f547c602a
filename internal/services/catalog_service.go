package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/korelium/catalog-service/internal/models"
	"github.com/korelium/catalog-service/internal/slug"
	"go.uber.org/zap"
)

// AllCategoriesSlug is the sentinel category slug meaning "no category filter"
const AllCategoriesSlug = "all"

// DefaultPageSize is the page size used when the caller does not supply one
const DefaultPageSize = 12

// CatalogRepository is the interface that wraps course table reads used by the public catalog
type CatalogRepository interface {
	// GetBySlug retrieves a course by its slug.
	// Returns models.ErrCourseNotFound when no course matches.
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	// Count returns the number of courses matching the filter.
	Count(ctx context.Context, filter models.CourseFilter) (int, error)
	// List retrieves one page of courses matching the filter, newest first.
	List(ctx context.Context, filter models.CourseFilter, limit, offset int) ([]models.Course, error)
	// GetDistinctCategories retrieves the distinct category names currently in use.
	GetDistinctCategories(ctx context.Context) ([]string, error)
	// GetCategoryCounts retrieves category names with their course counts.
	GetCategoryCounts(ctx context.Context) ([]models.CategoryCount, error)
	// GetRelated retrieves up to limit random same-category courses excluding excludeSlug.
	GetRelated(ctx context.Context, category, excludeSlug string, limit int) ([]models.Course, error)
}

// catalogService implements the public catalog queries
type catalogService struct {
	courseRepo CatalogRepository
	logger     *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(courseRepo CatalogRepository, logger *zap.Logger) *catalogService {
	return &catalogService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// GetCourseBySlug retrieves a single shaped course by its public slug
func (s *catalogService) GetCourseBySlug(ctx context.Context, courseSlug string) (*models.CourseResponse, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	shaped := shapeCourse(*course)
	return &shaped, nil
}

// ListCoursesByCategory resolves a category slug, applies the optional search
// term and returns one page of shaped courses with pagination metadata.
//
// An unknown category slug is a valid request with an empty result, not an
// error: the response carries category.found=false with zero courses.
func (s *catalogService) ListCoursesByCategory(ctx context.Context, categorySlug, search string, page, limit int) (*models.CourseListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	filter := models.CourseFilter{Search: search}
	var categoryInfo models.CategoryInfo

	if strings.EqualFold(categorySlug, AllCategoriesSlug) {
		name := "All Categories"
		categoryInfo = models.CategoryInfo{Slug: AllCategoriesSlug, Name: &name, Found: true}
	} else {
		categoryName, err := s.resolveCategorySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		if categoryName == "" {
			// Unknown category: well-formed empty result
			return &models.CourseListResult{
				Courses: []models.CourseResponse{},
				Pagination: models.Pagination{
					CurrentPage: page,
					Limit:       limit,
				},
				Category: models.CategoryInfo{Slug: categorySlug, Name: nil, Found: false},
				Filters:  listFilters(search, categorySlug),
			}, nil
		}
		filter.Category = categoryName
		categoryInfo = models.CategoryInfo{Slug: categorySlug, Name: &categoryName, Found: true}
	}

	total, err := s.courseRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count courses", zap.Error(err))
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	offset := (page - 1) * limit
	courses, err := s.courseRepo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	totalPages := (total + limit - 1) / limit

	return &models.CourseListResult{
		Courses: shapeCourses(courses),
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalCourses: total,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
			Limit:        limit,
		},
		Category: categoryInfo,
		Filters:  listFilters(search, categorySlug),
	}, nil
}

// GetCategories returns every category currently in use with its slug and
// course count. IDs are positional: categories have no identity of their own.
func (s *catalogService) GetCategories(ctx context.Context) ([]models.CategoryListItem, error) {
	counts, err := s.courseRepo.GetCategoryCounts(ctx)
	if err != nil {
		s.logger.Error("failed to get category counts", zap.Error(err))
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make([]models.CategoryListItem, 0, len(counts))
	for i, count := range counts {
		categories = append(categories, models.CategoryListItem{
			ID:          i + 1,
			Name:        count.Name,
			Slug:        slug.Make(count.Name),
			CourseCount: count.Count,
		})
	}

	return categories, nil
}

// GetRelatedCourses returns up to limit random courses sharing the category
// of the course identified by courseSlug, excluding that course itself
func (s *catalogService) GetRelatedCourses(ctx context.Context, courseSlug string, limit int) ([]models.CourseResponse, error) {
	current, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	related, err := s.courseRepo.GetRelated(ctx, current.Category, courseSlug, limit)
	if err != nil {
		s.logger.Error("failed to get related courses", zap.Error(err))
		return nil, fmt.Errorf("failed to get related courses: %w", err)
	}

	return shapeCourses(related), nil
}

// resolveCategorySlug maps an incoming URL slug back to a stored category
// name by recomputing the slug of every distinct category. Returns an empty
// string when no category matches.
func (s *catalogService) resolveCategorySlug(ctx context.Context, categorySlug string) (string, error) {
	categories, err := s.courseRepo.GetDistinctCategories(ctx)
	if err != nil {
		s.logger.Error("failed to get categories for slug resolution", zap.Error(err))
		return "", fmt.Errorf("failed to resolve category: %w", err)
	}

	for _, category := range categories {
		if slug.Make(category) == categorySlug {
			return category, nil
		}
	}

	return "", nil
}

// listFilters builds the filters echo for a listing response
func listFilters(search, categorySlug string) models.ListFilters {
	filters := models.ListFilters{CategorySlug: categorySlug}
	if search != "" {
		filters.Search = &search
	}
	return filters
}
