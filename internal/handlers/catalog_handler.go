package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/korelium/catalog-service/internal/models"
	"github.com/korelium/catalog-service/internal/services"
	"go.uber.org/zap"
)

// defaultRelatedLimit is the number of related courses returned when the
// caller does not supply a limit
const defaultRelatedLimit = 4

// CatalogService is the interface that wraps the public catalog queries
type CatalogService interface {
	// GetCourseBySlug retrieves a single shaped course by its public slug.
	// Returns models.ErrCourseNotFound when no course matches.
	GetCourseBySlug(ctx context.Context, courseSlug string) (*models.CourseResponse, error)
	// ListCoursesByCategory resolves a category slug, applies the optional
	// search term and returns one page of courses with pagination metadata.
	// An unknown category slug yields an empty result, not an error.
	ListCoursesByCategory(ctx context.Context, categorySlug, search string, page, limit int) (*models.CourseListResult, error)
	// GetCategories returns every category in use with slug and course count.
	GetCategories(ctx context.Context) ([]models.CategoryListItem, error)
	// GetRelatedCourses returns random same-category courses excluding the
	// course identified by courseSlug.
	GetRelatedCourses(ctx context.Context, courseSlug string, limit int) ([]models.CourseResponse, error)
}

// CatalogHandler handles the public catalog HTTP requests
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all public catalog routes
// Note: This assumes the router is already scoped to /api
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/course/{slug}", h.GetCourse)
	r.Get("/course/{slug}/related", h.GetRelatedCourses)
	r.Get("/courses/category/{categorySlug}", h.ListCoursesByCategory)
	r.Get("/course-categories", h.GetCategories)
}

// GetCourse handles GET /api/course/{slug}
// @Summary Get a course by slug
// @Description Get a single course by its URL slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} map[string]any "Course data"
// @Failure 404 {object} map[string]any "Course not found"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/course/{slug} [get]
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "slug")

	course, err := h.service.GetCourseBySlug(r.Context(), courseSlug)
	if err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			h.RespondErrorCode(w, http.StatusNotFound, "Course not found", "COURSE_NOT_FOUND")
			return
		}
		h.Logger.Error("failed to get course", zap.String("slug", courseSlug), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.RespondData(w, http.StatusOK, course)
}

// ListCoursesByCategory handles GET /api/courses/category/{categorySlug}
// @Summary List courses by category
// @Description List courses filtered by category slug with optional search and pagination. The slug "all" disables the category filter. An unknown slug returns an empty result with category.found=false.
// @Tags catalog
// @Produce json
// @Param categorySlug path string true "Category slug or 'all'"
// @Param page query int false "1-based page number, default: 1"
// @Param limit query int false "Page size, default: 12"
// @Param search query string false "Case-insensitive search term"
// @Success 200 {object} map[string]any "Courses with pagination metadata"
// @Failure 400 {object} map[string]any "Invalid pagination parameters"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/courses/category/{categorySlug} [get]
func (h *CatalogHandler) ListCoursesByCategory(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "categorySlug")
	search := r.URL.Query().Get("search")

	page, ok := h.queryInt(w, r, "page", 1)
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, r, "limit", services.DefaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.ListCoursesByCategory(r.Context(), categorySlug, search, page, limit)
	if err != nil {
		h.Logger.Error("failed to list courses", zap.String("categorySlug", categorySlug), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.RespondData(w, http.StatusOK, result)
}

// GetCategories handles GET /api/course-categories
// @Summary List course categories
// @Description List every category currently in use with its slug and course count
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]any "Category list"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/course-categories [get]
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		h.Logger.Error("failed to get categories", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.RespondData(w, http.StatusOK, categories)
}

// GetRelatedCourses handles GET /api/course/{slug}/related
// @Summary Get related courses
// @Description Get random courses from the same category, excluding the course itself
// @Tags catalog
// @Produce json
// @Param slug path string true "Course slug"
// @Param limit query int false "Maximum number of courses, default: 4"
// @Success 200 {object} map[string]any "Related courses"
// @Failure 404 {object} map[string]any "Course not found"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/course/{slug}/related [get]
func (h *CatalogHandler) GetRelatedCourses(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "slug")

	limit, ok := h.queryInt(w, r, "limit", defaultRelatedLimit)
	if !ok {
		return
	}

	related, err := h.service.GetRelatedCourses(r.Context(), courseSlug, limit)
	if err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			h.RespondError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.Logger.Error("failed to get related courses", zap.String("slug", courseSlug), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.RespondData(w, http.StatusOK, related)
}

// queryInt parses an optional positive integer query parameter, responding
// with 400 and returning ok=false when the value is not a valid number
func (h *BaseHandler) queryInt(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		h.RespondError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}

	return parsed, true
}
