package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/korelium/catalog-service/internal/auth/middleware"
	"github.com/korelium/catalog-service/internal/models"
	"go.uber.org/zap"
)

// maxCourseFormSize limits the multipart form size for course writes (20MB)
const maxCourseFormSize = 20 << 20

// AdminCourseService is the interface that wraps admin course CRUD business logic
type AdminCourseService interface {
	// ListAll returns every course shaped for the admin panel.
	ListAll(ctx context.Context) ([]models.CourseResponse, error)
	// Create validates and inserts a new course with an optional image file.
	// Returns models.ErrSlugTaken for a duplicate slug.
	Create(ctx context.Context, req *models.CreateCourseRequest, image io.Reader, imageName string) (*models.CourseResponse, error)
	// Update applies a partial update, optionally replacing the image.
	// Returns models.ErrCourseNotFound when no course matches the id.
	Update(ctx context.Context, id int, req *models.UpdateCourseRequest, image io.Reader, imageName string) (*models.CourseResponse, error)
	// Delete removes a course row and best-effort deletes its image file.
	Delete(ctx context.Context, id int) error
}

// AdminCourseHandler handles the authenticated course management endpoints
type AdminCourseHandler struct {
	BaseHandler
	service AdminCourseService
}

// NewAdminCourseHandler creates a new admin course handler
func NewAdminCourseHandler(service AdminCourseService, logger *zap.Logger) *AdminCourseHandler {
	return &AdminCourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers the admin course routes behind authentication and
// per-action permission checks
// Note: This assumes the router is already scoped to /api
func (h *AdminCourseHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Use(auth)
		r.With(authMiddleware.RequirePermission(authMiddleware.PermReadCourse)).Get("/", h.ListCourses)
		r.With(authMiddleware.RequirePermission(authMiddleware.PermCreateCourse)).Post("/", h.CreateCourse)
		r.With(authMiddleware.RequirePermission(authMiddleware.PermUpdateCourse)).Put("/{id}", h.UpdateCourse)
		r.With(authMiddleware.RequirePermission(authMiddleware.PermDeleteCourse)).Delete("/{id}", h.DeleteCourse)
	})
}

// ListCourses handles GET /api/courses
// @Summary List all courses
// @Description List every course for the admin panel. Requires the read_course permission.
// @Tags admin-courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.CourseResponse "All courses"
// @Failure 401 {object} map[string]any "Authentication required"
// @Failure 403 {object} map[string]any "Insufficient permissions"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/courses [get]
func (h *AdminCourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to list courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /api/courses
// @Summary Create a course
// @Description Create a course from a multipart form with an optional image file. Requires the create_course permission.
// @Tags admin-courses
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Course title"
// @Param slug formData string true "Course slug (unique)"
// @Param image formData file false "Course image (optional)"
// @Success 201 {object} map[string]any "Course created"
// @Failure 400 {object} map[string]any "Invalid request"
// @Failure 409 {object} map[string]any "Slug already exists"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/courses [post]
func (h *AdminCourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCourseFormSize); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "Failed to parse request")
		return
	}

	req := &models.CreateCourseRequest{
		Title:           r.FormValue("title"),
		Slug:            r.FormValue("slug"),
		Description:     r.FormValue("description"),
		FullDescription: r.FormValue("fullDescription"),
		Category:        r.FormValue("category"),
		Tags:            r.FormValue("tags"),
		Instructor:      r.FormValue("instructor"),
		Duration:        r.FormValue("duration"),
		Students:        r.FormValue("students"),
		Rating:          r.FormValue("rating"),
		OriginalPrice:   r.FormValue("originalPrice"),
		UdemyLink:       r.FormValue("udemyLink"),
		Prerequisites:   r.FormValue("prerequisites"),
		Level:           r.FormValue("level"),
		Language:        r.FormValue("language"),
		LastUpdated:     r.FormValue("lastUpdated"),
		Certificate:     r.FormValue("certificate"),
		WhatYoullLearn:  r.FormValue("whatYoullLearn"),
	}

	image, imageName, ok := h.imageFile(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.Close()
	}

	course, err := h.service.Create(r.Context(), req, imageReader(image), imageName)
	if err != nil {
		h.respondCourseWriteError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Course created successfully",
		"course":  course,
	})
}

// UpdateCourse handles PUT /api/courses/{id}
// @Summary Update a course
// @Description Partially update a course from a multipart form; a new image file replaces the old one. Requires the update_course permission.
// @Tags admin-courses
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param image formData file false "Replacement course image (optional)"
// @Success 200 {object} map[string]any "Course updated"
// @Failure 400 {object} map[string]any "Invalid request"
// @Failure 404 {object} map[string]any "Course not found"
// @Failure 409 {object} map[string]any "Slug already exists"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/courses/{id} [put]
func (h *AdminCourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	if err := r.ParseMultipartForm(maxCourseFormSize); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "Failed to parse request")
		return
	}

	req := &models.UpdateCourseRequest{
		Title:           formValue(r, "title"),
		Slug:            formValue(r, "slug"),
		Description:     formValue(r, "description"),
		FullDescription: formValue(r, "fullDescription"),
		Category:        formValue(r, "category"),
		Tags:            formValue(r, "tags"),
		Instructor:      formValue(r, "instructor"),
		Duration:        formValue(r, "duration"),
		Students:        formValue(r, "students"),
		Rating:          formValue(r, "rating"),
		OriginalPrice:   formValue(r, "originalPrice"),
		UdemyLink:       formValue(r, "udemyLink"),
		Prerequisites:   formValue(r, "prerequisites"),
		Level:           formValue(r, "level"),
		Language:        formValue(r, "language"),
		LastUpdated:     formValue(r, "lastUpdated"),
		Certificate:     formValue(r, "certificate"),
		WhatYoullLearn:  formValue(r, "whatYoullLearn"),
	}

	image, imageName, ok := h.imageFile(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.Close()
	}

	course, err := h.service.Update(r.Context(), id, req, imageReader(image), imageName)
	if err != nil {
		h.respondCourseWriteError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// DeleteCourse handles DELETE /api/courses/{id}
// @Summary Delete a course
// @Description Delete a course and best-effort remove its image file. Requires the delete_course permission.
// @Tags admin-courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]any "Course deleted"
// @Failure 400 {object} map[string]any "Invalid course id"
// @Failure 404 {object} map[string]any "Course not found"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/courses/{id} [delete]
func (h *AdminCourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			h.RespondError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.Logger.Error("failed to delete course", zap.Int("id", id), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Course deleted successfully",
	})
}

// respondCourseWriteError maps course create/update errors to HTTP statuses
func (h *AdminCourseHandler) respondCourseWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrCourseNotFound):
		h.RespondError(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, models.ErrSlugTaken):
		h.RespondError(w, http.StatusConflict, "A course with this slug already exists")
	case errors.Is(err, models.ErrValidation):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("course write failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Server error")
	}
}

// imageFile extracts the optional image file from the multipart form,
// responding with 400 and returning ok=false on a real error
func (h *AdminCourseHandler) imageFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	file, fileHeader, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, "", true
	}
	if err != nil {
		h.Logger.Error("failed to get image file from form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "Failed to process image file")
		return nil, "", false
	}
	if fileHeader.Size == 0 {
		file.Close()
		return nil, "", true
	}

	return file, fileHeader.Filename, true
}

// imageReader converts a possibly-nil multipart file into an io.Reader,
// keeping the nil so services can distinguish "no image" from an empty one
func imageReader(file multipart.File) io.Reader {
	if file == nil {
		return nil
	}
	return file
}

// formValue returns a pointer to a multipart form value, nil when the field
// was absent from the form (which keeps the stored value on partial updates)
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
