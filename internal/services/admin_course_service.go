package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/korelium/catalog-service/internal/models"
	"github.com/korelium/catalog-service/internal/storage"
	"go.uber.org/zap"
)

// AdminCourseRepository is the interface that wraps course table writes used by admin CRUD
type AdminCourseRepository interface {
	// GetAll retrieves every course, newest first.
	GetAll(ctx context.Context) ([]models.Course, error)
	// GetByID retrieves a course by its ID.
	// Returns models.ErrCourseNotFound when no course matches.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// ExistsBySlug checks if a course with the given slug exists.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Create inserts a new course and sets its generated ID.
	Create(ctx context.Context, course *models.Course) error
	// Update overwrites all mutable columns of a course row.
	Update(ctx context.Context, course *models.Course) error
	// Delete deletes a course by ID.
	Delete(ctx context.Context, id int) error
}

// ImageStorage is the interface that wraps image file storage
type ImageStorage interface {
	// Create creates a new image file and returns a WriteCloser.
	Create(name string) (io.WriteCloser, error)
	// Delete removes a stored image file.
	Delete(name string) error
}

// adminCourseService implements admin course CRUD including image handling.
//
// Image and row writes are not transactional; the compensating order keeps
// the stranded artifact recoverable: a new file is written before the row
// commit and removed again if the commit fails, old files are deleted only
// after the row commit succeeded.
type adminCourseService struct {
	courseRepo AdminCourseRepository
	storage    ImageStorage
	uploadsDir string
	logger     *zap.Logger
}

// NewAdminCourseService creates a new admin course service
func NewAdminCourseService(courseRepo AdminCourseRepository, imageStorage ImageStorage, uploadsDir string, logger *zap.Logger) *adminCourseService {
	return &adminCourseService{
		courseRepo: courseRepo,
		storage:    imageStorage,
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}

// ListAll returns every course shaped for the admin panel
func (s *adminCourseService) ListAll(ctx context.Context) ([]models.CourseResponse, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return shapeCourses(courses), nil
}

// Create validates and inserts a new course, storing an optional image file.
// A duplicate slug is rejected with models.ErrSlugTaken before anything is
// written.
func (s *adminCourseService) Create(ctx context.Context, req *models.CreateCourseRequest, image io.Reader, imageName string) (*models.CourseResponse, error) {
	if req.Title == "" || req.Slug == "" {
		return nil, fmt.Errorf("%w: title and slug are required", models.ErrValidation)
	}

	taken, err := s.courseRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		s.logger.Error("failed to check slug", zap.Error(err))
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, models.ErrSlugTaken
	}

	course := &models.Course{
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Category:        req.Category,
		Tags:            encodeStringList(req.Tags),
		Instructor:      req.Instructor,
		Duration:        req.Duration,
		UdemyLink:       req.UdemyLink,
		Prerequisites:   req.Prerequisites,
		Level:           req.Level,
		Language:        req.Language,
		LastUpdated:     req.LastUpdated,
		Certificate:     parseBoolField(req.Certificate),
		WhatYoullLearn:  encodeStringList(req.WhatYoullLearn),
	}

	if course.Students, err = parseIntField("students", req.Students); err != nil {
		return nil, err
	}
	if course.Rating, err = parseFloatField("rating", req.Rating); err != nil {
		return nil, err
	}
	if course.OriginalPrice, err = parseFloatField("originalPrice", req.OriginalPrice); err != nil {
		return nil, err
	}

	// Write the image before the row so a failed insert can clean it up
	var storedImage string
	if image != nil {
		storedImage, err = s.storeImage(image, imageName)
		if err != nil {
			return nil, err
		}
		course.Image = storage.PublicPath(s.uploadsDir, storedImage)
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if storedImage != "" {
			if delErr := s.storage.Delete(storedImage); delErr != nil {
				s.logger.Warn("failed to clean up image after insert failure", zap.String("image", storedImage), zap.Error(delErr))
			}
		}
		s.logger.Error("failed to create course", zap.Error(err))
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	shaped := shapeCourse(*course)
	return &shaped, nil
}

// Update applies a partial update to a course. A new image replaces the old
// one: the new file is written first, the row updated, and only then the old
// file deleted best-effort.
func (s *adminCourseService) Update(ctx context.Context, id int, req *models.UpdateCourseRequest, image io.Reader, imageName string) (*models.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyUpdate(ctx, course, req); err != nil {
		return nil, err
	}

	var storedImage, oldImage string
	if image != nil {
		storedImage, err = s.storeImage(image, imageName)
		if err != nil {
			return nil, err
		}
		oldImage = course.Image
		course.Image = storage.PublicPath(s.uploadsDir, storedImage)
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if storedImage != "" {
			if delErr := s.storage.Delete(storedImage); delErr != nil {
				s.logger.Warn("failed to clean up image after update failure", zap.String("image", storedImage), zap.Error(delErr))
			}
		}
		s.logger.Error("failed to update course", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	if storedImage != "" {
		s.deleteImageFile(oldImage)
	}

	shaped := shapeCourse(*course)
	return &shaped, nil
}

// Delete removes a course row, then best-effort deletes its image file
func (s *adminCourseService) Delete(ctx context.Context, id int) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete course", zap.Int("id", id), zap.Error(err))
		return err
	}

	s.deleteImageFile(course.Image)
	return nil
}

// applyUpdate merges the non-nil request fields into the stored course
func (s *adminCourseService) applyUpdate(ctx context.Context, course *models.Course, req *models.UpdateCourseRequest) error {
	if req.Slug != nil && *req.Slug != course.Slug {
		taken, err := s.courseRepo.ExistsBySlug(ctx, *req.Slug)
		if err != nil {
			s.logger.Error("failed to check slug", zap.Error(err))
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			return models.ErrSlugTaken
		}
		course.Slug = *req.Slug
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.FullDescription != nil {
		course.FullDescription = *req.FullDescription
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Tags != nil {
		course.Tags = encodeStringList(*req.Tags)
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.UdemyLink != nil {
		course.UdemyLink = *req.UdemyLink
	}
	if req.Prerequisites != nil {
		course.Prerequisites = *req.Prerequisites
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Language != nil {
		course.Language = *req.Language
	}
	if req.LastUpdated != nil {
		course.LastUpdated = *req.LastUpdated
	}
	if req.Certificate != nil {
		course.Certificate = parseBoolField(*req.Certificate)
	}
	if req.WhatYoullLearn != nil {
		course.WhatYoullLearn = encodeStringList(*req.WhatYoullLearn)
	}

	var err error
	if req.Students != nil {
		if course.Students, err = parseIntField("students", *req.Students); err != nil {
			return err
		}
	}
	if req.Rating != nil {
		if course.Rating, err = parseFloatField("rating", *req.Rating); err != nil {
			return err
		}
	}
	if req.OriginalPrice != nil {
		if course.OriginalPrice, err = parseFloatField("originalPrice", *req.OriginalPrice); err != nil {
			return err
		}
	}

	return nil
}

// storeImage writes an uploaded image under a generated UUID filename and
// returns that filename
func (s *adminCourseService) storeImage(image io.Reader, imageName string) (string, error) {
	filename := storage.GenerateFileName(imageName)

	writer, err := s.storage.Create(filename)
	if err != nil {
		s.logger.Error("failed to create image file", zap.Error(err))
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	if _, err := io.Copy(writer, image); err != nil {
		writer.Close()
		if delErr := s.storage.Delete(filename); delErr != nil {
			s.logger.Warn("failed to clean up partial image", zap.String("image", filename), zap.Error(delErr))
		}
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	return filename, nil
}

// deleteImageFile best-effort deletes the file behind a stored image path.
// External image URLs are left alone.
func (s *adminCourseService) deleteImageFile(image string) {
	if image == "" || strings.Contains(image, "://") {
		return
	}

	if err := s.storage.Delete(path.Base(image)); err != nil {
		s.logger.Warn("failed to delete image file", zap.String("image", image), zap.Error(err))
	}
}

// parseIntField parses an optional integer form field, empty meaning zero
func parseIntField(name, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value", models.ErrValidation, name)
	}
	return parsed, nil
}

// parseFloatField parses an optional decimal form field, empty meaning zero
func parseFloatField(name, value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value", models.ErrValidation, name)
	}
	return parsed, nil
}

// parseBoolField parses a checkbox-style form field
func parseBoolField(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}
