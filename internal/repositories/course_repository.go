// Package repositories provides raw-SQL data access for the catalog tables
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/korelium/catalog-service/internal/models"
)

// courseColumns is the full column list selected for course rows
const courseColumns = `id, title, slug, description, full_description, image, category, tags,
	instructor, duration, students, rating, original_price, udemy_link, prerequisites,
	level, language, last_updated, certificate, what_youll_learn, created_at, updated_at`

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// scanCourse scans a full course row
func scanCourse(row interface{ Scan(dest ...any) error }) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.FullDescription,
		&course.Image,
		&course.Category,
		&course.Tags,
		&course.Instructor,
		&course.Duration,
		&course.Students,
		&course.Rating,
		&course.OriginalPrice,
		&course.UdemyLink,
		&course.Prerequisites,
		&course.Level,
		&course.Language,
		&course.LastUpdated,
		&course.Certificate,
		&course.WhatYoullLearn,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// buildFilter builds the WHERE clause for a course filter.
// The search predicate matches the raw tags text column, so a tag search is
// a substring match against the JSON-serialized array, not decoded values.
// LIKE wildcards in the term are not escaped: "%" and "_" keep their SQL
// meaning, matching how the original API behaves.
func buildFilter(filter models.CourseFilter) (string, []any) {
	var whereClauses []string
	var args []any

	if filter.Category != "" {
		whereClauses = append(whereClauses, "category = ?")
		args = append(args, filter.Category)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		whereClauses = append(whereClauses, `(LOWER(title) LIKE ? OR LOWER(description) LIKE ?
			OR LOWER(full_description) LIKE ? OR LOWER(instructor) LIKE ? OR LOWER(tags) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}

	if len(whereClauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(whereClauses, " AND "), args
}

// GetBySlug retrieves a course by its slug
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE slug = ?
		LIMIT 1
	`, courseColumns)

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, models.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by slug: %w", err)
	}

	return course, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE id = ?
		LIMIT 1
	`, courseColumns)

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return course, nil
}

// GetAll retrieves every course, newest first
func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		ORDER BY created_at DESC
	`, courseColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// Count returns the number of courses matching the filter
func (r *courseRepository) Count(ctx context.Context, filter models.CourseFilter) (int, error) {
	whereClause, args := buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM courses %s", whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return total, nil
}

// List retrieves one page of courses matching the filter, ordered by creation
// time descending (newest first)
func (r *courseRepository) List(ctx context.Context, filter models.CourseFilter, limit, offset int) ([]models.Course, error) {
	whereClause, args := buildFilter(filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		%s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, courseColumns, whereClause)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// GetDistinctCategories retrieves the distinct category names currently in use
func (r *courseRepository) GetDistinctCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM courses
		WHERE category <> ''
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// GetCategoryCounts retrieves category names with their course counts
func (r *courseRepository) GetCategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	query := `
		SELECT category, COUNT(id)
		FROM courses
		WHERE category <> ''
		GROUP BY category
		ORDER BY category
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var count models.CategoryCount
		if err := rows.Scan(&count.Name, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// GetRelated retrieves up to limit random courses from the same category,
// excluding the course identified by excludeSlug
func (r *courseRepository) GetRelated(ctx context.Context, category, excludeSlug string, limit int) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE category = ? AND slug <> ?
		ORDER BY RAND()
		LIMIT ?
	`, courseColumns)

	rows, err := r.db.QueryContext(ctx, query, category, excludeSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query related courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// ExistsBySlug checks if a course with the given slug exists
func (r *courseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM courses WHERE slug = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new course and sets its generated ID
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, slug, description, full_description, image, category, tags,
			instructor, duration, students, rating, original_price, udemy_link, prerequisites,
			level, language, last_updated, certificate, what_youll_learn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Slug,
		course.Description,
		course.FullDescription,
		course.Image,
		course.Category,
		course.Tags,
		course.Instructor,
		course.Duration,
		course.Students,
		course.Rating,
		course.OriginalPrice,
		course.UdemyLink,
		course.Prerequisites,
		course.Level,
		course.Language,
		course.LastUpdated,
		course.Certificate,
		course.WhatYoullLearn,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update overwrites all mutable columns of a course row
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = ?, slug = ?, description = ?, full_description = ?, image = ?, category = ?,
			tags = ?, instructor = ?, duration = ?, students = ?, rating = ?, original_price = ?,
			udemy_link = ?, prerequisites = ?, level = ?, language = ?, last_updated = ?,
			certificate = ?, what_youll_learn = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Slug,
		course.Description,
		course.FullDescription,
		course.Image,
		course.Category,
		course.Tags,
		course.Instructor,
		course.Duration,
		course.Students,
		course.Rating,
		course.OriginalPrice,
		course.UdemyLink,
		course.Prerequisites,
		course.Level,
		course.Language,
		course.LastUpdated,
		course.Certificate,
		course.WhatYoullLearn,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	return nil
}

// Delete deletes a course by ID
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCourseNotFound
	}

	return nil
}

// collectCourses drains a result set of full course rows
func collectCourses(rows *sql.Rows) ([]models.Course, error) {
	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}
