// Package services implements the catalog and admin business logic
package services

import (
	"encoding/json"
	"math"
	"math/rand"

	"github.com/korelium/catalog-service/internal/models"
	"github.com/korelium/catalog-service/internal/slug"
)

// decodeStringList decodes a JSON-encoded string array from a text column.
// Malformed or empty JSON degrades to an empty list and never fails the
// request.
func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}

// encodeStringList normalizes a raw form value into a JSON-encoded string
// array for storage. Anything that does not parse as a string array is
// stored as an empty one.
func encodeStringList(raw string) string {
	encoded, err := json.Marshal(decodeStringList(raw))
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// shapeCourse converts a stored course into its API representation: list
// fields decoded, categorySlug derived, missing metrics backfilled with
// plausible values. Backfilled values are cosmetic and never persisted.
func shapeCourse(course models.Course) models.CourseResponse {
	resp := models.CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Slug:            course.Slug,
		Description:     course.Description,
		FullDescription: course.FullDescription,
		Image:           course.Image,
		Category:        course.Category,
		CategorySlug:    slug.Make(course.Category),
		Tags:            decodeStringList(course.Tags),
		Instructor:      course.Instructor,
		Duration:        course.Duration,
		Students:        course.Students,
		Rating:          course.Rating,
		OriginalPrice:   course.OriginalPrice,
		UdemyLink:       course.UdemyLink,
		Prerequisites:   course.Prerequisites,
		Level:           course.Level,
		Language:        course.Language,
		LastUpdated:     course.LastUpdated,
		Certificate:     course.Certificate,
		WhatYoullLearn:  decodeStringList(course.WhatYoullLearn),
		CreatedAt:       course.CreatedAt,
		UpdatedAt:       course.UpdatedAt,
	}

	if resp.Students == 0 {
		resp.Students = rand.Intn(10000) + 1000
	}
	if resp.Rating == 0 {
		resp.Rating = math.Round((4.0+rand.Float64())*10) / 10
	}
	if resp.OriginalPrice == 0 {
		resp.OriginalPrice = float64(rand.Intn(100)) + 29.99
	}

	return resp
}

// shapeCourses shapes a slice of stored courses, always returning a non-nil
// slice so listings serialize as [] rather than null
func shapeCourses(courses []models.Course) []models.CourseResponse {
	shaped := make([]models.CourseResponse, 0, len(courses))
	for _, course := range courses {
		shaped = append(shaped, shapeCourse(course))
	}
	return shaped
}
