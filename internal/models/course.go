// Package models defines the catalog entities and API request/response shapes
package models

import "time"

// Course represents a course row as stored in the database.
// Tags and WhatYoullLearn hold JSON-encoded string arrays in text columns;
// zero Students/Rating/OriginalPrice mean "not set" and are backfilled at
// response time without being persisted.
type Course struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	FullDescription string    `json:"fullDescription"`
	Image           string    `json:"image"`
	Category        string    `json:"category"`
	Tags            string    `json:"tags"`
	Instructor      string    `json:"instructor"`
	Duration        string    `json:"duration"`
	Students        int       `json:"students"`
	Rating          float64   `json:"rating"`
	OriginalPrice   float64   `json:"originalPrice"`
	UdemyLink       string    `json:"udemyLink"`
	Prerequisites   string    `json:"prerequisites"`
	Level           string    `json:"level"`
	Language        string    `json:"language"`
	LastUpdated     string    `json:"lastUpdated"`
	Certificate     bool      `json:"certificate"`
	WhatYoullLearn  string    `json:"whatYoullLearn"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CourseResponse is the shaped course returned by the API: JSON-text fields
// decoded into arrays, categorySlug computed, missing metrics backfilled.
type CourseResponse struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	FullDescription string    `json:"fullDescription"`
	Image           string    `json:"image"`
	Category        string    `json:"category"`
	CategorySlug    string    `json:"categorySlug"`
	Tags            []string  `json:"tags"`
	Instructor      string    `json:"instructor"`
	Duration        string    `json:"duration"`
	Students        int       `json:"students"`
	Rating          float64   `json:"rating"`
	OriginalPrice   float64   `json:"originalPrice"`
	UdemyLink       string    `json:"udemyLink"`
	Prerequisites   string    `json:"prerequisites"`
	Level           string    `json:"level"`
	Language        string    `json:"language"`
	LastUpdated     string    `json:"lastUpdated"`
	Certificate     bool      `json:"certificate"`
	WhatYoullLearn  []string  `json:"whatYoullLearn"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CourseFilter describes the WHERE predicate for course listings.
// Category filters by exact category name, Search by case-insensitive
// substring over title, descriptions, instructor and the raw tags text.
// Both combine with AND when set.
type CourseFilter struct {
	Category string
	Search   string
}

// Pagination is the paging metadata returned with course listings
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalCourses int  `json:"totalCourses"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	Limit        int  `json:"limit"`
}

// CategoryInfo describes how a requested category slug resolved.
// Name is null and Found false when the slug matched no stored category.
type CategoryInfo struct {
	Slug  string  `json:"slug"`
	Name  *string `json:"name"`
	Found bool    `json:"found"`
}

// ListFilters echoes the filters a listing request was served with
type ListFilters struct {
	Search       *string `json:"search"`
	CategorySlug string  `json:"categorySlug"`
}

// CourseListResult is the payload of the category listing endpoint
type CourseListResult struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination Pagination       `json:"pagination"`
	Category   CategoryInfo     `json:"category"`
	Filters    ListFilters      `json:"filters"`
}

// CategoryListItem is one entry of the category index endpoint.
// ID is the 1-based position in the listing, not a database key: categories
// are derived from the free-text category column at query time.
type CategoryListItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CourseCount int    `json:"courseCount"`
}

// CategoryCount pairs a stored category name with its course count
type CategoryCount struct {
	Name  string
	Count int
}

// CreateCourseRequest carries the multipart form fields of a course create.
// Numeric fields arrive as form strings and are parsed by the service;
// Tags and WhatYoullLearn arrive as JSON-encoded arrays.
type CreateCourseRequest struct {
	Title           string
	Slug            string
	Description     string
	FullDescription string
	Category        string
	Tags            string
	Instructor      string
	Duration        string
	Students        string
	Rating          string
	OriginalPrice   string
	UdemyLink       string
	Prerequisites   string
	Level           string
	Language        string
	LastUpdated     string
	Certificate     string
	WhatYoullLearn  string
}

// UpdateCourseRequest carries a partial course update: nil means the field
// was absent from the form and keeps its stored value.
type UpdateCourseRequest struct {
	Title           *string
	Slug            *string
	Description     *string
	FullDescription *string
	Category        *string
	Tags            *string
	Instructor      *string
	Duration        *string
	Students        *string
	Rating          *string
	OriginalPrice   *string
	UdemyLink       *string
	Prerequisites   *string
	Level           *string
	Language        *string
	LastUpdated     *string
	Certificate     *string
	WhatYoullLearn  *string
}
