package models

import "errors"

// Sentinel errors shared between repositories, services and handlers
var (
	// ErrCourseNotFound is returned when no course matches the given slug or id
	ErrCourseNotFound = errors.New("course not found")
	// ErrSlugTaken is returned when creating a course with an already-used slug
	ErrSlugTaken = errors.New("course slug already exists")
	// ErrAdminNotFound is returned when no admin account matches the given email
	ErrAdminNotFound = errors.New("admin not found")
	// ErrEmailTaken is returned when creating an admin with an already-used email
	ErrEmailTaken = errors.New("admin email already exists")
	// ErrInvalidCredentials is returned when the password check fails
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRole is returned when an unknown admin role is requested
	ErrInvalidRole = errors.New("invalid admin role")
	// ErrValidation is wrapped by request validation failures
	ErrValidation = errors.New("validation failed")
)
