package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/korelium/catalog-service/internal/models"
)

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sql.DB) *adminRepository {
	return &adminRepository{
		db: db,
	}
}

// Create inserts a new admin and sets its generated ID
func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (name, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	admin.ID = int(id)
	return nil
}

// GetByEmail retrieves an admin by email
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM admins
		WHERE email = ?
		LIMIT 1
	`

	var admin models.Admin
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return &admin, nil
}

// ExistsByEmail checks if an admin with the given email exists
func (r *adminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM admins WHERE email = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return exists, nil
}
