package repositories

import (
	"context"
	"database/sql"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
)

type SchoolRepository struct {
	DB *sql.DB
}

func NewSchoolRepository(db *sql.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Role() authz.Role { return authz.RoleSchool }

const schoolColumns = `id, school_id, name, email, password_hash, COALESCE(picture,'')`

func (r *SchoolRepository) scan(row *sql.Row) (*models.School, error) {
	s := &models.School{}
	if err := row.Scan(&s.ID, &s.SchoolID, &s.Name, &s.Email, &s.PasswordHash, &s.Picture); err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *SchoolRepository) GetBySchoolID(ctx context.Context, schoolID string) (*models.School, error) {
	const q = `SELECT ` + schoolColumns + ` FROM schools WHERE school_id = $1`
	return r.scan(r.DB.QueryRowContext(ctx, q, schoolID))
}

// GetByNameFold matches the school name case-insensitively.
func (r *SchoolRepository) GetByNameFold(ctx context.Context, name string) (*models.School, error) {
	const q = `SELECT ` + schoolColumns + ` FROM schools WHERE lower(name) = lower($1) ORDER BY id LIMIT 1`
	return r.scan(r.DB.QueryRowContext(ctx, q, name))
}

func (r *SchoolRepository) FindByLoginKey(ctx context.Context, email, schoolID string) (*models.Account, error) {
	const q = `SELECT ` + schoolColumns + ` FROM schools WHERE lower(email) = lower($1) AND school_id = $2`
	s, err := r.scan(r.DB.QueryRowContext(ctx, q, email, schoolID))
	if err != nil {
		return nil, err
	}
	return s.Account(), nil
}

func (r *SchoolRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	const q = `SELECT ` + schoolColumns + ` FROM schools WHERE id = $1`
	s, err := r.scan(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return s.Account(), nil
}

// ResolveSchool: a school session carries its own business id, not its row id.
func (r *SchoolRepository) ResolveSchool(_ context.Context, acc *models.Account) (string, string, error) {
	return acc.SchoolID, acc.Name, nil
}

func (r *SchoolRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return updatePassword(ctx, r.DB, tableSchools, id, hash)
}
