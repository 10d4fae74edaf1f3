package repositories

import (
	"context"
	"database/sql"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
)

type AdminRepository struct {
	DB      *sql.DB
	schools SchoolLookup
}

func NewAdminRepository(db *sql.DB, schools SchoolLookup) *AdminRepository {
	return &AdminRepository{DB: db, schools: schools}
}

func (r *AdminRepository) Role() authz.Role { return authz.RoleAdmin }

const adminColumns = `id, name, email, password_hash, school_id, COALESCE(picture,'')`

func (r *AdminRepository) scan(row *sql.Row) (*models.Account, error) {
	a := &models.Admin{}
	var schoolID sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &schoolID, &a.Picture); err != nil {
		return nil, notFound(err)
	}
	if schoolID.Valid && schoolID.String != "" {
		s := schoolID.String
		a.SchoolID = &s
	}
	return a.Account(), nil
}

// FindByLoginKey ignores schoolID: admins log in by email alone.
func (r *AdminRepository) FindByLoginKey(ctx context.Context, email, _ string) (*models.Account, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE lower(email) = lower($1)`
	return r.scan(r.DB.QueryRowContext(ctx, q, email))
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scan(r.DB.QueryRowContext(ctx, q, id))
}

func (r *AdminRepository) ResolveSchool(ctx context.Context, acc *models.Account) (string, string, error) {
	name, err := schoolName(ctx, r.schools, acc.SchoolID)
	if err != nil {
		return "", "", err
	}
	return acc.SchoolID, name, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return updatePassword(ctx, r.DB, tableAdmins, id, hash)
}
