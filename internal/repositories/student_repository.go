package repositories

import (
	"context"
	"database/sql"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
)

type StudentRepository struct {
	DB      *sql.DB
	schools SchoolLookup
}

func NewStudentRepository(db *sql.DB, schools SchoolLookup) *StudentRepository {
	return &StudentRepository{DB: db, schools: schools}
}

func (r *StudentRepository) Role() authz.Role { return authz.RoleStudent }

const studentColumns = `id, name, email, password_hash, school_id, COALESCE(picture,'')`

func (r *StudentRepository) scan(row *sql.Row) (*models.Account, error) {
	s := &models.Student{}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.SchoolID, &s.Picture); err != nil {
		return nil, notFound(err)
	}
	return s.Account(), nil
}

func (r *StudentRepository) FindByLoginKey(ctx context.Context, email, schoolID string) (*models.Account, error) {
	const q = `SELECT ` + studentColumns + ` FROM students WHERE lower(email) = lower($1) AND school_id = $2`
	return r.scan(r.DB.QueryRowContext(ctx, q, email, schoolID))
}

func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	const q = `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return r.scan(r.DB.QueryRowContext(ctx, q, id))
}

func (r *StudentRepository) ResolveSchool(ctx context.Context, acc *models.Account) (string, string, error) {
	name, err := schoolName(ctx, r.schools, acc.SchoolID)
	if err != nil {
		return "", "", err
	}
	return acc.SchoolID, name, nil
}

func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return updatePassword(ctx, r.DB, tableStudents, id, hash)
}
