package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
)

type TeacherRepository struct {
	DB      *sql.DB
	schools SchoolLookup
}

func NewTeacherRepository(db *sql.DB, schools SchoolLookup) *TeacherRepository {
	return &TeacherRepository{DB: db, schools: schools}
}

func (r *TeacherRepository) Role() authz.Role { return authz.RoleTeacher }

const teacherColumns = `id, name, email, password_hash, school_id, COALESCE(picture,'')`

func (r *TeacherRepository) scan(row *sql.Row) (*models.Account, error) {
	t := &models.Teacher{}
	if err := row.Scan(&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.SchoolID, &t.Picture); err != nil {
		return nil, notFound(err)
	}
	return t.Account(), nil
}

// ResolveSchoolKey accepts either a school business id or a school name.
// An exact id match wins; otherwise the name is matched case-insensitively.
// When neither matches the input is returned unchanged.
func (r *TeacherRepository) ResolveSchoolKey(ctx context.Context, idOrName string) (string, error) {
	key := strings.TrimSpace(idOrName)
	if key == "" || r.schools == nil {
		return key, nil
	}
	s, err := r.schools.GetBySchoolID(ctx, key)
	if err == nil {
		return s.SchoolID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	s, err = r.schools.GetByNameFold(ctx, key)
	if err == nil {
		return s.SchoolID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	return key, nil
}

func (r *TeacherRepository) FindByLoginKey(ctx context.Context, email, schoolID string) (*models.Account, error) {
	const q = `SELECT ` + teacherColumns + ` FROM teachers WHERE lower(email) = lower($1) AND school_id = $2`
	return r.scan(r.DB.QueryRowContext(ctx, q, email, schoolID))
}

func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	const q = `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`
	return r.scan(r.DB.QueryRowContext(ctx, q, id))
}

// ResolveSchool re-reads the teacher joined with its school. A teacher whose
// school row is gone yields ErrSchoolMissing.
func (r *TeacherRepository) ResolveSchool(ctx context.Context, acc *models.Account) (string, string, error) {
	const q = `
		SELECT s.school_id, s.name
		FROM teachers t
		LEFT JOIN schools s ON s.school_id = t.school_id
		WHERE t.id = $1
	`
	var (
		schoolID sql.NullString
		name     sql.NullString
	)
	if err := r.DB.QueryRowContext(ctx, q, acc.ID).Scan(&schoolID, &name); err != nil {
		return "", "", notFound(err)
	}
	if !schoolID.Valid || schoolID.String == "" {
		return "", "", ErrSchoolMissing
	}
	return schoolID.String, name.String, nil
}

func (r *TeacherRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return updatePassword(ctx, r.DB, tableTeachers, id, hash)
}
