package repositories

import (
	"context"
	"database/sql"
	"errors"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrSchoolMissing means the account points at a school that does not exist.
	ErrSchoolMissing = errors.New("referenced school not found")
)

// AccountRepository is implemented once per role. Services dispatch on
// Role() instead of switching on role strings.
type AccountRepository interface {
	Role() authz.Role
	// FindByLoginKey looks up by email, and by school business id for scoped roles.
	FindByLoginKey(ctx context.Context, email, schoolID string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	// ResolveSchool returns the school business id and name to put in the session.
	ResolveSchool(ctx context.Context, acc *models.Account) (schoolID, schoolName string, err error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// SchoolLookup resolves schools for the roles that reference one.
type SchoolLookup interface {
	GetBySchoolID(ctx context.Context, schoolID string) (*models.School, error)
	GetByNameFold(ctx context.Context, name string) (*models.School, error)
}

var (
	_ AccountRepository = (*AdminRepository)(nil)
	_ AccountRepository = (*SchoolRepository)(nil)
	_ AccountRepository = (*TeacherRepository)(nil)
	_ AccountRepository = (*StudentRepository)(nil)
	_ SchoolLookup      = (*SchoolRepository)(nil)
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// schoolName returns "" when the school is gone; only teachers treat that as fatal.
func schoolName(ctx context.Context, schools SchoolLookup, schoolID string) (string, error) {
	if schoolID == "" || schools == nil {
		return "", nil
	}
	s, err := schools.GetBySchoolID(ctx, schoolID)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

func updatePassword(ctx context.Context, db *sql.DB, table string, id int64, hash string) error {
	// table is one of the constants below, never user input
	res, err := db.ExecContext(ctx, `UPDATE `+table+` SET password_hash=$1 WHERE id=$2`, hash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const (
	tableAdmins   = "admins"
	tableSchools  = "schools"
	tableTeachers = "teachers"
	tableStudents = "students"
)
