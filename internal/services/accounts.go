package services

import (
	"context"
	"errors"
	"strings"

	"schoolhub/internal/authz"
	"schoolhub/internal/models"
	"schoolhub/internal/repositories"
)

// SchoolKeyResolver is implemented by account stores that accept a school
// name where a school id is expected.
type SchoolKeyResolver interface {
	ResolveSchoolKey(ctx context.Context, idOrName string) (string, error)
}

// AccountDirectory routes every role to its repository.
type AccountDirectory struct {
	repos map[authz.Role]repositories.AccountRepository
}

func NewAccountDirectory(repos ...repositories.AccountRepository) *AccountDirectory {
	d := &AccountDirectory{repos: make(map[authz.Role]repositories.AccountRepository, len(repos))}
	for _, r := range repos {
		d.repos[r.Role()] = r
	}
	return d
}

func (d *AccountDirectory) For(role authz.Role) (repositories.AccountRepository, error) {
	r, ok := d.repos[role]
	if !ok {
		return nil, ErrInvalidRole
	}
	return r, nil
}

// ParseRole maps a client role string to a registered role.
func (d *AccountDirectory) ParseRole(s string) (authz.Role, repositories.AccountRepository, error) {
	role, err := authz.ParseRole(s)
	if err != nil {
		return "", nil, ErrInvalidRole
	}
	repo, err := d.For(role)
	if err != nil {
		return "", nil, err
	}
	return role, repo, nil
}

// Lookup validates the login key and finds the account. Validation errors
// (role, missing schoolId) are returned before any store is touched.
func (d *AccountDirectory) Lookup(ctx context.Context, roleStr, email, schoolID string) (repositories.AccountRepository, *models.Account, error) {
	role, repo, err := d.ParseRole(roleStr)
	if err != nil {
		return nil, nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	schoolID = strings.TrimSpace(schoolID)
	if role.RequiresSchool() && schoolID == "" {
		return nil, nil, ErrMissingSchoolID
	}

	resolved := false
	if r, ok := repo.(SchoolKeyResolver); ok {
		if schoolID, err = r.ResolveSchoolKey(ctx, schoolID); err != nil {
			return nil, nil, err
		}
		resolved = true
	}

	acc, err := repo.FindByLoginKey(ctx, email, schoolID)
	if errors.Is(err, repositories.ErrNotFound) {
		if resolved {
			return nil, nil, ErrTeacherNotFound
		}
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return repo, acc, nil
}
