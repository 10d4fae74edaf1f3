package models

import "schoolhub/internal/authz"

// Account is the role-independent view of a credential record.
type Account struct {
	ID           int64      `json:"id"`
	Role         authz.Role `json:"role"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	SchoolID     string     `json:"school_id,omitempty"` // business identifier, e.g. "SCH1"
	Picture      string     `json:"picture,omitempty"`
}

type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	SchoolID     *string // admins may be global
	Picture      string
}

func (a *Admin) Account() *Account {
	acc := &Account{
		ID:           a.ID,
		Role:         authz.RoleAdmin,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Picture:      a.Picture,
	}
	if a.SchoolID != nil {
		acc.SchoolID = *a.SchoolID
	}
	return acc
}

// School logs in with its own business identifier (SchoolID), not its row id.
type School struct {
	ID           int64
	SchoolID     string
	Name         string
	Email        string
	PasswordHash string
	Picture      string
}

func (s *School) Account() *Account {
	return &Account{
		ID:           s.ID,
		Role:         authz.RoleSchool,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		SchoolID:     s.SchoolID,
		Picture:      s.Picture,
	}
}

type Teacher struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	SchoolID     string
	Picture      string
}

func (t *Teacher) Account() *Account {
	return &Account{
		ID:           t.ID,
		Role:         authz.RoleTeacher,
		Name:         t.Name,
		Email:        t.Email,
		PasswordHash: t.PasswordHash,
		SchoolID:     t.SchoolID,
		Picture:      t.Picture,
	}
}

type Student struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	SchoolID     string
	Picture      string
}

func (s *Student) Account() *Account {
	return &Account{
		ID:           s.ID,
		Role:         authz.RoleStudent,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		SchoolID:     s.SchoolID,
		Picture:      s.Picture,
	}
}
