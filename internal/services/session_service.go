package services

import (
	"context"
	"errors"
	"fmt"

	"schoolhub/internal/models"
	"schoolhub/internal/repositories"
	"schoolhub/internal/utils"
)

type SessionService interface {
	Issue(ctx context.Context, repo repositories.AccountRepository, acc *models.Account) (*models.SessionResponse, error)
}

type sessionService struct {
	tokens *utils.TokenManager
}

func NewSessionService(tokens *utils.TokenManager) SessionService {
	return &sessionService{tokens: tokens}
}

func (s *sessionService) Issue(ctx context.Context, repo repositories.AccountRepository, acc *models.Account) (*models.SessionResponse, error) {
	schoolID, schoolName, err := repo.ResolveSchool(ctx, acc)
	if errors.Is(err, repositories.ErrSchoolMissing) {
		return nil, ErrSchoolNotAssociated
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve school for %s %d: %w", acc.Role, acc.ID, err)
	}

	token, _, err := s.tokens.Sign(utils.SessionClaims{
		UserID:     acc.ID,
		Role:       acc.Role.Claim(),
		Email:      acc.Email,
		Name:       acc.Name,
		SchoolID:   schoolID,
		SchoolName: schoolName,
		Picture:    acc.Picture,
	})
	if err != nil {
		return nil, err
	}

	return &models.SessionResponse{
		Success:  true,
		Token:    token,
		SchoolID: schoolID,
		Role:     acc.Role.Claim(),
	}, nil
}
