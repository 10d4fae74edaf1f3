package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"schoolhub/internal/models"
	"schoolhub/internal/repositories"
	"schoolhub/internal/utils"
)

const defaultOTPTTL = 10 * time.Minute

type OTPService interface {
	// Issue replaces any live code for key with a fresh one.
	Issue(ctx context.Context, key repositories.OTPKey) (*models.IssuedOTP, error)
	// Verify reports whether code is the live, unexpired code for key and,
	// if so, clears it. issuanceID is optional; when set it must match too.
	Verify(ctx context.Context, key repositories.OTPKey, code, issuanceID string) (bool, error)
	TTL() time.Duration
}

type otpService struct {
	repo repositories.OTPRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewOTPService(repo repositories.OTPRepository, ttl time.Duration) OTPService {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &otpService{repo: repo, ttl: ttl, now: time.Now}
}

func (s *otpService) TTL() time.Duration { return s.ttl }

func (s *otpService) Issue(ctx context.Context, key repositories.OTPKey) (*models.IssuedOTP, error) {
	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}
	now := s.now()
	state := &models.OTPState{
		CodeHash:   utils.HashOTP(code),
		IssuanceID: uuid.NewString(),
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.repo.Save(ctx, key, state, s.ttl); err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}
	return &models.IssuedOTP{
		Code:       code,
		IssuanceID: state.IssuanceID,
		ExpiresAt:  state.ExpiresAt,
	}, nil
}

func (s *otpService) Verify(ctx context.Context, key repositories.OTPKey, code, issuanceID string) (bool, error) {
	if code == "" {
		return false, nil
	}
	now := s.now()
	ok, err := s.repo.Consume(ctx, key, func(st *models.OTPState) bool {
		if st.CodeHash == "" || st.ExpiresAt.IsZero() {
			return false
		}
		if st.ExpiresAt.Before(now) {
			return false
		}
		if issuanceID != "" && issuanceID != st.IssuanceID {
			return false
		}
		return utils.OTPMatches(code, st.CodeHash)
	})
	if err != nil {
		return false, fmt.Errorf("verify otp: %w", err)
	}
	return ok, nil
}
