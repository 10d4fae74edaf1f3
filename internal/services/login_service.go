package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"schoolhub/internal/models"
	"schoolhub/internal/repositories"
)

type LoginService interface {
	// Login checks the password and emails a fresh login code.
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	// VerifyOTP consumes the login code and issues a session token.
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.SessionResponse, error)
}

type loginService struct {
	accounts *AccountDirectory
	auth     AuthService
	otps     OTPService
	emails   EmailService
	sessions SessionService
	log      *zap.SugaredLogger
}

func NewLoginService(
	accounts *AccountDirectory,
	auth AuthService,
	otps OTPService,
	emails EmailService,
	sessions SessionService,
	log *zap.SugaredLogger,
) LoginService {
	return &loginService{
		accounts: accounts,
		auth:     auth,
		otps:     otps,
		emails:   emails,
		sessions: sessions,
		log:      log,
	}
}

func (s *loginService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	start := time.Now()
	email := strings.TrimSpace(req.Email)
	s.log.Infow("[auth][login] attempt", "role", req.Role, "email", email, "school_id", req.SchoolID)

	_, acc, err := s.accounts.Lookup(ctx, req.Role, email, req.SchoolID)
	if err != nil {
		s.log.Infow("[auth][login] lookup failed", "role", req.Role, "email", email, "err", err)
		return nil, err
	}

	if err := s.auth.CheckPassword(acc.PasswordHash, req.Password); err != nil {
		s.log.Infow("[auth][login] password mismatch", "role", acc.Role, "user_id", acc.ID)
		return nil, err
	}

	if strings.TrimSpace(acc.Email) == "" {
		s.log.Errorw("[auth][login] account has no email", "role", acc.Role, "user_id", acc.ID)
		return nil, ErrEmailMissing
	}

	issued, err := s.otps.Issue(ctx, repositories.OTPKey{
		Purpose: models.OTPPurposeLogin,
		Role:    acc.Role,
		UserID:  acc.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.emails.SendLoginOTP(acc.Email, acc.Name, issued.Code, s.otps.TTL()); err != nil {
		s.log.Errorw("[auth][login] otp email failed", "role", acc.Role, "user_id", acc.ID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	s.log.Infow("[auth][login] otp sent",
		"role", acc.Role, "user_id", acc.ID,
		"expires_at", issued.ExpiresAt.Format(time.RFC3339),
		"took", time.Since(start).Truncate(time.Millisecond))

	return &models.LoginResponse{
		Success:    true,
		OTPSent:    true,
		UserID:     acc.ID,
		Role:       acc.Role.String(),
		IssuanceID: issued.IssuanceID,
	}, nil
}

func (s *loginService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.SessionResponse, error) {
	role, repo, err := s.accounts.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	// an unknown user is reported exactly like a wrong code
	acc, err := repo.FindByID(ctx, req.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		s.log.Infow("[auth][verify] unknown user", "role", role, "user_id", req.UserID)
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.otps.Verify(ctx, repositories.OTPKey{
		Purpose: models.OTPPurposeLogin,
		Role:    role,
		UserID:  acc.ID,
	}, req.OTP, req.IssuanceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Infow("[auth][verify] otp rejected", "role", role, "user_id", acc.ID)
		return nil, ErrInvalidOTP
	}

	resp, err := s.sessions.Issue(ctx, repo, acc)
	if err != nil {
		s.log.Warnw("[auth][verify] session not issued", "role", role, "user_id", acc.ID, "err", err)
		return nil, err
	}
	s.log.Infow("[auth][verify] session issued", "role", role, "user_id", acc.ID, "school_id", resp.SchoolID)
	return resp, nil
}
