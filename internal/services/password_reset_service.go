package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"schoolhub/internal/models"
	"schoolhub/internal/repositories"
)

const (
	minPasswordLen = 6
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

type passwordResetService struct {
	accounts *AccountDirectory
	otps     OTPService
	emails   EmailService
	auth     AuthService
	log      *zap.SugaredLogger
}

func NewPasswordResetService(accounts *AccountDirectory, otps OTPService, emails EmailService, auth AuthService, log *zap.SugaredLogger) PasswordResetService {
	return &passwordResetService{
		accounts: accounts,
		otps:     otps,
		emails:   emails,
		auth:     auth,
		log:      log,
	}
}

// RequestReset emails a reset code. Unknown accounts succeed silently so the
// endpoint cannot be used to probe for emails.
func (s *passwordResetService) RequestReset(ctx context.Context, req models.ForgotPasswordRequest) error {
	_, acc, err := s.accounts.Lookup(ctx, req.Role, req.Email, req.SchoolID)
	if errors.Is(err, ErrUserNotFound) {
		s.log.Infow("[password-reset] request for unknown account", "role", req.Role, "email", req.Email)
		return nil
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(acc.Email) == "" {
		return ErrEmailMissing
	}

	issued, err := s.otps.Issue(ctx, repositories.OTPKey{
		Purpose: models.OTPPurposeReset,
		Role:    acc.Role,
		UserID:  acc.ID,
	})
	if err != nil {
		return err
	}
	if err := s.emails.SendPasswordResetOTP(acc.Email, acc.Name, issued.Code, s.otps.TTL()); err != nil {
		s.log.Errorw("[password-reset] email failed", "role", acc.Role, "user_id", acc.ID, "err", err)
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	s.log.Infow("[password-reset] code sent", "role", acc.Role, "user_id", acc.ID)
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if len(strings.TrimSpace(req.NewPassword)) < minPasswordLen {
		return ErrWeakPassword
	}
	if len(req.NewPassword) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	repo, acc, err := s.accounts.Lookup(ctx, req.Role, req.Email, req.SchoolID)
	if errors.Is(err, ErrUserNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}

	ok, err := s.otps.Verify(ctx, repositories.OTPKey{
		Purpose: models.OTPPurposeReset,
		Role:    acc.Role,
		UserID:  acc.ID,
	}, req.OTP, "")
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := repo.UpdatePassword(ctx, acc.ID, hash); err != nil {
		return fmt.Errorf("update password for %s %d: %w", acc.Role, acc.ID, err)
	}
	s.log.Infow("[password-reset] password updated", "role", acc.Role, "user_id", acc.ID)
	return nil
}
