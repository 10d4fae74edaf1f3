package models

import "time"

// OTPPurpose separates login codes from password-reset codes.
type OTPPurpose string

const (
	OTPPurposeLogin OTPPurpose = "login"
	OTPPurposeReset OTPPurpose = "reset"
)

// OTPState is the single live code for (purpose, role, user).
// Only the SHA-256 hash of the code is stored.
type OTPState struct {
	CodeHash   string    `json:"code_hash"`
	IssuanceID string    `json:"issuance_id"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IssuedOTP is what the issuer hands back for delivery. Code is plaintext.
type IssuedOTP struct {
	Code       string
	IssuanceID string
	ExpiresAt  time.Time
}
