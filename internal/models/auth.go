package models

type LoginRequest struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	SchoolID string `json:"schoolId"`
}

type LoginResponse struct {
	Success    bool   `json:"success"`
	OTPSent    bool   `json:"otpSent"`
	UserID     int64  `json:"userId"`
	Role       string `json:"role"`
	IssuanceID string `json:"otpId,omitempty"`
}

type VerifyOTPRequest struct {
	UserID     int64  `json:"userId" binding:"required"`
	Role       string `json:"role" binding:"required"`
	OTP        string `json:"otp" binding:"required"`
	IssuanceID string `json:"otpId"`
}

type SessionResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	SchoolID string `json:"schoolId"`
	Role     string `json:"role"`
}

type ForgotPasswordRequest struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required"`
	SchoolID string `json:"schoolId"`
}

type ResetPasswordRequest struct {
	Role        string `json:"role" binding:"required"`
	Email       string `json:"email" binding:"required"`
	SchoolID    string `json:"schoolId"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
