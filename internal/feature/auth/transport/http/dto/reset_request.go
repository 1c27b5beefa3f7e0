package dto

import "time"

// SendOtpReq represents the request body for the /email/send_otp endpoint.
type SendOtpReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordReq represents the request body for the /user/password/:id
// endpoint. The otp must match the code delivered to the user's mailbox.
type ChangePasswordReq struct {
	Password string `json:"password" binding:"required"`
	Otp      string `json:"otp" binding:"required"`
}

// EligibilityRes reports whether an email address may request a reset code.
// OtpGeneratedAt is null until the first code has been generated.
type EligibilityRes struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	OtpGeneratedAt *time.Time `json:"otp_generation_timestamp"`
}
