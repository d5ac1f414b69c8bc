package otp

import "time"

type SendRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required"`
}

type VerifyRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required"`
	OTP          string `json:"otp" binding:"required"`
}

type SendResponse struct {
	MobileNumber string    `json:"mobileNumber"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type VerifyResponse struct {
	MobileNumber string    `json:"mobileNumber"`
	VerifiedAt   time.Time `json:"verifiedAt"`
}
