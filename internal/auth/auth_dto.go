package auth

type SignupRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	Password     string `json:"password" binding:"omitempty,min=6,max=72"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,len=10,numeric"`
}

type LoginRequest struct {
	Email        string `json:"email" binding:"omitempty,email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,len=10,numeric"`
}

type AuthResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	MobileNumber     string `json:"mobileNumber,omitempty"`
	Role             string `json:"role"`
	IsMobileVerified bool   `json:"isMobileVerified"`
}

// Tokens is an access/refresh pair.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
