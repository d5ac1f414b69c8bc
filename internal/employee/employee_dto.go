package employee

import "github.com/RNiyam/attendance-system/internal/profile"

type RegisterEmployeeRequest struct {
	EmpCode string `json:"empCode" binding:"required,max=32"`
	Name    string `json:"name" binding:"required,max=255"`
	Image   string `json:"image" binding:"required"`
}

type ReplaceFaceRequest struct {
	Image string `json:"image" binding:"required"`
}

type OnboardRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Image string `json:"image" binding:"required"`
	profile.UpdateProfileRequest
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	EmpCode    string `json:"empCode"`
	Name       string `json:"name"`
	UserID     string `json:"userId,omitempty"`
	HasFace    bool   `json:"hasFace"`
	CreatedAt  string `json:"createdAt"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type OnboardingStatusResponse struct {
	Completed bool   `json:"completed"`
	EmpCode   string `json:"empCode,omitempty"`
	Name      string `json:"name,omitempty"`
}
