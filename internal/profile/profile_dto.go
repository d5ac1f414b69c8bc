package profile

// UpdateProfileRequest carries the editable profile fields. Empty fields keep
// their stored value.
type UpdateProfileRequest struct {
	PhoneNumber   string `json:"phoneNumber" binding:"omitempty,len=10,numeric"`
	Username      string `json:"username" binding:"omitempty,min=3,max=50"`
	Gender        string `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth   string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	MaritalStatus string `json:"maritalStatus" binding:"omitempty,oneof=single married divorced widowed"`
	ProfilePhoto  string `json:"profilePhoto" binding:"omitempty,max=2000000"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateProfileRequest) IsEmpty() bool {
	return r == UpdateProfileRequest{}
}

type ProfileResponse struct {
	UserID        string `json:"userId"`
	Username      string `json:"username,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Gender        string `json:"gender,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	ProfilePhoto  string `json:"profilePhoto,omitempty"`
	UpdatedAt     string `json:"updatedAt"`
}

type PreferencesRequest struct {
	Preferences map[string]any `json:"preferences" binding:"required"`
}

type PreferencesResponse struct {
	Preferences map[string]any `json:"preferences"`
}
