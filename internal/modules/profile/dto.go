package profile

// UpdateProfileRequest carries a partial profile update. Email is immutable
// through this endpoint.
type UpdateProfileRequest struct {
	FirstName      string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName       string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	PhoneNumber    string `json:"phone_number,omitempty" validate:"omitempty,e164"`
	DateOfBirth    string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}
