package models

// Profile is a user record as served by the profile service.
type Profile struct {
	Sub    string        `json:"sub"`
	Public PublicProfile `json:"public"`
}

// PublicProfile is the publicly visible part of a user profile.
type PublicProfile struct {
	Fullname string `json:"fullname,omitempty"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio,omitempty"`
}
