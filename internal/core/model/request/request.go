package request

import "time"

type SignUpRequest struct {
	Email             string `json:"email,omitempty" validate:"required,email,max=255"`
	Password          string `json:"password,omitempty" validate:"required,min=6,max=100"`
	Name              string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CountryPreference string `json:"country_preference,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type ProfileRequest struct {
	Name          string    `json:"name,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	BirthDate     time.Time `json:"birth_date,omitempty"`
	DeathDate     time.Time `json:"death_date,omitempty"`
	FamilyDetails string    `json:"family_details,omitempty"`
	Religion      string    `json:"religion,omitempty"`
	Education     string    `json:"education,omitempty"`
	Occupation    string    `json:"occupation,omitempty"`
	BurialInfo    string    `json:"burial_info,omitempty"`
	Country       string    `json:"country,omitempty"`
}

type QuestionRequest struct {
	Question string `json:"question,omitempty" validate:"required,min=5,max=1000"`
}
