package response

import "time"

type UserResponse struct {
	UUID              string    `json:"uuid,omitempty"`
	Name              string    `json:"name,omitempty"`
	Email             string    `json:"email,omitempty"`
	CountryPreference string    `json:"country_preference,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

type ProfileResponse struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ImageURL      string    `json:"image_url,omitempty"`
	BirthDate     time.Time `json:"birth_date"`
	DeathDate     time.Time `json:"death_date"`
	FamilyDetails string    `json:"family_details"`
	Religion      string    `json:"religion,omitempty"`
	Education     string    `json:"education,omitempty"`
	Occupation    string    `json:"occupation,omitempty"`
	BurialInfo    string    `json:"burial_info"`
	Country       string    `json:"country,omitempty"`
	SubmittedBy   int       `json:"submitted_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProfileListResponse struct {
	Size     int               `json:"size"`
	Search   string            `json:"search,omitempty"`
	Sort     string            `json:"sort"`
	Profiles []ProfileResponse `json:"profiles"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
