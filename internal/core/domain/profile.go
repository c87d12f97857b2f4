package domain

import (
	"errors"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNotOwner        = errors.New("profile does not belong to this user")
)

type Profile struct {
	ID            int
	Code          string    `validate:"omitempty,len=32,hexadecimal"`
	Name          string    `validate:"required,min=2,max=255"`
	ImageURL      string    `validate:"omitempty"`
	BirthDate     time.Time `validate:"required,lte"`
	DeathDate     time.Time `validate:"required,lte,gtefield=BirthDate"`
	FamilyDetails string    `validate:"required,min=10"`
	Religion      string
	Education     string
	Occupation    string
	BurialInfo    string `validate:"required,min=10"`
	Country       string
	SubmittedBy   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Profile) BelongsToUser(userID int) bool {
	return p.SubmittedBy == userID
}

// Merge applies the non-zero fields of other onto p. Code and SubmittedBy are
// never merged; they are fixed at creation.
func (p *Profile) Merge(other Profile) {
	if other.Name != "" {
		p.Name = other.Name
	}

	if other.ImageURL != "" {
		p.ImageURL = other.ImageURL
	}

	if !other.BirthDate.IsZero() {
		p.BirthDate = other.BirthDate
	}

	if !other.DeathDate.IsZero() {
		p.DeathDate = other.DeathDate
	}

	if other.FamilyDetails != "" {
		p.FamilyDetails = other.FamilyDetails
	}

	if other.Religion != "" {
		p.Religion = other.Religion
	}

	if other.Education != "" {
		p.Education = other.Education
	}

	if other.Occupation != "" {
		p.Occupation = other.Occupation
	}

	if other.BurialInfo != "" {
		p.BurialInfo = other.BurialInfo
	}

	if other.Country != "" {
		p.Country = other.Country
	}
}

func (p *Profile) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":             p.ID,
		"code":           p.Code,
		"name":           p.Name,
		"image_url":      p.ImageURL,
		"birth_date":     p.BirthDate,
		"death_date":     p.DeathDate,
		"family_details": p.FamilyDetails,
		"religion":       p.Religion,
		"education":      p.Education,
		"occupation":     p.Occupation,
		"burial_info":    p.BurialInfo,
		"country":        p.Country,
		"submitted_by":   p.SubmittedBy,
		"created_at":     p.CreatedAt,
		"updated_at":     p.UpdatedAt,
	}
}
