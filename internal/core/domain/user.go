package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	Admin  UserRole = "admin"
	Member UserRole = "member"
)

type User struct {
	ID                int
	UUID              uuid.UUID
	Name              string `validate:"omitempty,min=2,max=100"`
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `validate:"required"`
	CountryPreference string `validate:"omitempty,max=100"`
	Role              UserRole
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
