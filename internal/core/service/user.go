package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mygene/internal/core/domain"
	"mygene/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	now := time.Now()

	if user.Role == "" {
		user.Role = domain.Member
	}

	newData := domain.User{
		UUID:              uuid.New(),
		Name:              user.Name,
		Email:             user.Email,
		EncryptedPassword: user.EncryptedPassword,
		CountryPreference: user.CountryPreference,
		Role:              user.Role,
		CreatedAt:         now,
		UpdatedAt:         now,
		DeletedAt:         nil,
	}

	user, err := us.repo.Create(ctx, newData)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (us *UserService) GetUserByUUID(ctx context.Context, uid string) (domain.User, error) {
	return us.repo.GetByUUID(ctx, uid)
}

func (us *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return us.repo.GetByEmail(ctx, email)
}

func (us *UserService) DeleteByUUID(ctx context.Context, uid string) error {
	return us.repo.DeleteByUUID(ctx, uid)
}
