package port

import (
	"context"

	"mygene/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}

type UserService interface {
	GetUserByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}
