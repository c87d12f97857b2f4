package port

import (
	"context"

	"mygene/internal/core/domain"
)

type ProfileRepository interface {
	GetAll(ctx context.Context) ([]domain.Profile, error)
	GetByCode(ctx context.Context, code string) (domain.Profile, error)
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	UpdateByCode(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	DeleteByCode(ctx context.Context, code string) error
}

type ProfileService interface {
	ListView(ctx context.Context, searchTerm string, key domain.SortKey) ([]domain.Profile, error)
	GetByCode(ctx context.Context, code string) (domain.Profile, error)
	Create(ctx context.Context, profile domain.Profile, ownerID int) (domain.Profile, error)
	UpdateByCode(ctx context.Context, code string, ownerID int, partial domain.Profile) (domain.Profile, error)
	DeleteByCode(ctx context.Context, code string, ownerID int) error
}
