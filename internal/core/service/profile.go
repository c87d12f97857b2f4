package service

import (
	"context"
	"log/slog"
	"time"

	"mygene/internal/core/domain"
	"mygene/internal/core/port"
	tel "mygene/internal/core/telemetry"
	"mygene/internal/core/util"
)

type ProfileService struct {
	repo      port.ProfileRepository
	telemetry port.Telemetry
}

func NewProfileService(repo port.ProfileRepository, telemetry port.Telemetry) *ProfileService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ProfileService{
		repo:      repo,
		telemetry: telemetry,
	}
}

// ListView returns every profile filtered by searchTerm and ordered by key.
// All profiles are readable by any authenticated caller.
func (ps *ProfileService) ListView(ctx context.Context, searchTerm string, key domain.SortKey) ([]domain.Profile, error) {
	profiles, err := ps.repo.GetAll(ctx)

	if err != nil {
		slog.Error("Profile#ListView", "get_all", err)
		return nil, err
	}

	return domain.ApplyView(profiles, searchTerm, key), nil
}

func (ps *ProfileService) GetByCode(ctx context.Context, code string) (domain.Profile, error) {
	return ps.repo.GetByCode(ctx, code)
}

// Create assigns the profile code and owner, then persists. The ownerID always
// comes from the authenticated caller, never from the request body.
func (ps *ProfileService) Create(ctx context.Context, profile domain.Profile, ownerID int) (domain.Profile, error) {
	now := time.Now()

	newProfile := profile
	newProfile.Code = util.GenerateProfileCode()
	newProfile.SubmittedBy = ownerID
	newProfile.CreatedAt = now
	newProfile.UpdatedAt = now

	saved, err := ps.repo.Create(ctx, newProfile)

	if err != nil {
		slog.Error("Profile#Create", "error", err, "name", newProfile.Name)
		return domain.Profile{}, err
	}

	ps.telemetry.RecordBusinessEvent(ctx, "created", "profile", saved.Code, ownerID, map[string]interface{}{
		"name":    saved.Name,
		"country": saved.Country,
	})

	return saved, nil
}

func (ps *ProfileService) UpdateByCode(ctx context.Context, code string, ownerID int, partial domain.Profile) (domain.Profile, error) {
	stored, err := ps.repo.GetByCode(ctx, code)

	if err != nil {
		return domain.Profile{}, err
	}

	if !stored.BelongsToUser(ownerID) {
		return domain.Profile{}, domain.ErrNotOwner
	}

	stored.Merge(partial)
	stored.UpdatedAt = time.Now()

	updated, err := ps.repo.UpdateByCode(ctx, stored)

	if err != nil {
		slog.Error("Profile#UpdateByCode", "error", err, "code", code)
		return domain.Profile{}, err
	}

	ps.telemetry.RecordBusinessEvent(ctx, "updated", "profile", updated.Code, ownerID, map[string]interface{}{
		"name": updated.Name,
	})

	return updated, nil
}

func (ps *ProfileService) DeleteByCode(ctx context.Context, code string, ownerID int) error {
	stored, err := ps.repo.GetByCode(ctx, code)

	if err != nil {
		return err
	}

	if !stored.BelongsToUser(ownerID) {
		return domain.ErrNotOwner
	}

	if err := ps.repo.DeleteByCode(ctx, code); err != nil {
		slog.Error("Profile#DeleteByCode", "error", err, "code", code)
		return err
	}

	ps.telemetry.RecordBusinessEvent(ctx, "deleted", "profile", code, ownerID, nil)

	return nil
}
