package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"mygene/internal/adapter/database/postgres"
	"mygene/internal/core/domain"
	"mygene/internal/core/port"
)

var profileColumns = []string{
	"id", "code", "name", "image_url", "birth_date", "death_date",
	"family_details", "religion", "education", "occupation",
	"burial_info", "country", "submitted_by", "created_at", "updated_at",
}

type ProfileRepository struct {
	db *postgres.DB
}

func NewProfileRepository(db *postgres.DB) port.ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(rows pgx.Rows) (domain.Profile, error) {
	var p domain.Profile

	err := rows.Scan(
		&p.ID, &p.Code, &p.Name, &p.ImageURL, &p.BirthDate, &p.DeathDate,
		&p.FamilyDetails, &p.Religion, &p.Education, &p.Occupation,
		&p.BurialInfo, &p.Country, &p.SubmittedBy, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, err
}

func (pr *ProfileRepository) GetAll(ctx context.Context) ([]domain.Profile, error) {
	query, args, err := pr.db.QueryBuilder.Select(profileColumns...).
		From("profiles").
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := pr.db.Query(ctx, query, args...)

	if err != nil {
		slog.Error("Error fetching profiles", "error", err)
		return nil, err
	}

	defer rows.Close()

	profiles := []domain.Profile{}

	for rows.Next() {
		p, err := scanProfile(rows)

		if err != nil {
			return nil, err
		}

		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func (pr *ProfileRepository) GetByCode(ctx context.Context, code string) (domain.Profile, error) {
	query, args, err := pr.db.QueryBuilder.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"code": code}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Profile{}, err
	}

	rows, err := pr.db.Query(ctx, query, args...)

	if err != nil {
		return domain.Profile{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, err
		}

		return domain.Profile{}, domain.ErrProfileNotFound
	}

	return scanProfile(rows)
}

func (pr *ProfileRepository) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	query, args, err := pr.db.QueryBuilder.Insert("profiles").
		Columns("code", "name", "image_url", "birth_date", "death_date",
			"family_details", "religion", "education", "occupation",
			"burial_info", "country", "submitted_by", "created_at", "updated_at").
		Values(profile.Code, profile.Name, profile.ImageURL, profile.BirthDate, profile.DeathDate,
			profile.FamilyDetails, profile.Religion, profile.Education, profile.Occupation,
			profile.BurialInfo, profile.Country, profile.SubmittedBy, profile.CreatedAt, profile.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Profile{}, err
	}

	if _, err := pr.db.Exec(ctx, query, args...); err != nil {
		slog.Error("Insert failed", "error", err, "code", profile.Code)
		return domain.Profile{}, err
	}

	return pr.GetByCode(ctx, profile.Code)
}

func (pr *ProfileRepository) UpdateByCode(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	values := profile.ToMap()
	delete(values, "id")

	query, args, err := pr.db.QueryBuilder.Update("profiles").
		SetMap(values).
		Where(sq.Eq{"code": profile.Code}).
		ToSql()

	if err != nil {
		return domain.Profile{}, err
	}

	result, err := pr.db.Exec(ctx, query, args...)

	if err != nil {
		return domain.Profile{}, err
	}

	if result.RowsAffected() == 0 {
		return domain.Profile{}, domain.ErrProfileNotFound
	}

	return pr.GetByCode(ctx, profile.Code)
}

func (pr *ProfileRepository) DeleteByCode(ctx context.Context, code string) error {
	query, args, err := pr.db.QueryBuilder.Delete("profiles").
		Where(sq.Eq{"code": code}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := pr.db.Exec(ctx, query, args...)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}
