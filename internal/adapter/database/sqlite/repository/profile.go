package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"mygene/internal/adapter/database/sqlite"
	"mygene/internal/core/domain"
	"mygene/internal/core/port"
	tel "mygene/internal/core/telemetry"
)

var profileColumns = []string{
	"id", "code", "name", "image_url", "birth_date", "death_date",
	"family_details", "religion", "education", "occupation",
	"burial_info", "country", "submitted_by", "created_at", "updated_at",
}

type ProfileRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewProfileRepository(db *sqlite.DB, telemetry port.Telemetry) port.ProfileRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ProfileRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func scanProfile(rows *sql.Rows) (domain.Profile, error) {
	var p domain.Profile

	err := rows.Scan(
		&p.ID, &p.Code, &p.Name, &p.ImageURL, &p.BirthDate, &p.DeathDate,
		&p.FamilyDetails, &p.Religion, &p.Education, &p.Occupation,
		&p.BurialInfo, &p.Country, &p.SubmittedBy, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, err
}

func (pr *ProfileRepository) GetAll(ctx context.Context) ([]domain.Profile, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "GetAll", "profile", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "profiles",
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := pr.db.QueryBuilder.Select(profileColumns...).
		From("profiles").
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return nil, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "GetAll", "profile", query, args)

	rows, err := pr.db.QueryContext(ctx, query, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "GetAll", "profile", time.Since(startTime), err)
		return nil, err
	}

	defer rows.Close()

	profiles := []domain.Profile{}

	for rows.Next() {
		p, err := scanProfile(rows)

		if err != nil {
			span.RecordError(err)
			span.SetStatus("error", err.Error())
			return nil, err
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(profiles)})
	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "GetAll", "profile", time.Since(startTime), nil)

	return profiles, nil
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

	rows, err := pr.db.QueryContext(ctx, query, args...)

	if err != nil {
		return domain.Profile{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		return domain.Profile{}, domain.ErrProfileNotFound
	}

	profile, err := scanProfile(rows)

	if err != nil {
		slog.Error("Error getting profile by code", "error", err)
		return domain.Profile{}, err
	}

	return profile, nil
}

func (pr *ProfileRepository) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Create", "profile", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "profiles",
		"db.operation": "INSERT",
		"profile.code": profile.Code,
		"user.id":      profile.SubmittedBy,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := pr.db.QueryBuilder.Insert("profiles").
		Columns("code", "name", "image_url", "birth_date", "death_date",
			"family_details", "religion", "education", "occupation",
			"burial_info", "country", "submitted_by", "created_at", "updated_at").
		Values(profile.Code, profile.Name, profile.ImageURL, profile.BirthDate, profile.DeathDate,
			profile.FamilyDetails, profile.Religion, profile.Education, profile.Occupation,
			profile.BurialInfo, profile.Country, profile.SubmittedBy, profile.CreatedAt, profile.UpdatedAt).
		ToSql()

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		slog.Error("Query build failed", "error", err)
		return domain.Profile{}, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "Create", "profile", query, args)

	if _, err := pr.db.ExecContext(ctx, query, args...); err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Create", "profile", time.Since(startTime), err)
		slog.Error("Insert failed", "error", err, "code", profile.Code)
		return domain.Profile{}, err
	}

	saved, err := pr.GetByCode(ctx, profile.Code)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		slog.Error("GetByCode failed after insert", "error", err, "code", profile.Code)
		return domain.Profile{}, err
	}

	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "Create", "profile", time.Since(startTime), nil)

	return saved, nil
}

func (pr *ProfileRepository) UpdateByCode(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "UpdateByCode", "profile", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "profiles",
		"db.operation": "UPDATE",
		"profile.code": profile.Code,
	})
	defer span.End()

	startTime := time.Now()

	values := profile.ToMap()
	delete(values, "id")

	query, args, err := pr.db.QueryBuilder.Update("profiles").
		SetMap(values).
		Where(sq.Eq{"code": profile.Code}).
		ToSql()

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return domain.Profile{}, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "UpdateByCode", "profile", query, args)

	result, err := pr.db.ExecContext(ctx, query, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "UpdateByCode", "profile", time.Since(startTime), err)
		return domain.Profile{}, err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		span.SetStatus("error", domain.ErrProfileNotFound.Error())
		return domain.Profile{}, domain.ErrProfileNotFound
	}

	updated, err := pr.GetByCode(ctx, profile.Code)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return domain.Profile{}, err
	}

	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "UpdateByCode", "profile", time.Since(startTime), nil)

	return updated, nil
}

func (pr *ProfileRepository) DeleteByCode(ctx context.Context, code string) error {
	query, args, err := pr.db.QueryBuilder.Delete("profiles").
		Where(sq.Eq{"code": code}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := pr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}
