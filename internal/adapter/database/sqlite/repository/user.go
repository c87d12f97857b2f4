package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"mygene/internal/adapter/database/sqlite"
	"mygene/internal/core/domain"
	"mygene/internal/core/port"
	tel "mygene/internal/core/telemetry"

	"github.com/google/uuid"
)

var userColumns = []string{
	"id", "uuid", "name", "email", "encrypted_password",
	"country_preference", "role", "created_at", "updated_at", "deleted_at",
}

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func scanUser(rows *sql.Rows) (domain.User, error) {
	var u domain.User
	var uid string
	var deletedAt sql.NullTime

	err := rows.Scan(
		&u.ID, &uid, &u.Name, &u.Email, &u.EncryptedPassword,
		&u.CountryPreference, &u.Role, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	if parsed, err := uuid.Parse(uid); err == nil {
		u.UUID = parsed
	}

	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}

	return u, nil
}

func (ur *UserRepository) getOne(ctx context.Context, pred interface{}) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(pred).
		Where("deleted_at IS NULL").
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	rows, err := ur.db.QueryContext(ctx, query, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		return domain.User{}, sql.ErrNoRows
	}

	return scanUser(rows)
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	uid := user.UUID.String()

	query, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "name", "email", "encrypted_password",
			"country_preference", "role", "created_at", "updated_at").
		Values(uid, user.Name, user.Email, user.EncryptedPassword,
			user.CountryPreference, string(user.Role), user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, uid)
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
	query, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with uuid %s not found", uid)
	}

	return nil
}
