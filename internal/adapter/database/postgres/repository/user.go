package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"mygene/internal/adapter/database/postgres"
	"mygene/internal/core/domain"
	"mygene/internal/core/port"
)

var userColumns = []string{
	"id", "uuid", "name", "email", "encrypted_password",
	"country_preference", "role", "created_at", "updated_at", "deleted_at",
}

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(rows pgx.Rows) (domain.User, error) {
	var u domain.User
	var deletedAt *time.Time

	err := rows.Scan(
		&u.ID, &u.UUID, &u.Name, &u.Email, &u.EncryptedPassword,
		&u.CountryPreference, &u.Role, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	u.DeletedAt = deletedAt

	return u, nil
}

func (ur *UserRepository) getOne(ctx context.Context, pred interface{}) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(pred).
		Where(sq.Eq{"deleted_at": nil}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	rows, err := ur.db.Query(ctx, query, args...)

	if err != nil {
		return domain.User{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}

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

	if _, err := ur.db.Exec(ctx, query, args...); err != nil {
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

	result, err := ur.db.Exec(ctx, query, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with uuid %s not found", uid)
	}

	return nil
}
