package repository

import (
	"context"
	"fmt"

	"commerce/storefront/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	UserByName(ctx context.Context, userName string) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UserByID(ctx context.Context, id domain.UserID) (domain.User, error)
	UpdateProfile(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, id domain.UserID, passHash []byte) error
}

type userRepository struct {
	db Querier
}

func NewUserRepository(db Querier) UserRepository {
	return &userRepository{
		db: db,
	}
}

var userColumns = []string{"id", "external_id", "user_name", "email", "first_name", "last_name", "phone", "pass_hash", "created_at"}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.UserName, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.PassHash, &u.CreatedAt)
	return u, err
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	query, args, err := qb().Insert("users").
		Columns("external_id", "user_name", "email", "first_name", "last_name", "phone", "pass_hash").
		Values(user.ExternalID, user.UserName, user.Email, user.FirstName, user.LastName, user.Phone, user.PassHash).
		Suffix("RETURNING id, external_id, user_name, email, first_name, last_name, phone, pass_hash, created_at").
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build user insert: %w", err)
	}
	logSQL("CreateUser", query, args)

	created, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create user %s: %w", user.UserName, conflict(err))
	}
	return created, nil
}

func (r *userRepository) userBy(ctx context.Context, op string, pred sq.Sqlizer) (domain.User, error) {
	query, args, err := qb().Select(userColumns...).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build user query: %w", err)
	}
	logSQL(op, query, args)

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.User{}, notFound(err)
	}
	return u, nil
}

func (r *userRepository) UserByName(ctx context.Context, userName string) (domain.User, error) {
	u, err := r.userBy(ctx, "UserByName", sq.Expr("lower(user_name) = lower(?)", userName))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user %s: %w", userName, err)
	}
	return u, nil
}

func (r *userRepository) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := r.userBy(ctx, "UserByEmail", sq.Expr("lower(email) = lower(?)", email))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	u, err := r.userBy(ctx, "UserByID", sq.Eq{"id": id})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user domain.User) error {
	query, args, err := qb().Update("users").
		Set("email", user.Email).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("phone", user.Phone).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile update: %w", err)
	}
	logSQL("UpdateProfile", query, args)

	return r.execOne(ctx, query, args, user.ID)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id domain.UserID, passHash []byte) error {
	query, args, err := qb().Update("users").
		Set("pass_hash", passHash).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build password update: %w", err)
	}
	logSQL("UpdatePassword", query, args)

	return r.execOne(ctx, query, args, id)
}

func (r *userRepository) execOne(ctx context.Context, query string, args []interface{}, id domain.UserID) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
