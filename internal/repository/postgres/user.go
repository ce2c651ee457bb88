package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, password, email`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4)`

	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.Email)
		return err
	})
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			return model.User{}, userConflict(constraint, user)
		}
		return model.User{}, wrapError("create user", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.getBy(ctx, "get user by id", `id = $1`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getBy(ctx, "get user by username", `username = $1`, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, "get user by email", `email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, op, condition string, arg any) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + condition

	var user model.User
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, arg).Scan(
			&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, wrapError(op, err)
	}

	return user, nil
}

func userConflict(constraint string, user model.User) error {
	switch constraint {
	case "users_email_key":
		return &model.ConflictError{Field: "email", Value: user.Email}
	case "users_pkey":
		return &model.ConflictError{Field: "id", Value: user.ID}
	default:
		return &model.ConflictError{Field: "username", Value: user.Username}
	}
}
