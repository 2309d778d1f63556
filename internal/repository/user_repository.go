package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/utils"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// UserRepo reads and writes the `users` table of the accounts database.
type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, email, password_hash, created_at, updated_at"

// Create hashes the password and inserts the user, returning its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, hash)
	if err != nil {
		return 0, duplicateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// duplicateErr maps a unique key violation on users to the matching
// sentinel. The server names the violated key in the message, e.g.
// "Duplicate entry 'a@b.c' for key 'users.uq_users_email'". Other errors
// pass through unchanged.
func duplicateErr(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return err
	}
	if strings.Contains(me.Message, "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

// GetByUsername fetches a user by login name. ErrUserNotFound is returned
// when no row matches.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", strings.TrimSpace(username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs loads every user in ids keyed by id. Unknown ids are simply
// absent from the result.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.User, error) {
	out := make(map[uint64]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In("SELECT "+userColumns+" FROM users WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := r.DB.SelectContext(ctx, &users, r.DB.Rebind(q), args...); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
