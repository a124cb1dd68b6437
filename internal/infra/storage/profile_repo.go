// Package storage holds the relational store of the profile service.
// The coordinator itself persists nothing: a process restart loses the room.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// User is a stored profile record.
type User struct {
	Username string `json:"username"`
	Avatar   []byte `json:"avatar,omitempty"`
	Sex      string `json:"sex,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ProfileRepository implements profile CRUD over SQLite.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile. Fails on duplicate username.
func (r *ProfileRepository) Create(ctx context.Context, u User) error {
	query := `INSERT INTO users (username, avatar, sex, email) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, u.Username, u.Avatar, u.Sex, u.Email); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get returns the profile for username, or nil when it does not exist.
func (r *ProfileRepository) Get(ctx context.Context, username string) (*User, error) {
	query := `SELECT username, avatar, sex, email FROM users WHERE username = ?`
	var u User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.Username, &u.Avatar, &u.Sex, &u.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetMany returns the existing profiles among the given usernames.
func (r *ProfileRepository) GetMany(ctx context.Context, usernames []string) ([]User, error) {
	users := make([]User, 0, len(usernames))
	for _, username := range usernames {
		u, err := r.Get(ctx, username)
		if err != nil {
			return nil, err
		}
		if u != nil {
			users = append(users, *u)
		}
	}
	return users, nil
}

// Update overwrites an existing profile.
func (r *ProfileRepository) Update(ctx context.Context, u User) error {
	query := `UPDATE users SET avatar = ?, sex = ?, email = ? WHERE username = ?`
	if _, err := r.db.ExecContext(ctx, query, u.Avatar, u.Sex, u.Email, u.Username); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a profile.
func (r *ProfileRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = ?`
	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// SetAvatar stores raw avatar bytes for an existing profile.
func (r *ProfileRepository) SetAvatar(ctx context.Context, username string, avatar []byte) error {
	query := `UPDATE users SET avatar = ? WHERE username = ?`
	if _, err := r.db.ExecContext(ctx, query, avatar, username); err != nil {
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	return nil
}

// Exists reports whether a profile is stored for username.
func (r *ProfileRepository) Exists(ctx context.Context, username string) (bool, error) {
	u, err := r.Get(ctx, username)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}
