package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrEmailExists is returned when registering an email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepo encapsulates all database queries related to users.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, email, full_name, password_hash, is_active, is_admin,
					 date_of_birth, profile_picture_url, dark_mode,
					 notifications_enabled, newsletter_subscribed, created_at, updated_at`

// Create inserts a new user and populates its ID. The email is
// normalized to lower case before insert; a duplicate email maps to
// ErrEmailExists via the MySQL 1062 error code.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `INSERT INTO users (email, full_name, password_hash, is_admin) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Email, u.FullName, u.PasswordHash, u.IsAdmin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, u.ID).
		Scan(userFields(u)...)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *model.User) error {
	const q = `UPDATE users
			   SET full_name = ?, date_of_birth = ?, profile_picture_url = ?,
				   updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.FullName, u.DateOfBirth, u.ProfilePictureURL, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePreferences persists the user's UI and notification preferences.
func (r *UserRepo) UpdatePreferences(ctx context.Context, u *model.User) error {
	const q = `UPDATE users
			   SET dark_mode = ?, notifications_enabled = ?, newsletter_subscribed = ?,
				   updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, u.DarkMode, u.NotificationsEnabled, u.NewsletterSubscribed, u.ID)
	return err
}

// List returns users ordered by id, optionally filtered on the
// active and admin flags. Nil filters match everyone.
func (r *UserRepo) List(ctx context.Context, active, admin *bool, limit, offset int) ([]*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users`
	var where []string
	var args []interface{}
	if active != nil {
		where = append(where, "is_active = ?")
		args = append(args, *active)
	}
	if admin != nil {
		where = append(where, "is_admin = ?")
		args = append(args, *admin)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// SetActive suspends or reactivates an account. Suspended users can
// no longer log in; their existing tickets are untouched.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) (*model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, active, id); err != nil {
		return nil, err
	}
	u.IsActive = active
	return u, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	const q = `UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, passwordHash, id)
	return err
}

func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(userFields(&u)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func userFields(u *model.User) []interface{} {
	return []interface{}{
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.IsAdmin,
		&u.DateOfBirth, &u.ProfilePictureURL, &u.DarkMode,
		&u.NotificationsEnabled, &u.NewsletterSubscribed, &u.CreatedAt, &u.UpdatedAt,
	}
}
