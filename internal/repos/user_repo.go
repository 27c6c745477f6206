package repos

import (
	"strings"

	"spartanmarket/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(u *domain.User) error {
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	_, err := r.DB.NamedExec(`
      INSERT INTO users(id,username,email,password_hash,profile_picture,created_at,updated_at)
      VALUES(:id,:username,:email,:password_hash,:profile_picture,:created_at,:updated_at)`, u)
	return translateUniqueViolation(err)
}

// translateUniqueViolation maps UNIQUE constraint failures on username or
// email to the matching duplicate error. Two registrations racing past the
// existence probes end up here.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	switch {
	case strings.Contains(msg, "username"):
		return domain.ErrDuplicateUsername
	case strings.Contains(msg, "email"):
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT * FROM users WHERE LOWER(username)=LOWER(?)`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT * FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UsernameExists(username string) (bool, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(username)=LOWER(?)`, username)
	return n > 0, err
}

func (r *UserRepo) EmailExists(email string) (bool, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email)
	return n > 0, err
}

func (r *UserRepo) UpdateProfilePicture(id, url string) error {
	_, err := r.DB.Exec(`UPDATE users SET profile_picture=?, updated_at=? WHERE id=?`, url, now(), id)
	return err
}

func (r *UserRepo) UpdatePasswordHash(id, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=?, updated_at=? WHERE id=?`, hash, now(), id)
	return err
}
