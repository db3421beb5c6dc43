package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusq/campusq-backend/internal/model"
)

const userColumns = `id, user_id, fullname, email, password_hash, role, department, phone_number,
	 semester, subjects, profile_picture_url, profile_picture_public_id,
	 cover_photo_url, cover_photo_public_id, questions_asked, questions_answered,
	 created_at, updated_at`

// UserRepository handles account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID, &u.UserID, &u.Fullname, &u.Email, &u.PasswordHash, &u.Role,
		&u.Department, &u.PhoneNumber, &u.Semester, &u.Subjects,
		&u.Profile.ProfilePicture.URL, &u.Profile.ProfilePicture.PublicID,
		&u.Profile.CoverPhoto.URL, &u.Profile.CoverPhoto.PublicID,
		&u.QuestionsAsked, &u.QuestionsAnswered, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create inserts a new account. ID, external user ID, and picture defaults
// are filled in by the database.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (user_id, fullname, email, password_hash, role, department, phone_number, semester, subjects)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, profile_picture_url, cover_photo_url, questions_asked, questions_answered, created_at, updated_at`,
		u.UserID, u.Fullname, u.Email, u.PasswordHash, u.Role, u.Department, u.PhoneNumber, u.Semester, u.Subjects,
	).Scan(&u.ID, &u.Profile.ProfilePicture.URL, &u.Profile.CoverPhoto.URL,
		&u.QuestionsAsked, &u.QuestionsAnswered, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves an account by internal ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves an account by its unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// ListFaculty retrieves all faculty accounts ordered by name.
func (r *UserRepository) ListFaculty(ctx context.Context) ([]model.User, error) {
	return r.listFaculty(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'Faculty' ORDER BY fullname`)
}

// ListFacultyBySubject retrieves faculty accounts whose subject set contains
// the given subject.
func (r *UserRepository) ListFacultyBySubject(ctx context.Context, subject string) ([]model.User, error) {
	return r.listFaculty(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'Faculty' AND $1 = ANY(subjects) ORDER BY fullname`,
		subject)
}

func (r *UserRepository) listFaculty(ctx context.Context, query string, args ...interface{}) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faculty []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		faculty = append(faculty, *u)
	}
	return faculty, rows.Err()
}

// Update persists the mutable profile fields of an account.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET fullname = $1, phone_number = $2, department = $3, semester = $4,
		  profile_picture_url = $5, profile_picture_public_id = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		u.Fullname, u.PhoneNumber, u.Department, u.Semester,
		u.Profile.ProfilePicture.URL, u.Profile.ProfilePicture.PublicID, u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account by ID.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendAsked appends a question ID to an account's questions_asked list.
func (r *UserRepository) AppendAsked(ctx context.Context, userID, questionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET questions_asked = array_append(questions_asked, $2), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`,
		userID, questionID,
	)
	return err
}

// AppendAnswered appends a question ID to an account's questions_answered
// list, skipping if already present.
func (r *UserRepository) AppendAnswered(ctx context.Context, userID, questionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET questions_answered = array_append(questions_answered, $2), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND NOT ($2 = ANY(questions_answered))`,
		userID, questionID,
	)
	return err
}
