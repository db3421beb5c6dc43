package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusq/campusq-backend/internal/model"
)

const questionColumns = `q.id, q.student_id, q.faculty_id, q.subject, q.question_title, q.question_text,
	 q.question_file_url, q.question_file_public_id, q.answer_text, q.status, q.created_at, q.updated_at`

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// scanQuestion scans the questionColumns list into a model.Question,
// folding the nullable file columns into an optional FileRef.
func scanQuestion(row pgx.Row, q *model.Question, extra ...interface{}) error {
	var fileURL, filePublicID *string
	dest := []interface{}{
		&q.ID, &q.StudentID, &q.FacultyID, &q.Subject, &q.QuestionTitle, &q.QuestionText,
		&fileURL, &filePublicID, &q.AnswerText, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if fileURL != nil {
		q.QuestionFile = &model.FileRef{URL: *fileURL}
		if filePublicID != nil {
			q.QuestionFile.PublicID = *filePublicID
		}
	}
	return nil
}

// Create inserts a new question with status Pending.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	var fileURL, filePublicID *string
	if q.QuestionFile != nil {
		fileURL = &q.QuestionFile.URL
		filePublicID = &q.QuestionFile.PublicID
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (student_id, faculty_id, subject, question_title, question_text, question_file_url, question_file_public_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, status, created_at, updated_at`,
		q.StudentID, q.FacultyID, q.Subject, q.QuestionTitle, q.QuestionText, fileURL, filePublicID,
	).Scan(&q.ID, &q.Status, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a question without party projections.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions q WHERE q.id = $1`, id), q)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetDetail retrieves a question with both parties projected to name + email.
func (r *QuestionRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error) {
	d := &model.QuestionDetail{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+`, s.fullname, s.email, f.fullname, f.email
		 FROM questions q
		 JOIN users s ON s.id = q.student_id
		 JOIN users f ON f.id = q.faculty_id
		 WHERE q.id = $1`, id),
		&d.Question,
		&d.Student.Fullname, &d.Student.Email, &d.Faculty.Fullname, &d.Faculty.Email)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDetails retrieves every question with both parties projected, newest
// first. No pagination: the expected data volume makes a full scan fine.
func (r *QuestionRepository) ListDetails(ctx context.Context) ([]model.QuestionDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`, s.fullname, s.email, f.fullname, f.email
		 FROM questions q
		 JOIN users s ON s.id = q.student_id
		 JOIN users f ON f.id = q.faculty_id
		 ORDER BY q.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.QuestionDetail
	for rows.Next() {
		var d model.QuestionDetail
		if err := scanQuestion(rows, &d.Question,
			&d.Student.Fullname, &d.Student.Email, &d.Faculty.Fullname, &d.Faculty.Email); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByStudent retrieves all questions owned by a student with the assigned
// faculty's name projected, newest first.
func (r *QuestionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.StudentQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`, f.fullname
		 FROM questions q
		 JOIN users f ON f.id = q.faculty_id
		 WHERE q.student_id = $1
		 ORDER BY q.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.StudentQuestion
	for rows.Next() {
		var sq model.StudentQuestion
		if err := scanQuestion(rows, &sq.Question, &sq.Faculty.Fullname); err != nil {
			return nil, err
		}
		questions = append(questions, sq)
	}
	return questions, rows.Err()
}

// ListByFaculty retrieves all questions assigned to a faculty member with the
// full student record attached, newest first.
func (r *QuestionRepository) ListByFaculty(ctx context.Context, facultyID uuid.UUID) ([]model.FacultyQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`,
		  s.id, s.user_id, s.fullname, s.email, s.role, s.department, s.phone_number,
		  s.semester, s.subjects, s.profile_picture_url, s.profile_picture_public_id,
		  s.cover_photo_url, s.cover_photo_public_id, s.questions_asked, s.questions_answered,
		  s.created_at, s.updated_at
		 FROM questions q
		 JOIN users s ON s.id = q.student_id
		 WHERE q.faculty_id = $1
		 ORDER BY q.created_at DESC`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.FacultyQuestion
	for rows.Next() {
		var fq model.FacultyQuestion
		s := &fq.Student
		if err := scanQuestion(rows, &fq.Question,
			&s.ID, &s.UserID, &s.Fullname, &s.Email, &s.Role, &s.Department, &s.PhoneNumber,
			&s.Semester, &s.Subjects,
			&s.Profile.ProfilePicture.URL, &s.Profile.ProfilePicture.PublicID,
			&s.Profile.CoverPhoto.URL, &s.Profile.CoverPhoto.PublicID,
			&s.QuestionsAsked, &s.QuestionsAnswered, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, fq)
	}
	return questions, rows.Err()
}

// SetAnswer stores the answer text and flips the status to Answered,
// returning the updated question.
func (r *QuestionRepository) SetAnswer(ctx context.Context, id uuid.UUID, answerText string) (*model.Question, error) {
	q := &model.Question{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		`UPDATE questions q SET answer_text = $2, status = 'Answered', updated_at = CURRENT_TIMESTAMP
		 WHERE q.id = $1
		 RETURNING `+questionColumns, id, answerText), q)
	if err != nil {
		return nil, err
	}
	return q, nil
}
