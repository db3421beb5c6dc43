package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusq/campusq-backend/internal/model"
)

// UserStore is the account persistence contract. Implementations return
// repository.ErrNotFound for missing rows and repository.ErrDuplicateEmail
// on email collisions.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListFaculty(ctx context.Context) ([]model.User, error)
	ListFacultyBySubject(ctx context.Context, subject string) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	AppendAsked(ctx context.Context, userID, questionID uuid.UUID) error
	AppendAnswered(ctx context.Context, userID, questionID uuid.UUID) error
}

// QuestionStore is the question persistence contract.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error)
	ListDetails(ctx context.Context) ([]model.QuestionDetail, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.StudentQuestion, error)
	ListByFaculty(ctx context.Context, facultyID uuid.UUID) ([]model.FacultyQuestion, error)
	SetAnswer(ctx context.Context, id uuid.UUID, answerText string) (*model.Question, error)
}

// Uploader forwards file bytes to the object-storage provider and returns the
// stored asset's URL and opaque identifier.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (url, publicID string, err error)
	Destroy(ctx context.Context, publicID string) error
}

// Attachment is an uploaded multipart file read into memory.
type Attachment struct {
	Data        []byte
	Filename    string
	ContentType string
	Size        int64
}
