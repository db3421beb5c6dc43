package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/repository/inmem"
)

type questionFixture struct {
	svc      *QuestionService
	userSvc  *UserService
	users    *inmem.UserStore
	uploader *inmem.Uploader
	student  *model.User
	faculty  *model.User
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	cfg := testConfig()
	users := inmem.NewUserStore()
	questions := inmem.NewQuestionStore(users)
	uploader := inmem.NewUploader()
	auth := NewAuthService(cfg)
	userSvc := NewUserService(cfg, users, auth, uploader, zerolog.Nop())
	svc := NewQuestionService(cfg, questions, users, uploader, nil, zerolog.Nop())

	ctx := context.Background()
	student, err := userSvc.RegisterStudent(ctx, signupReq("student@example.com"))
	require.NoError(t, err)
	faculty, err := userSvc.AddFaculty(ctx, facultyReq("faculty@example.com", "Machine Learning"))
	require.NoError(t, err)

	return &questionFixture{
		svc:      svc,
		userSvc:  userSvc,
		users:    users,
		uploader: uploader,
		student:  student,
		faculty:  faculty,
	}
}

func (f *questionFixture) askInput() AskInput {
	return AskInput{
		StudentID:     f.student.ID,
		FacultyID:     f.faculty.ID,
		Subject:       "Machine Learning",
		QuestionTitle: "Gradient descent divergence",
		QuestionText:  "Why does my loss explode with a large learning rate?",
	}
}

func TestAsk(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	q, err := f.svc.Ask(ctx, f.askInput())
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, q.Status)
	assert.Nil(t, q.AnswerText)
	assert.Nil(t, q.QuestionFile)

	// The question id lands on both parties' asked lists.
	student, err := f.users.GetByID(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Contains(t, student.QuestionsAsked, q.ID)

	faculty, err := f.users.GetByID(ctx, f.faculty.ID)
	require.NoError(t, err)
	assert.Contains(t, faculty.QuestionsAsked, q.ID)
}

func TestAskWithFile(t *testing.T) {
	f := newQuestionFixture(t)

	in := f.askInput()
	in.File = &Attachment{Data: []byte("pdf"), Filename: "notes.pdf", ContentType: "application/pdf", Size: 3}

	q, err := f.svc.Ask(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, q.QuestionFile)
	assert.NotEmpty(t, q.QuestionFile.URL)
	assert.Equal(t, []string{"question_files/1-notes.pdf"}, f.uploader.Uploads)
}

func TestAskRejectsBadAttachments(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	in := f.askInput()
	in.File = &Attachment{Data: []byte("bin"), Filename: "x.zip", ContentType: "application/zip", Size: 3}
	_, err := f.svc.Ask(ctx, in)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	in.File = &Attachment{Filename: "big.png", ContentType: "image/png", Size: 6 * 1024 * 1024}
	_, err = f.svc.Ask(ctx, in)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestAskValidatesParties(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	in := f.askInput()
	in.StudentID = uuid.New()
	_, err := f.svc.Ask(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidStudent)

	in = f.askInput()
	in.FacultyID = uuid.New()
	_, err = f.svc.Ask(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidFaculty)

	// A student account in the faculty slot is rejected too.
	in = f.askInput()
	in.FacultyID = f.student.ID
	_, err = f.svc.Ask(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidFaculty)

	in = f.askInput()
	in.StudentID = f.faculty.ID
	_, err = f.svc.Ask(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidStudent)
}

func TestAnswer(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	q, err := f.svc.Ask(ctx, f.askInput())
	require.NoError(t, err)

	answered, err := f.svc.Answer(ctx, q.ID, f.faculty.ID, "Lower the learning rate.")
	require.NoError(t, err)

	assert.Equal(t, model.StatusAnswered, answered.Status)
	require.NotNil(t, answered.AnswerText)
	assert.Equal(t, "Lower the learning rate.", *answered.AnswerText)

	student, err := f.users.GetByID(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Contains(t, student.QuestionsAnswered, q.ID)
}

func TestAnswerOnlyAssignedFaculty(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	other, err := f.userSvc.AddFaculty(ctx, facultyReq("other@example.com", "Computer Networks"))
	require.NoError(t, err)

	q, err := f.svc.Ask(ctx, f.askInput())
	require.NoError(t, err)

	_, err = f.svc.Answer(ctx, q.ID, other.ID, "Not my question.")
	assert.ErrorIs(t, err, ErrNotAssigned)

	// Still pending after the rejected attempt.
	got, err := f.svc.ByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestAnswerUnknownQuestion(t *testing.T) {
	f := newQuestionFixture(t)

	_, err := f.svc.Answer(context.Background(), uuid.New(), f.faculty.ID, "Hello")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAnswerIdempotentAppends(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	q, err := f.svc.Ask(ctx, f.askInput())
	require.NoError(t, err)

	_, err = f.svc.Answer(ctx, q.ID, f.faculty.ID, "First answer")
	require.NoError(t, err)
	_, err = f.svc.Answer(ctx, q.ID, f.faculty.ID, "Revised answer")
	require.NoError(t, err)

	faculty, err := f.users.GetByID(ctx, f.faculty.ID)
	require.NoError(t, err)

	count := 0
	for _, id := range faculty.QuestionsAnswered {
		if id == q.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAllProjectsParties(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Ask(ctx, f.askInput())
	require.NoError(t, err)

	details, err := f.svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)

	assert.Equal(t, f.student.Fullname, details[0].Student.Fullname)
	assert.Equal(t, f.faculty.Fullname, details[0].Faculty.Fullname)
}

func TestByStudentAndByFaculty(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	q, err := f.svc.Ask(ctx, f.askInput())
	require.NoError(t, err)

	mine, err := f.svc.ByStudent(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, q.ID, mine[0].ID)
	assert.Equal(t, f.faculty.Fullname, mine[0].Faculty.Fullname)

	assigned, err := f.svc.ByFaculty(ctx, f.faculty.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, f.student.ID, assigned[0].Student.ID)
	assert.Empty(t, assigned[0].Student.PasswordHash)
}

func TestByStudentEmpty(t *testing.T) {
	f := newQuestionFixture(t)

	_, err := f.svc.ByStudent(context.Background(), f.student.ID)
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = f.svc.ByFaculty(context.Background(), f.faculty.ID)
	assert.ErrorIs(t, err, ErrNoQuestions)
}
