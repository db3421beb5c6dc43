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

func newUserFixture(t *testing.T) (*UserService, *inmem.UserStore, *inmem.Uploader) {
	t.Helper()
	cfg := testConfig()
	users := inmem.NewUserStore()
	uploader := inmem.NewUploader()
	svc := NewUserService(cfg, users, NewAuthService(cfg), uploader, zerolog.Nop())
	return svc, users, uploader
}

func signupReq(email string) model.SignupRequest {
	return model.SignupRequest{
		Fullname:    "Asha Verma",
		Email:       email,
		Password:    "password123",
		Department:  "Computer Science",
		Semester:    4,
		PhoneNumber: "9876543210",
	}
}

func facultyReq(email string, subjects ...string) model.AddFacultyRequest {
	return model.AddFacultyRequest{
		Fullname:    "Prof. Rao",
		Email:       email,
		Password:    "password123",
		Department:  "Computer Science",
		PhoneNumber: "9123456780",
		Subject:     subjects,
	}
}

func TestRegisterStudent(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	u, err := svc.RegisterStudent(context.Background(), signupReq("asha@example.com"))
	require.NoError(t, err)

	assert.Equal(t, model.RoleStudent, u.Role)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEmpty(t, u.UserID)
	require.NotNil(t, u.Semester)
	assert.Equal(t, 4, *u.Semester)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.Equal(t, model.DefaultProfilePictureURL, u.Profile.ProfilePicture.URL)
}

func TestRegisterStudentDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, signupReq("asha@example.com"))
	require.NoError(t, err)

	_, err = svc.RegisterStudent(ctx, signupReq("asha@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAddFaculty(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	u, err := svc.AddFaculty(context.Background(), facultyReq("rao@example.com", "Mathematics", "Physics"))
	require.NoError(t, err)

	assert.Equal(t, model.RoleFaculty, u.Role)
	assert.Nil(t, u.Semester)
	assert.Equal(t, []string{"Mathematics", "Physics"}, u.Subjects)
}

func TestAddFacultyWithoutSubjects(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.AddFaculty(context.Background(), facultyReq("rao@example.com"))
	assert.ErrorIs(t, err, ErrNoSubjects)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.RegisterStudent(ctx, signupReq("asha@example.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{Fullname: "Asha V."}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Asha V.", updated.Fullname)
	// Untouched fields keep their stored values.
	assert.Equal(t, u.PhoneNumber, updated.PhoneNumber)
	assert.Equal(t, u.Department, updated.Department)
}

func TestUpdateProfileSemesterIgnoredForFaculty(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	f, err := svc.AddFaculty(ctx, facultyReq("rao@example.com", "Mathematics"))
	require.NoError(t, err)

	sem := 3
	updated, err := svc.UpdateProfile(ctx, f.ID, model.UpdateProfileRequest{Semester: &sem}, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.Semester)
}

func TestUpdateProfilePictureReplacesOld(t *testing.T) {
	svc, _, uploader := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.RegisterStudent(ctx, signupReq("asha@example.com"))
	require.NoError(t, err)

	pic := &Attachment{Data: []byte("img"), Filename: "avatar.png", ContentType: "image/png", Size: 3}
	first, err := svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{}, pic)
	require.NoError(t, err)
	firstID := first.Profile.ProfilePicture.PublicID
	assert.NotEmpty(t, firstID)
	assert.Empty(t, uploader.Destroyed)

	// Re-uploading under the same filename still yields a distinct asset.
	pic2 := &Attachment{Data: []byte("img2"), Filename: "avatar.png", ContentType: "image/png", Size: 4}
	second, err := svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{}, pic2)
	require.NoError(t, err)

	assert.NotEqual(t, firstID, second.Profile.ProfilePicture.PublicID)
	assert.Equal(t, []string{firstID}, uploader.Destroyed)
}

func TestUpdateProfileRejectsBadAttachments(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.RegisterStudent(ctx, signupReq("asha@example.com"))
	require.NoError(t, err)

	exe := &Attachment{Data: []byte("bin"), Filename: "x.exe", ContentType: "application/octet-stream", Size: 3}
	_, err = svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{}, exe)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	huge := &Attachment{Data: nil, Filename: "big.png", ContentType: "image/png", Size: 6 * 1024 * 1024}
	_, err = svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{}, huge)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), model.UpdateProfileRequest{Fullname: "Nobody"}, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteFaculty(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	ctx := context.Background()

	f, err := svc.AddFaculty(ctx, facultyReq("rao@example.com", "Mathematics"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFaculty(ctx, f.ID))

	_, err = users.GetByID(ctx, f.ID)
	assert.Error(t, err)
}

func TestDeleteFacultyRejectsNonFaculty(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	student, err := svc.RegisterStudent(ctx, signupReq("asha@example.com"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteFaculty(ctx, student.ID), ErrNotFaculty)
	assert.ErrorIs(t, svc.DeleteFaculty(ctx, uuid.New()), ErrUserNotFound)
}

func TestFacultyBySubject(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.AddFaculty(ctx, facultyReq("rao@example.com", "Mathematics"))
	require.NoError(t, err)

	found, err := svc.FacultyBySubject(ctx, "Mathematics")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.FacultyBySubject(ctx, "Astrology")
	assert.ErrorIs(t, err, ErrNoFaculty)
}

func TestAllFacultyEmptyRoster(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.AllFaculty(context.Background())
	assert.ErrorIs(t, err, ErrNoFaculty)
}

func TestSubjectCatalog(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	subjects := svc.Subjects()
	assert.Len(t, subjects, 10)
	assert.Contains(t, subjects, "Machine Learning")
}
