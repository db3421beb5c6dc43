package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusq/campusq-backend/internal/config"
	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/repository"
)

// Folder namespace for profile pictures on the storage provider.
const profilePictureFolder = "profile_pictures"

// UserService handles account lifecycle: student signup, faculty roster
// management, login lookups, and profile updates.
type UserService struct {
	cfg      *config.Config
	users    UserStore
	auth     *AuthService
	uploader Uploader
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(cfg *config.Config, users UserStore, auth *AuthService, uploader Uploader, log zerolog.Logger) *UserService {
	return &UserService{cfg: cfg, users: users, auth: auth, uploader: uploader, log: log}
}

// newExternalID generates the external-facing identifier for a new account.
func newExternalID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// RegisterStudent creates a student account from a self-service signup.
// The plaintext password is hashed and never stored.
func (s *UserService) RegisterStudent(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	semester := req.Semester
	u := &model.User{
		UserID:       newExternalID(),
		Fullname:     req.Fullname,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleStudent,
		Department:   req.Department,
		PhoneNumber:  req.PhoneNumber,
		Semester:     &semester,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// AddFaculty creates a faculty account. The admin role check lives in the
// middleware chain, not here.
func (s *UserService) AddFaculty(ctx context.Context, req model.AddFacultyRequest) (*model.User, error) {
	if len(req.Subject) == 0 {
		return nil, ErrNoSubjects
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		UserID:       newExternalID(),
		Fullname:     req.Fullname,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleFaculty,
		Department:   req.Department,
		PhoneNumber:  req.PhoneNumber,
		Subjects:     req.Subject,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// GetByID retrieves an account by internal ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves an account by email for login.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies partial updates to an account. Semester is applied
// only when the account is a student. A new picture is uploaded first, then
// the previous asset is destroyed best-effort, then the reference persisted.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest, picture *Attachment) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if picture != nil {
		if err := validateAttachment(picture, s.cfg.MaxUploadBytes); err != nil {
			return nil, err
		}

		url, publicID, err := s.uploader.Upload(ctx, picture.Data, picture.Filename, profilePictureFolder)
		if err != nil {
			return nil, fmt.Errorf("upload profile picture: %w", err)
		}

		if oldID := u.Profile.ProfilePicture.PublicID; oldID != "" {
			if err := s.uploader.Destroy(ctx, oldID); err != nil {
				s.log.Warn().Err(err).Str("public_id", oldID).Msg("Failed to destroy previous profile picture")
			}
		}

		u.Profile.ProfilePicture = model.FileRef{URL: url, PublicID: publicID}
	}

	if req.Fullname != "" {
		u.Fullname = req.Fullname
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.Department != "" {
		u.Department = req.Department
	}
	if req.Semester != nil && u.Role == model.RoleStudent {
		u.Semester = req.Semester
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// DeleteFaculty removes a faculty account. Non-faculty accounts are refused.
func (s *UserService) DeleteFaculty(ctx context.Context, id uuid.UUID) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role != model.RoleFaculty {
		return ErrNotFaculty
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// FacultyBySubject retrieves faculty teaching the given subject.
// Zero matches is reported as ErrNoFaculty, not an empty list.
func (s *UserService) FacultyBySubject(ctx context.Context, subject string) ([]model.User, error) {
	faculty, err := s.users.ListFacultyBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if len(faculty) == 0 {
		return nil, ErrNoFaculty
	}
	return faculty, nil
}

// AllFaculty retrieves the whole faculty roster.
// An empty roster is reported as ErrNoFaculty, not an empty list.
func (s *UserService) AllFaculty(ctx context.Context) ([]model.User, error) {
	faculty, err := s.users.ListFaculty(ctx)
	if err != nil {
		return nil, err
	}
	if len(faculty) == 0 {
		return nil, ErrNoFaculty
	}
	return faculty, nil
}

// Subjects returns the fixed subject catalog.
func (s *UserService) Subjects() []string {
	return model.SubjectCatalog
}
