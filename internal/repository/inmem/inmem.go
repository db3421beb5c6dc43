// Package inmem provides in-memory store implementations used by tests.
// They honor the same sentinel-error contracts as the PostgreSQL stores.
package inmem

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/repository"
)

// UserStore is an in-memory service.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *UserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
	}

	now := time.Now()
	u.ID = uuid.New()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Profile.ProfilePicture.URL == "" {
		u.Profile.ProfilePicture.URL = model.DefaultProfilePictureURL
	}
	if u.Profile.CoverPhoto.URL == "" {
		u.Profile.CoverPhoto.URL = model.DefaultCoverPhotoURL
	}
	if u.QuestionsAsked == nil {
		u.QuestionsAsked = []uuid.UUID{}
	}
	if u.QuestionsAnswered == nil {
		u.QuestionsAnswered = []uuid.UUID{}
	}

	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) ListFaculty(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var faculty []model.User
	for _, u := range s.users {
		if u.Role == model.RoleFaculty {
			faculty = append(faculty, u)
		}
	}
	sort.Slice(faculty, func(i, j int) bool { return faculty[i].Fullname < faculty[j].Fullname })
	return faculty, nil
}

func (s *UserStore) ListFacultyBySubject(_ context.Context, subject string) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var faculty []model.User
	for _, u := range s.users {
		if u.Role != model.RoleFaculty {
			continue
		}
		for _, sub := range u.Subjects {
			if sub == subject {
				faculty = append(faculty, u)
				break
			}
		}
	}
	sort.Slice(faculty, func(i, j int) bool { return faculty[i].Fullname < faculty[j].Fullname })
	return faculty, nil
}

func (s *UserStore) Update(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.Fullname = u.Fullname
	stored.PhoneNumber = u.PhoneNumber
	stored.Department = u.Department
	stored.Semester = u.Semester
	stored.Profile = u.Profile
	stored.UpdatedAt = time.Now()
	s.users[u.ID] = stored
	return nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) AppendAsked(_ context.Context, userID, questionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.QuestionsAsked = append(u.QuestionsAsked, questionID)
	s.users[userID] = u
	return nil
}

func (s *UserStore) AppendAnswered(_ context.Context, userID, questionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, qid := range u.QuestionsAnswered {
		if qid == questionID {
			return nil
		}
	}
	u.QuestionsAnswered = append(u.QuestionsAnswered, questionID)
	s.users[userID] = u
	return nil
}

// QuestionStore is an in-memory service.QuestionStore. It needs a UserStore
// to project party identities on detail reads.
type QuestionStore struct {
	mu        sync.RWMutex
	questions map[uuid.UUID]model.Question
	users     *UserStore
}

// NewQuestionStore creates an empty in-memory question store.
func NewQuestionStore(users *UserStore) *QuestionStore {
	return &QuestionStore{
		questions: make(map[uuid.UUID]model.Question),
		users:     users,
	}
}

func (s *QuestionStore) Create(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	q.ID = uuid.New()
	q.Status = model.StatusPending
	q.CreatedAt = now
	q.UpdatedAt = now

	s.questions[q.ID] = *q
	return nil
}

func (s *QuestionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (s *QuestionStore) GetDetail(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := s.detail(ctx, *q)
	return &d, nil
}

func (s *QuestionStore) ListDetails(ctx context.Context) ([]model.QuestionDetail, error) {
	s.mu.RLock()
	all := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		all = append(all, q)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	details := make([]model.QuestionDetail, 0, len(all))
	for _, q := range all {
		details = append(details, s.detail(ctx, q))
	}
	return details, nil
}

func (s *QuestionStore) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.StudentQuestion, error) {
	s.mu.RLock()
	var owned []model.Question
	for _, q := range s.questions {
		if q.StudentID == studentID {
			owned = append(owned, q)
		}
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })

	var out []model.StudentQuestion
	for _, q := range owned {
		sq := model.StudentQuestion{Question: q}
		if f, err := s.users.GetByID(ctx, q.FacultyID); err == nil {
			sq.Faculty = model.PartyRef{Fullname: f.Fullname}
		}
		out = append(out, sq)
	}
	return out, nil
}

func (s *QuestionStore) ListByFaculty(ctx context.Context, facultyID uuid.UUID) ([]model.FacultyQuestion, error) {
	s.mu.RLock()
	var assigned []model.Question
	for _, q := range s.questions {
		if q.FacultyID == facultyID {
			assigned = append(assigned, q)
		}
	}
	s.mu.RUnlock()

	sort.Slice(assigned, func(i, j int) bool { return assigned[i].CreatedAt.After(assigned[j].CreatedAt) })

	var out []model.FacultyQuestion
	for _, q := range assigned {
		fq := model.FacultyQuestion{Question: q}
		if student, err := s.users.GetByID(ctx, q.StudentID); err == nil {
			fq.Student = *student
			fq.Student.PasswordHash = ""
		}
		out = append(out, fq)
	}
	return out, nil
}

func (s *QuestionStore) SetAnswer(_ context.Context, id uuid.UUID, answerText string) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	q.AnswerText = &answerText
	q.Status = model.StatusAnswered
	q.UpdatedAt = time.Now()
	s.questions[id] = q

	out := q
	return &out, nil
}

func (s *QuestionStore) detail(ctx context.Context, q model.Question) model.QuestionDetail {
	d := model.QuestionDetail{Question: q}
	if student, err := s.users.GetByID(ctx, q.StudentID); err == nil {
		d.Student = model.PartyRef{Fullname: student.Fullname, Email: student.Email}
	}
	if faculty, err := s.users.GetByID(ctx, q.FacultyID); err == nil {
		d.Faculty = model.PartyRef{Fullname: faculty.Fullname, Email: faculty.Email}
	}
	return d
}

var errUploadFailed = errors.New("upload failed")

// Uploader is a fake object-storage uploader recording what it was given.
type Uploader struct {
	mu        sync.Mutex
	counter   int
	Uploads   []string
	Destroyed []string
	FailNext  bool
}

// NewUploader creates a fake uploader.
func NewUploader() *Uploader {
	return &Uploader{}
}

func (u *Uploader) Upload(_ context.Context, _ []byte, filename, folder string) (string, string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.FailNext {
		u.FailNext = false
		return "", "", errUploadFailed
	}

	u.counter++
	publicID := fmt.Sprintf("%s/%d-%s", folder, u.counter, filename)
	u.Uploads = append(u.Uploads, publicID)
	return "https://cdn.example.com/" + publicID, publicID, nil
}

func (u *Uploader) Destroy(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.Destroyed = append(u.Destroyed, publicID)
	return nil
}
