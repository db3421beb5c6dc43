package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusq/campusq-backend/internal/config"
	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/repository"
)

// Folder namespace for question attachments on the storage provider.
const questionFileFolder = "question_files"

// questionFeedTTL bounds staleness of the cached public feed.
const questionFeedTTL = 30 * time.Second

// Content types accepted as question attachments and profile pictures.
var allowedAttachmentPrefixes = []string{"image/", "application/pdf", "text/"}

// validateAttachment enforces the upload size cap and content-type allow-list.
func validateAttachment(a *Attachment, maxBytes int64) error {
	if a.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, a.Size, maxBytes)
	}
	for _, prefix := range allowedAttachmentPrefixes {
		if strings.HasPrefix(a.ContentType, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, a.ContentType)
}

// AskInput carries a validated ask operation.
type AskInput struct {
	StudentID     uuid.UUID
	FacultyID     uuid.UUID
	Subject       string
	QuestionTitle string
	QuestionText  string
	File          *Attachment
}

// QuestionService handles the question lifecycle.
type QuestionService struct {
	cfg       *config.Config
	questions QuestionStore
	users     UserStore
	uploader  Uploader
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService. rdb may be nil, in which
// case the public feed is served uncached.
func NewQuestionService(cfg *config.Config, questions QuestionStore, users UserStore, uploader Uploader, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{cfg: cfg, questions: questions, users: users, uploader: uploader, rdb: rdb, log: log}
}

// Ask creates a new pending question. Both parties must resolve to accounts
// of the right role. After the authoritative insert, the question id is
// appended to both parties' convenience lists best-effort: a failure there
// leaves the question persisted and is only logged.
func (s *QuestionService) Ask(ctx context.Context, in AskInput) (*model.Question, error) {
	student, err := s.users.GetByID(ctx, in.StudentID)
	if err != nil || student.Role != model.RoleStudent {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, ErrInvalidStudent
	}

	faculty, err := s.users.GetByID(ctx, in.FacultyID)
	if err != nil || faculty.Role != model.RoleFaculty {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, ErrInvalidFaculty
	}

	q := &model.Question{
		StudentID:     in.StudentID,
		FacultyID:     in.FacultyID,
		Subject:       in.Subject,
		QuestionTitle: in.QuestionTitle,
		QuestionText:  in.QuestionText,
	}

	if in.File != nil {
		if err := validateAttachment(in.File, s.cfg.MaxUploadBytes); err != nil {
			return nil, err
		}
		url, publicID, err := s.uploader.Upload(ctx, in.File.Data, in.File.Filename, questionFileFolder)
		if err != nil {
			return nil, fmt.Errorf("upload question file: %w", err)
		}
		q.QuestionFile = &model.FileRef{URL: url, PublicID: publicID}
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, err
	}

	for _, userID := range []uuid.UUID{in.StudentID, in.FacultyID} {
		if err := s.users.AppendAsked(ctx, userID, q.ID); err != nil {
			s.log.Warn().Err(err).
				Stringer("user_id", userID).
				Stringer("question_id", q.ID).
				Msg("Failed to append question to asked list")
		}
	}

	s.invalidateFeed(ctx)
	return q, nil
}

// Answer stores the answer text of a question and marks it Answered. Only
// the assigned faculty member may answer; the answered-list appends are
// idempotent so repeated answers do not duplicate entries.
func (s *QuestionService) Answer(ctx context.Context, questionID, actorID uuid.UUID, answerText string) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if q.FacultyID != actorID {
		return nil, ErrNotAssigned
	}

	updated, err := s.questions.SetAnswer(ctx, questionID, answerText)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	for _, userID := range []uuid.UUID{q.StudentID, q.FacultyID} {
		if err := s.users.AppendAnswered(ctx, userID, questionID); err != nil {
			s.log.Warn().Err(err).
				Stringer("user_id", userID).
				Stringer("question_id", questionID).
				Msg("Failed to append question to answered list")
		}
	}

	s.invalidateFeed(ctx)
	return updated, nil
}

// All returns every question with both parties projected. The payload is
// cached in Redis with a short TTL since this is the hottest public read.
func (s *QuestionService) All(ctx context.Context) ([]model.QuestionDetail, error) {
	key := config.CacheKey.QuestionFeedKey()

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var details []model.QuestionDetail
			if err := json.Unmarshal([]byte(cached), &details); err == nil {
				return details, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Question feed cache read failed")
		}
	}

	details, err := s.questions.ListDetails(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(details); err == nil {
			if err := s.rdb.Set(ctx, key, payload, questionFeedTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Question feed cache write failed")
			}
		}
	}
	return details, nil
}

// ByID returns one question with both parties projected.
func (s *QuestionService) ByID(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error) {
	d, err := s.questions.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return d, nil
}

// ByStudent returns all questions owned by a student. Zero matches is
// reported as ErrNoQuestions, not an empty list — callers rely on that.
func (s *QuestionService) ByStudent(ctx context.Context, studentID uuid.UUID) ([]model.StudentQuestion, error) {
	questions, err := s.questions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// ByFaculty returns all questions assigned to a faculty member, with the
// same zero-matches contract as ByStudent.
func (s *QuestionService) ByFaculty(ctx context.Context, facultyID uuid.UUID) ([]model.FacultyQuestion, error) {
	questions, err := s.questions.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

func (s *QuestionService) invalidateFeed(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.QuestionFeedKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Question feed cache invalidation failed")
	}
}
