package service

import "errors"

// Business errors surfaced to handlers.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFaculty         = errors.New("account is not a faculty member")
	ErrNoSubjects         = errors.New("faculty must have at least one subject")
	ErrNoFaculty          = errors.New("no faculty found")

	ErrQuestionNotFound = errors.New("question not found")
	ErrNoQuestions      = errors.New("no questions found")
	ErrInvalidStudent   = errors.New("student id does not reference a student")
	ErrInvalidFaculty   = errors.New("faculty id does not reference a faculty member")
	ErrNotAssigned      = errors.New("question is not assigned to this faculty member")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)
