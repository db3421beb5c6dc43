package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionStatus is the two-value lifecycle flag of a question.
type QuestionStatus string

const (
	StatusPending  QuestionStatus = "Pending"
	StatusAnswered QuestionStatus = "Answered"
)

// Question is a student-submitted query assigned to one faculty member.
// Status starts Pending and flips to Answered exactly once, when the
// assigned faculty supplies answer text. Questions are never deleted and
// the faculty assignment is immutable.
type Question struct {
	ID            uuid.UUID      `json:"id"`
	StudentID     uuid.UUID      `json:"studentId"`
	FacultyID     uuid.UUID      `json:"facultyId"`
	Subject       string         `json:"subject"`
	QuestionTitle string         `json:"questionTitle"`
	QuestionText  string         `json:"questionText"`
	QuestionFile  *FileRef       `json:"questionFile,omitempty"`
	AnswerText    *string        `json:"answerText"`
	Status        QuestionStatus `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// PartyRef is the identity projection used on public question reads.
type PartyRef struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email,omitempty"`
}

// QuestionDetail is a question with both parties projected to name + email.
type QuestionDetail struct {
	Question
	Student PartyRef `json:"student"`
	Faculty PartyRef `json:"faculty"`
}

// StudentQuestion is a question as seen by its owning student, with the
// assigned faculty's name projected.
type StudentQuestion struct {
	Question
	Faculty PartyRef `json:"faculty"`
}

// FacultyQuestion is a question as seen by its assigned faculty, with the
// full student record attached.
type FacultyQuestion struct {
	Question
	Student User `json:"student"`
}

// AskRequest carries the multipart fields of a new question. The optional
// file arrives separately as the "questionFile" part.
type AskRequest struct {
	StudentID     string `form:"studentId" binding:"required,uuid"`
	FacultyID     string `form:"facultyId" binding:"required,uuid"`
	Subject       string `form:"subject" binding:"required,max=100"`
	QuestionTitle string `form:"questionTitle" binding:"required,max=200"`
	QuestionText  string `form:"questionText" binding:"required,max=5000"`
}

// AnswerRequest is the payload for answering a question.
type AnswerRequest struct {
	AnswerText string `json:"answerText" binding:"required,max=5000"`
}
