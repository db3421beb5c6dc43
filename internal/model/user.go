package model

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what a user account may do. Exactly one per account,
// immutable after creation.
type Role string

const (
	RoleStudent Role = "Student"
	RoleFaculty Role = "Faculty"
	RoleAdmin   Role = "Admin"
)

// Placeholder images used until a user uploads their own.
const (
	DefaultProfilePictureURL = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRrwcRgFA-KFW6u0wScyvZEBWMLME5WkdeCUg&s"
	DefaultCoverPhotoURL     = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRgXtZjBEssgCQ86M7tMn2oHbIdEYc5CbIZKQ&s"
)

// FileRef points at an asset held by the object-storage provider.
type FileRef struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
}

// Profile holds a user's uploaded imagery.
type Profile struct {
	ProfilePicture FileRef `json:"profilePicture"`
	CoverPhoto     FileRef `json:"coverPhoto"`
}

// User represents a Student, Faculty, or Admin account.
//
// Semester is set only for students; Subjects only for faculty (non-empty).
// QuestionsAsked and QuestionsAnswered are denormalized convenience lists —
// ownership of a question lives on the Question row, not here.
type User struct {
	ID                uuid.UUID   `json:"id"`
	UserID            string      `json:"userId"`
	Fullname          string      `json:"fullname"`
	Email             string      `json:"email"`
	PasswordHash      string      `json:"-"`
	Role              Role        `json:"role"`
	Department        string      `json:"department"`
	PhoneNumber       string      `json:"phoneNumber"`
	Semester          *int        `json:"semester,omitempty"`
	Subjects          []string    `json:"subject,omitempty"`
	Profile           Profile     `json:"profile"`
	QuestionsAsked    []uuid.UUID `json:"questionsAsked"`
	QuestionsAnswered []uuid.UUID `json:"questionsAnswered"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// SignupRequest is the payload for student self-registration.
type SignupRequest struct {
	Fullname    string `json:"fullname" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=128"`
	Department  string `json:"department" binding:"required,max=100"`
	Semester    int    `json:"semester" binding:"required,min=1,max=12"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=20"`
}

// AddFacultyRequest is the payload for admin-issued faculty creation.
type AddFacultyRequest struct {
	Fullname    string   `json:"fullname" binding:"required,min=2,max=100"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=6,max=128"`
	Department  string   `json:"department" binding:"required,max=100"`
	PhoneNumber string   `json:"phoneNumber" binding:"required,max=20"`
	Subject     []string `json:"subject" binding:"required,min=1,dive,required"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the optional multipart fields of a profile
// update. Absent fields leave the stored value untouched.
type UpdateProfileRequest struct {
	Fullname    string `form:"fullname" binding:"omitempty,min=2,max=100"`
	PhoneNumber string `form:"phoneNumber" binding:"omitempty,max=20"`
	Department  string `form:"department" binding:"omitempty,max=100"`
	Semester    *int   `form:"semester" binding:"omitempty,min=1,max=12"`
}
