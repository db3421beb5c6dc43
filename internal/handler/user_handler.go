package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusq/campusq-backend/internal/config"
	"github.com/campusq/campusq-backend/internal/model"
	"github.com/campusq/campusq-backend/internal/response"
	"github.com/campusq/campusq-backend/internal/service"
	"github.com/campusq/campusq-backend/internal/validator"
)

// UserHandler handles account, session, and faculty directory endpoints.
type UserHandler struct {
	cfg         *config.Config
	authService *service.AuthService
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(cfg *config.Config, authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		cfg:         cfg,
		authService: authService,
		userService: userService,
	}
}

// Signup godoc
// POST /api/v1/user/signup
// Registers a student account. Returns an acknowledgment only; the account
// document is available after login.
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.userService.RegisterStudent(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, response.ErrEmailRegistered)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success": true,
	})
}

// AddFaculty godoc
// POST /api/v1/user/add-faculty
// Registers a faculty account. Admin only.
func (h *UserHandler) AddFaculty(c *gin.Context) {
	var req model.AddFacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.AddFaculty(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.Fail(c, http.StatusConflict, response.ErrEmailRegistered)
		case errors.Is(err, service.ErrNoSubjects):
			response.Fail(c, http.StatusBadRequest, response.ErrSubjectRequired)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"faculty": user,
	})
}

// Login godoc
// POST /api/v1/user/login
// Validates email + password and issues the session cookie. Unknown email
// and wrong password produce identical responses.
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(user.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, h.authService.SessionTTLSeconds(), "/", "", h.cfg.CookieSecure(), true)

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
	})
}

// Logout godoc
// GET /api/v1/user/logout
// Clears the session cookie. The token itself stays valid until expiry.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", h.cfg.CookieSecure(), true)

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
	})
}

// UpdateProfile godoc
// POST /api/v1/user/profile/:id
// Applies partial profile updates, optionally replacing the profile picture
// from the multipart field "profilePicture".
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateProfileRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	picture, err := formAttachment(c, "profilePicture")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), id, req, picture)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
	})
}

// DeleteFaculty godoc
// DELETE /api/v1/user/delete-faculty/:id
// Removes a faculty account. Admin only.
func (h *UserHandler) DeleteFaculty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.userService.DeleteFaculty(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrNotFaculty):
			response.Fail(c, http.StatusBadRequest, response.ErrNotAFaculty)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
	})
}

// FacultyBySubject godoc
// GET /api/v1/user/faculty?subject=...
// Lists faculty teaching a subject.
func (h *UserHandler) FacultyBySubject(c *gin.Context) {
	subject := c.Query("subject")
	if subject == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrSubjectRequired)
		return
	}

	faculty, err := h.userService.FacultyBySubject(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrNoFaculty) {
			response.Fail(c, http.StatusNotFound, response.ErrNoFaculty)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"faculty": faculty,
	})
}

// AllFaculty godoc
// GET /api/v1/user/faculty/all
// Lists the whole faculty roster.
func (h *UserHandler) AllFaculty(c *gin.Context) {
	faculty, err := h.userService.AllFaculty(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoFaculty) {
			response.Fail(c, http.StatusNotFound, response.ErrNoFaculty)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"faculty": faculty,
	})
}

// Subjects godoc
// GET /api/v1/user/subjects
// Returns the subject catalog.
func (h *UserHandler) Subjects(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"subjects": h.userService.Subjects(),
	})
}
