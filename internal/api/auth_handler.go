package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the account endpoints under /auth.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     domain.Role `json:"role" binding:"omitempty,oneof=user trainer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileRequest struct {
	Age           *int                  `json:"age" binding:"omitempty,gt=0,lt=150"`
	Gender        *domain.Gender        `json:"gender" binding:"omitempty,oneof=male female other"`
	Height        *float64              `json:"height" binding:"omitempty,gte=0"`
	HeightFeet    *float64              `json:"heightFeet" binding:"omitempty,gte=0"`
	HeightInches  *float64              `json:"heightInches" binding:"omitempty,gte=0"`
	HeightUnit    *domain.HeightUnit    `json:"heightUnit" binding:"omitempty,oneof=cm ft"`
	ActivityLevel *domain.ActivityLevel `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active very_active"`
}

type UpdateProfileRequest struct {
	Name    *string         `json:"name" binding:"omitempty,min=1"`
	Profile *ProfileRequest `json:"profile"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type SetAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type AvatarURLResponse struct {
	URL string `json:"url"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user or trainer
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSession(session))
}

// Login godoc
// @Summary Log in a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSession(session))
}

// Me godoc
// @Summary Current user with populated trainer
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	acc, err := h.authService.GetAccount(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAccount(acc))
}

// UpdateProfile godoc
// @Summary Merge fields into the caller's profile
// @Tags Auth
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	upd := service.ProfileUpdate{Name: req.Name}
	if p := req.Profile; p != nil {
		upd.Profile = domain.ProfilePatch{
			Age:           p.Age,
			Gender:        p.Gender,
			Height:        p.Height,
			HeightFeet:    p.HeightFeet,
			HeightInches:  p.HeightInches,
			HeightUnit:    p.HeightUnit,
			ActivityLevel: p.ActivityLevel,
		}
	}

	acc, err := h.authService.UpdateProfile(c.Request.Context(), currentUser(c).ID, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAccount(acc))
}

// ListTrainers godoc
// @Summary List every trainer
// @Tags Auth
// @Security BearerAuth
// @Success 200 {array} TrainerResponse
// @Router /auth/trainers [get]
func (h *AuthHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.authService.ListTrainers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainers(trainers))
}

// AvatarUploadURL godoc
// @Summary Presigned URL for uploading a new avatar
// @Tags Auth
// @Security BearerAuth
// @Param body body AvatarUploadRequest true "Image content type"
// @Success 200 {object} service.UploadURL
// @Router /auth/profile/avatar/upload-url [post]
func (h *AuthHandler) AvatarUploadURL(c *gin.Context) {
	var req AvatarUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	upload, err := h.authService.AvatarUploadURL(c.Request.Context(), currentUser(c).ID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// SetAvatar godoc
// @Summary Record an uploaded avatar
// @Tags Auth
// @Security BearerAuth
// @Param body body SetAvatarRequest true "Object key returned by upload-url"
// @Success 200 {object} UserResponse
// @Router /auth/profile/avatar [put]
func (h *AuthHandler) SetAvatar(c *gin.Context) {
	var req SetAvatarRequest
	if !bindJSON(c, &req) {
		return
	}
	acc, err := h.authService.SetAvatar(c.Request.Context(), currentUser(c).ID, req.ObjectKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAccount(acc))
}

// AvatarURL godoc
// @Summary Presigned URL for viewing the caller's avatar
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} AvatarURLResponse
// @Failure 404 {object} ErrorResponse "No avatar set"
// @Router /auth/profile/avatar [get]
func (h *AuthHandler) AvatarURL(c *gin.Context) {
	url, err := h.authService.AvatarURL(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AvatarURLResponse{URL: url})
}
