package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/service"
)

// maxProfilePictureBytes caps profile picture uploads.
const maxProfilePictureBytes = 5 << 20 // 5 MiB

// AuthHandler holds the authentication/profile service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Username        string        `json:"username" binding:"required"`
	Email           string        `json:"email" binding:"required,email"`
	Password        string        `json:"password" binding:"required,min=8"`
	ConfirmPassword string        `json:"confirmPassword" binding:"required"`
	Name            string        `json:"name"`
	Gender          domain.Gender `json:"gender" binding:"omitempty,oneof=Male Female Other"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	Username string        `json:"username"`
	Email    string        `json:"email" binding:"omitempty,email"`
	Name     string        `json:"name"`
	Gender   domain.Gender `json:"gender" binding:"omitempty,oneof=Male Female Other"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Handler Methods ---

// Register creates a new user account and returns a bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword, req.Name, req.Gender)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			logrus.WithError(err).Error("registration failed")
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			logrus.WithError(err).Error("login failed")
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// ChangePassword re-verifies the current credential before updating.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			logrus.WithError(err).Error("password change failed")
			abortWithError(c, http.StatusInternalServerError, "Could not change password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteAccount removes the account and everything it owns.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			logrus.WithError(err).Error("account deletion failed")
			abortWithError(c, http.StatusInternalServerError, "Could not delete account")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			logrus.WithError(err).Error("profile fetch failed")
			abortWithError(c, http.StatusInternalServerError, "Could not fetch profile")
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the mutable profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req.Username, req.Email, req.Name, req.Gender)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			logrus.WithError(err).Error("profile update failed")
			abortWithError(c, http.StatusInternalServerError, "Could not update profile")
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadProfilePicture accepts the raw image body, stores it in object
// storage and records the URL on the profile.
func (h *AuthHandler) UploadProfilePicture(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		abortWithError(c, http.StatusBadRequest, "Content-Type must be an image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProfilePictureBytes+1))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read image payload")
		return
	}
	if len(data) == 0 {
		abortWithError(c, http.StatusBadRequest, "Empty image payload")
		return
	}
	if len(data) > maxProfilePictureBytes {
		abortWithError(c, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	url, err := h.authService.UploadProfilePicture(c.Request.Context(), userID, c.Query("filename"), contentType, data)
	if err != nil {
		logrus.WithError(err).Error("profile picture upload failed")
		abortWithError(c, http.StatusInternalServerError, "Could not upload profile picture")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profilePictureUrl": url})
}

// GetProfilePicture returns a short-lived download URL for the stored
// picture, usable against private buckets.
func (h *AuthHandler) GetProfilePicture(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.authService.ProfilePictureDownloadURL(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoProfilePicture):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			logrus.WithError(err).Error("profile picture fetch failed")
			abortWithError(c, http.StatusInternalServerError, "Could not fetch profile picture")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
