package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/storage"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this username or email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrPasswordMismatch     = errors.New("password confirmation does not match")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrUserNotFound         = errors.New("user not found")
	ErrNoProfilePicture     = errors.New("no profile picture set")
)

// AuthService handles registration, login, credential changes, account
// deletion and the profile.
type AuthService interface {
	Register(ctx context.Context, username, email, password, confirmPassword, name string, gender domain.Gender) (token string, user *domain.User, err error)
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID int64) error

	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, username, email, name string, gender domain.Gender) (*domain.User, error)
	UploadProfilePicture(ctx context.Context, userID int64, fileName, contentType string, data []byte) (url string, err error)
	ProfilePictureDownloadURL(ctx context.Context, userID int64) (string, error)

	GetJWTSecret() string
}

type authService struct {
	userRepo      repository.UserRepository
	fileStorage   storage.FileStorage
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, fileStorage storage.FileStorage, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		fileStorage:   fileStorage,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. Validation runs before any
// mutation: the confirmation must match and the credential is hashed
// before it ever reaches the repository.
func (s *authService) Register(ctx context.Context, username, email, password, confirmPassword, name string, gender domain.Gender) (string, *domain.User, error) {
	if username == "" || email == "" || password == "" {
		return "", nil, errors.New("username, email and password cannot be empty")
	}
	if password != confirmPassword {
		return "", nil, ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Gender:       gender,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", nil, ErrUserAlreadyExists
		}
		return "", nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, errors.New("username and password cannot be empty")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// ChangePassword re-verifies the current credential before storing the
// new hash.
func (s *authService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if newPassword == "" {
		return errors.New("new password cannot be empty")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrAuthenticationFailed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// DeleteAccount removes the user immediately. The schema cascades
// through routines, workouts, reminders, favorites and challenge
// memberships.
func (s *authService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	logrus.WithField("user_id", userID).Info("account deleted")
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, username, email, name string, gender domain.Gender) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	if gender != "" {
		user.Gender = gender
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UploadProfilePicture stores the image in object storage and records
// the resulting URL on the user row. A replaced picture's object is
// deleted after the new URL is committed.
func (s *authService) UploadProfilePicture(ctx context.Context, userID int64, fileName, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty image payload")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	key := fmt.Sprintf("profile_pictures/%d/%s%s", userID, uuid.NewString(), path.Ext(fileName))
	url, err := s.fileStorage.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetProfilePicture(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// The previous object is orphaned once the new URL is stored.
	// Deletion is best effort; a failure leaves a stray object, not a
	// broken profile.
	if user.ProfilePictureURL != nil {
		if oldKey := profilePictureKey(*user.ProfilePictureURL); oldKey != "" && oldKey != key {
			if err := s.fileStorage.DeleteObject(ctx, oldKey); err != nil {
				logrus.WithError(err).WithField("key", oldKey).Warn("stale profile picture not deleted")
			}
		}
	}
	return url, nil
}

// ProfilePictureDownloadURL returns a short-lived presigned URL for
// fetching the stored picture directly from object storage.
func (s *authService) ProfilePictureDownloadURL(ctx context.Context, userID int64) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if user.ProfilePictureURL == nil {
		return "", ErrNoProfilePicture
	}
	key := profilePictureKey(*user.ProfilePictureURL)
	if key == "" {
		return "", ErrNoProfilePicture
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
}

// profilePictureKey recovers the object key from a stored picture URL.
// Stored URLs always embed the key verbatim after the bucket segment.
func profilePictureKey(url string) string {
	const prefix = "profile_pictures/"
	idx := strings.Index(url, prefix)
	if idx < 0 {
		return ""
	}
	return url[idx:]
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: strconv.FormatInt(user.ID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fittrack",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
