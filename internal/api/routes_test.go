package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fittrack/internal/domain"
	"fittrack/internal/service"
)

// stubAuthService satisfies service.AuthService with canned responses.
// Only the methods the routing tests reach return anything meaningful.
type stubAuthService struct {
	secret string
	user   *domain.User
}

func (s *stubAuthService) Register(context.Context, string, string, string, string, string, domain.Gender) (string, *domain.User, error) {
	return "", nil, service.ErrUserAlreadyExists
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, service.ErrAuthenticationFailed
}

func (s *stubAuthService) ChangePassword(context.Context, int64, string, string) error { return nil }

func (s *stubAuthService) DeleteAccount(context.Context, int64) error { return nil }

func (s *stubAuthService) GetProfile(_ context.Context, userID int64) (*domain.User, error) {
	u := *s.user
	u.ID = userID
	return &u, nil
}

func (s *stubAuthService) UpdateProfile(context.Context, int64, string, string, string, domain.Gender) (*domain.User, error) {
	return s.user, nil
}

func (s *stubAuthService) UploadProfilePicture(context.Context, int64, string, string, []byte) (string, error) {
	return "", nil
}

func (s *stubAuthService) ProfilePictureDownloadURL(context.Context, int64) (string, error) {
	return "", service.ErrNoProfilePicture
}

func (s *stubAuthService) GetJWTSecret() string { return s.secret }

func routerWithStubAuth() (*gin.Engine, *stubAuthService) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := &stubAuthService{secret: "route-secret", user: &domain.User{Username: "jane"}}
	SetupRoutes(router, Services{Auth: auth})
	return router, auth
}

func TestSetupRoutes_MiddlewareUsesServiceSecret(t *testing.T) {
	router, auth := routerWithStubAuth()

	// A token signed with the auth service's own secret passes.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, auth.GetJWTSecret(), 7, time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane")

	// Any other signing secret is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", 7, time.Hour))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProfilePicture_NoneSet(t *testing.T) {
	router, auth := routerWithStubAuth()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/picture", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, auth.GetJWTSecret(), 7, time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no profile picture")
}
