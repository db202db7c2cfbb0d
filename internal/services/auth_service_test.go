package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhive_backend/internal/auth"
	"jobhive_backend/internal/email"
	"jobhive_backend/internal/models"
	"jobhive_backend/internal/services/dto"
)

func newAuthService() (AuthService, *mockUserRepo, *mockRefreshTokenRepo) {
	userRepo := newMockUserRepo()
	tokenRepo := newMockRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo, email.NewMockProvider()), userRepo, tokenRepo
}

func TestRegister_DefaultsToJobseeker(t *testing.T) {
	service, _, _ := newAuthService()

	resp, err := service.Register(&dto.RegisterRequest{
		Name:     "Anna",
		Email:    "anna@test.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleJobseeker, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Access-токен разбирается и несет identity
	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "jobseeker", claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService()

	req := &dto.RegisterRequest{Name: "Anna", Email: "dup@test.com", Password: "password123"}
	_, err := service.Register(req)
	require.NoError(t, err)

	_, err = service.Register(req)
	assertAppError(t, err, http.StatusConflict)
}

func TestRegister_WeakPassword(t *testing.T) {
	service, _, _ := newAuthService()

	_, err := service.Register(&dto.RegisterRequest{Name: "Anna", Email: "weak@test.com", Password: "12345"})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestRegister_InvalidRole(t *testing.T) {
	service, _, _ := newAuthService()

	_, err := service.Register(&dto.RegisterRequest{
		Name:     "Anna",
		Email:    "role@test.com",
		Password: "password123",
		Role:     "superuser",
	})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestLogin_WrongCredentials(t *testing.T) {
	service, _, _ := newAuthService()

	_, err := service.Register(&dto.RegisterRequest{Name: "Anna", Email: "login@test.com", Password: "password123"})
	require.NoError(t, err)

	// Неверный пароль и несуществующий email дают один и тот же ответ
	_, err = service.Login(&dto.LoginRequest{Email: "login@test.com", Password: "wrong"})
	assertAppError(t, err, http.StatusUnauthorized)

	_, err = service.Login(&dto.LoginRequest{Email: "ghost@test.com", Password: "password123"})
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestRefreshToken_Rotation(t *testing.T) {
	service, _, tokenRepo := newAuthService()

	resp, err := service.Register(&dto.RegisterRequest{Name: "Anna", Email: "rotate@test.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// Старый токен удален при ротации
	_, err = tokenRepo.FindByToken(resp.RefreshToken)
	assert.Error(t, err)

	_, err = service.RefreshToken(resp.RefreshToken)
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestLogout(t *testing.T) {
	service, _, _ := newAuthService()

	resp, err := service.Register(&dto.RegisterRequest{Name: "Anna", Email: "logout@test.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(resp.RefreshToken))

	_, err = service.RefreshToken(resp.RefreshToken)
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestChangePassword_RevokesSessions(t *testing.T) {
	service, _, tokenRepo := newAuthService()

	resp, err := service.Register(&dto.RegisterRequest{Name: "Anna", Email: "change@test.com", Password: "password123"})
	require.NoError(t, err)
	userID := resp.User.ID

	// Неверный текущий пароль
	err = service.ChangePassword(userID, "wrong", "newpassword123")
	assertAppError(t, err, http.StatusUnauthorized)

	// Слабый новый пароль
	err = service.ChangePassword(userID, "password123", "123")
	assertAppError(t, err, http.StatusBadRequest)

	require.NoError(t, service.ChangePassword(userID, "password123", "newpassword123"))

	// Старые refresh-токены отозваны
	assert.Empty(t, tokenRepo.tokens)

	// Новый пароль работает, старый нет
	_, err = service.Login(&dto.LoginRequest{Email: "change@test.com", Password: "password123"})
	assertAppError(t, err, http.StatusUnauthorized)

	_, err = service.Login(&dto.LoginRequest{Email: "change@test.com", Password: "newpassword123"})
	assert.NoError(t, err)
}
