package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobhive_backend/test/helpers"
)

// TestAuthFlow - регистрация, логин, обновление токена
func TestAuthFlow(t *testing.T) {
	ts := GetTestServer(t)

	email := fmt.Sprintf("seeker_%d@test.com", time.Now().UnixNano())

	registerBody := map[string]interface{}{
		"name":     "Anna Jobseeker",
		"email":    email,
		"password": "super_password123",
	}

	regRes, regBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, "Ответ: "+regBodyStr)

	var regResponse struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal([]byte(regBodyStr), &regResponse))
	assert.NotEmpty(t, regResponse.Token)
	assert.NotEmpty(t, regResponse.RefreshToken)
	// Роль по умолчанию - соискатель
	assert.Equal(t, "jobseeker", regResponse.User.Role)

	// Повторная регистрация с тем же email - конфликт
	dupRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, dupRes.StatusCode)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, "Ответ: "+logBodyStr)

	// Неверный пароль
	badLoginBody := map[string]interface{}{
		"email":    email,
		"password": "wrong_password",
	}
	badRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", badLoginBody)
	assert.Equal(t, http.StatusUnauthorized, badRes.StatusCode)

	// Обмен refresh-токена
	refreshBody := map[string]interface{}{"refreshToken": regResponse.RefreshToken}
	refRes, refBodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusOK, refRes.StatusCode, "Ответ: "+refBodyStr)

	var refResponse struct {
		RefreshToken string `json:"refreshToken"`
	}
	assert.NoError(t, json.Unmarshal([]byte(refBodyStr), &refResponse))
	assert.NotEqual(t, regResponse.RefreshToken, refResponse.RefreshToken, "Refresh-токен должен ротироваться")

	// Старый refresh-токен после ротации недействителен
	oldRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusUnauthorized, oldRes.StatusCode)
}

func TestRegister_WeakPassword(t *testing.T) {
	ts := GetTestServer(t)

	registerBody := map[string]interface{}{
		"name":     "Short Password",
		"email":    fmt.Sprintf("weak_%d@test.com", time.Now().UnixNano()),
		"password": "12345",
	}

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetMe(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginJobseeker(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, user.Email)
	// Хеш пароля не должен утекать
	assert.NotContains(t, bodyStr, "passwordHash")
	assert.NotContains(t, bodyStr, "$2a$")

	// Без токена - 401
	anonRes, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anonRes.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginJobseeker(t, ts)

	updateBody := map[string]interface{}{
		"location": "Berlin",
		"bio":      "Backend developer",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/users/me", token, updateBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, "Berlin")
	assert.Contains(t, bodyStr, "Backend developer")
}
