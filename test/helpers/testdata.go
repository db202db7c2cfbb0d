package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jobhive_backend/internal/models"
)

// CreateUser создает пользователя с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	err := CreateUser(t, ts.DB, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreateAndLoginRecruiter создает рекрутера с уникальным email
func CreateAndLoginRecruiter(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("recruiter_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Recruiter", email, "password123", models.UserRoleRecruiter)
}

// CreateAndLoginJobseeker создает соискателя с уникальным email
func CreateAndLoginJobseeker(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("jobseeker_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Jobseeker", email, "password123", models.UserRoleJobseeker)
}

// CreateTestJob создает вакансию напрямую в БД
func CreateTestJob(t *testing.T, db *gorm.DB, ownerID, title, location string, tags []string) *models.Job {
	tagsJSON, _ := json.Marshal(tags)

	job := &models.Job{
		Title:        title,
		Description:  "Test job description",
		Location:     location,
		Salary:       120000,
		SalaryPeriod: models.SalaryPeriodYear,
		JobType:      models.JobTypeFullTime,
		Tags:         datatypes.JSON(tagsJSON),
		Skills:       datatypes.JSON(`[]`),
		Status:       models.JobStatusOpen,
		PostedByID:   ownerID,
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую вакансию: %v", err)
	}

	return job
}
