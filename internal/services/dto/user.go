package dto

import (
	"encoding/json"

	"jobhive_backend/internal/models"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=50"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Company  *string `json:"company" validate:"omitempty,max=100"`
	Position *string `json:"position" validate:"omitempty,max=100"`
}

type UserResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	Location    string          `json:"location"`
	Bio         string          `json:"bio"`
	Company     string          `json:"company"`
	Position    string          `json:"position"`
	SavedJobs   []string        `json:"savedJobs"`
	AppliedJobs []string        `json:"appliedJobs"`
}

// NewUserResponse строит ответ по модели, хеш пароля не покидает сервис
func NewUserResponse(u *models.User) *UserResponse {
	resp := &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Location:    u.Location,
		Bio:         u.Bio,
		Company:     u.Company,
		Position:    u.Position,
		SavedJobs:   []string{},
		AppliedJobs: []string{},
	}

	if len(u.SavedJobs) > 0 {
		_ = json.Unmarshal(u.SavedJobs, &resp.SavedJobs)
	}
	if len(u.AppliedJobs) > 0 {
		_ = json.Unmarshal(u.AppliedJobs, &resp.AppliedJobs)
	}

	return resp
}
