package dto

import "jobhive_backend/internal/models"

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required" validate:"required,min=3,max=50"`
	Email    string          `json:"email" binding:"required" validate:"required,email"`
	Password string          `json:"password" binding:"required" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"omitempty,is-user-role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" validate:"required"`
	NewPassword     string `json:"newPassword" binding:"required" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken  string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}
