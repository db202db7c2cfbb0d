package services

import (
	"jobhive_backend/internal/repositories"
	"jobhive_backend/internal/services/dto"
	"jobhive_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetMe - профиль текущего пользователя
func (s *UserServiceImpl) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user), nil
}

// UpdateProfile - частичное обновление профиля, только переданные поля
func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(userID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetMe(userID)
}
