package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"jobhive_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateProfile(userID string, fields map[string]interface{}) error

	// Слабые ссылки на вакансии
	AddAppliedJob(userID, jobID string) error
	AddSavedJob(userID, jobID string) error
	RemoveSavedJob(userID, jobID string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	if err := r.db.Create(user).Error; err != nil {
		// Проигравший гонку регистрации упирается в уникальный индекс email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"name":       user.Name,
		"location":   user.Location,
		"bio":        user.Bio,
		"company":    user.Company,
		"position":   user.Position,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateProfile(userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) AddAppliedJob(userID, jobID string) error {
	return r.appendJobRef(userID, jobID, "applied_jobs")
}

func (r *UserRepositoryImpl) AddSavedJob(userID, jobID string) error {
	return r.appendJobRef(userID, jobID, "saved_jobs")
}

func (r *UserRepositoryImpl) RemoveSavedJob(userID, jobID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user, ids, err := loadJobRefs(tx, userID, "saved_jobs")
		if err != nil {
			return err
		}

		filtered := ids[:0]
		for _, id := range ids {
			if id != jobID {
				filtered = append(filtered, id)
			}
		}

		return saveJobRefs(tx, user, "saved_jobs", filtered)
	})
}

// appendJobRef добавляет jobID в JSONB-список, без дубликатов
func (r *UserRepositoryImpl) appendJobRef(userID, jobID, column string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user, ids, err := loadJobRefs(tx, userID, column)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if id == jobID {
				return nil
			}
		}

		return saveJobRefs(tx, user, column, append(ids, jobID))
	})
}

func loadJobRefs(tx *gorm.DB, userID, column string) (*models.User, []string, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	raw := user.SavedJobs
	if column == "applied_jobs" {
		raw = user.AppliedJobs
	}

	var ids []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ids)
	}
	return &user, ids, nil
}

func saveJobRefs(tx *gorm.DB, user *models.User, column string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	return tx.Model(user).Updates(map[string]interface{}{
		column:       datatypes.JSON(payload),
		"updated_at": time.Now(),
	}).Error
}
