package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'jobseeker'" json:"role"`

	// Профиль
	Location string `gorm:"default:''" json:"location"`
	Bio      string `gorm:"default:''" json:"bio"`
	Company  string `gorm:"default:''" json:"company"`
	Position string `gorm:"default:''" json:"position"`

	// Слабые ссылки на вакансии (поддерживаются like/apply)
	SavedJobs   datatypes.JSON `gorm:"type:jsonb" json:"savedJobs"`
	AppliedJobs datatypes.JSON `gorm:"type:jsonb" json:"appliedJobs"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// OwnerProjection - минимальная публичная проекция владельца вакансии.
// Пароль и email сюда не попадают никогда.
type OwnerProjection struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// ApplicantProjection - проекция соискателя для владельца вакансии
type ApplicantProjection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Company  string `json:"company"`
	Position string `json:"position"`
}

// AsOwner возвращает публичную проекцию пользователя
func (u *User) AsOwner() OwnerProjection {
	return OwnerProjection{ID: u.ID, Name: u.Name, Company: u.Company}
}

// AsApplicant возвращает проекцию для списка откликов
func (u *User) AsApplicant() ApplicantProjection {
	return ApplicantProjection{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Location: u.Location,
		Bio:      u.Bio,
		Company:  u.Company,
		Position: u.Position,
	}
}
