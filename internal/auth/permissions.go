package auth

import "jobhive_backend/internal/models"

// Identity - аутентифицированная личность, извлеченная из токена
type Identity struct {
	UserID string
	Name   string
	Role   models.UserRole
}

// IdentityFromClaims строит Identity из claims токена
func IdentityFromClaims(c *Claims) Identity {
	return Identity{
		UserID: c.UserID,
		Name:   c.Name,
		Role:   models.UserRole(c.Role),
	}
}

// Проверки возможностей - чистые функции над (identity, resource).
// Ролевые сравнения централизованы здесь, а не размазаны по хендлерам.

// CanPostJobs - только рекрутеры (и админы) создают вакансии
func CanPostJobs(id Identity) bool {
	return id.Role == models.UserRoleRecruiter || id.Role == models.UserRoleAdmin
}

// CanManageJob - изменять/удалять вакансию может только ее владелец;
// админ может вмешаться в любую
func CanManageJob(id Identity, job *models.Job) bool {
	if id.Role == models.UserRoleAdmin {
		return true
	}
	return job.PostedByID == id.UserID
}

// CanViewApplicants - список откликов виден только владельцу вакансии
func CanViewApplicants(id Identity, job *models.Job) bool {
	return CanManageJob(id, job)
}

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(id Identity) bool {
	return id.Role == models.UserRoleAdmin
}
