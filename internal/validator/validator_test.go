package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhive_backend/internal/models"
)

type roleProbe struct {
	Role models.UserRole `json:"role" validate:"omitempty,is-user-role"`
}

type statusProbe struct {
	Status string `json:"status" validate:"required,is-application-status"`
}

func TestCustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&roleProbe{Role: "recruiter"}))
	assert.NoError(t, v.Validate(&roleProbe{Role: ""}), "пустое значение отдается правилу required")
	assert.Error(t, v.Validate(&roleProbe{Role: "superuser"}))

	assert.NoError(t, v.Validate(&statusProbe{Status: "shortlisted"}))
	assert.Error(t, v.Validate(&statusProbe{Status: "ghosted"}))
	assert.Error(t, v.Validate(&statusProbe{}), "required срабатывает на пустом статусе")
}

func TestValidationError_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&statusProbe{Status: "ghosted"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	_, hasJSONName := vErr.Errors["status"]
	assert.True(t, hasJSONName, "ошибки ключуются по json-тегу, а не по имени поля Go")
}
