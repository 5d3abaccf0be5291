package util

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=16,password_strength"`
}

func TestValidation_Messages(t *testing.T) {
	require.NoError(t, RegisterValidators())

	err := binding.Validator.ValidateStruct(&signup{Name: "ab", Email: "nope", Password: "abcdefg"})
	require.Error(t, err)

	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)

	fields := TranslateValidationErrors(ve)
	assert.Equal(t, []string{"The name field must be at least 3 characters."}, fields["name"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, fields["email"])
	assert.Equal(t, []string{"Password must include at least one lowercase letter, one uppercase letter, one number, and one special character."}, fields["password"])
}

func TestValidation_StrongPasswordPasses(t *testing.T) {
	require.NoError(t, RegisterValidators())

	err := binding.Validator.ValidateStruct(&signup{Name: "alice", Email: "a@b.io", Password: "Secret1!"})
	assert.NoError(t, err)
}

func TestPaging(t *testing.T) {
	assert.Equal(t, 1, LastPage(0, 10))
	assert.Equal(t, 1, LastPage(10, 10))
	assert.Equal(t, 2, LastPage(11, 10))
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 20, Offset(3, 10))
}
