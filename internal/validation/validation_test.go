package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

func TestValidate_Valid(t *testing.T) {
	form := signUpForm{
		Name:            "Maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
	}

	assert.NoError(t, Validate(form, nil))
}

func TestValidate_FieldMessages(t *testing.T) {
	form := signUpForm{
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	}
	messages := Messages{
		"name.required":   "Name is required",
		"email.email":     "Please enter a valid e-mail",
		"confirmPassword": "Passwords do not match",
	}

	err := Validate(form, messages)
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Name is required", verrs.Get("name"))
	assert.Equal(t, "Please enter a valid e-mail", verrs.Get("email"))
	assert.Equal(t, "Must be at least 8 characters", verrs.Get("password"))
	assert.Equal(t, "Passwords do not match", verrs.Get("confirmPassword"))
	assert.True(t, Is(err))
}

func TestValidate_FirstFailurePerField(t *testing.T) {
	form := signUpForm{Name: "Maria", Password: "supersecret", ConfirmPassword: "supersecret"}

	err := Validate(form, Messages{"email.required": "E-mail is required"})

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 1)
	assert.Equal(t, "E-mail is required", verrs["email"])
}

func TestErrors_Error(t *testing.T) {
	err := Errors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", err.Error())
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate("plain string", nil)
	require.Error(t, err)
	assert.False(t, Is(err))
}
