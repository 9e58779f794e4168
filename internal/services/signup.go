package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/validation"
)

// ErrSignupRejected is returned when the API accepts the request but
// returns no account
var ErrSignupRejected = errors.New("could not create the account")

// SignUpForm is the customer sign-up form
type SignUpForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

var signUpMessages = validation.Messages{
	"name.required":           "Name is required",
	"email.required":          "Email is required",
	"email.email":             "Please enter a valid email",
	"password.required":       "Password is required",
	"password.min":            "Password must be at least 8 characters",
	"confirmPassword.eqfield": "Passwords do not match",
}

// SignupService registers customer accounts
type SignupService struct {
	clients ClientAPI
}

// NewSignupService creates a new signup service
func NewSignupService(clients ClientAPI) *SignupService {
	return &SignupService{clients: clients}
}

// RegisterClient validates the form and creates a customer account
func (s *SignupService) RegisterClient(ctx context.Context, form SignUpForm) (*models.Profile, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Validate(form, signUpMessages); err != nil {
		return nil, err
	}

	dto, err := s.clients.CreateClient(ctx, api.SignUpRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Type:     string(models.AccountCustomer),
	})
	if errors.Is(err, api.ErrEmptyResponse) {
		return nil, ErrSignupRejected
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register client: %w", err)
	}

	profile, err := dto.Profile()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
