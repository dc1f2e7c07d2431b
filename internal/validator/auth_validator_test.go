package validator_test

import (
	"context"
	"testing"

	"tkbshop/internal/usecase"
	"tkbshop/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister_OK(t *testing.T) {
	v := validator.NewAuthValidator()

	err := v.ValidateRegister(context.Background(), usecase.AuthRegisterRequest{
		FirstName: "Claire",
		LastName:  "Martin",
		Email:     "claire@test.com",
		Password:  "longenough1",
	})
	assert.NoError(t, err)
}

func TestValidateRegister_BadEmail(t *testing.T) {
	v := validator.NewAuthValidator()

	for _, email := range []string{"", "no-at-sign", "a@b", "sp ace@test.com"} {
		err := v.ValidateRegister(context.Background(), usecase.AuthRegisterRequest{
			FirstName: "Claire",
			LastName:  "Martin",
			Email:     email,
			Password:  "longenough1",
		})
		assert.ErrorIs(t, err, usecase.ErrValidation, email)
	}
}

func TestValidateRegister_ShortPassword(t *testing.T) {
	v := validator.NewAuthValidator()

	err := v.ValidateRegister(context.Background(), usecase.AuthRegisterRequest{
		FirstName: "Claire",
		LastName:  "Martin",
		Email:     "claire@test.com",
		Password:  "short",
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestValidateLogin_RequiredFields(t *testing.T) {
	v := validator.NewAuthValidator()

	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "", "pw"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "claire@test.com", ""), usecase.ErrValidation)
	assert.NoError(t, v.ValidateLogin(context.Background(), "claire@test.com", "pw"))
}
