// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength matches the backend's password policy.
const MinPasswordLength = 8

// Validation errors surfaced inline by the auth forms. These are caught
// before any network call and never sent to the backend.
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("enter a valid email address")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// validate is the shared validator instance. validator.New is expensive;
// the package keeps one.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEmail checks email shape without touching the network.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if err := validate.Var(email, "email"); err != nil {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword checks password shape.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateSignIn checks the sign-in form.
func ValidateSignIn(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ValidateSignUp checks the sign-up form, including confirmation.
func ValidateSignUp(email, password, confirm string) error {
	if err := ValidateSignIn(email, password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
