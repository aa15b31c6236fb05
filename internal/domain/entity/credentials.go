package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
)

// RegistrationData is the input of a signup flow. Optional fields are empty
// when absent.
type RegistrationData struct {
	Email     string `json:"email" yaml:"email"`
	Password  string `json:"password" yaml:"password"`
	Username  string `json:"username,omitempty" yaml:"username"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name"`
	Phone     string `json:"phone,omitempty" yaml:"phone"`
	Company   string `json:"company,omitempty" yaml:"company"`
}

func (d RegistrationData) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ErrMissingEmail
	}
	if d.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

func (d RegistrationData) ToMap() map[string]any {
	return map[string]any{
		"email":      d.Email,
		"password":   d.Password,
		"username":   d.Username,
		"first_name": d.FirstName,
		"last_name":  d.LastName,
		"phone":      d.Phone,
		"company":    d.Company,
	}
}

// Field returns the optional value stored under key, using the same keys as ToMap.
func (d RegistrationData) Field(key string) string {
	switch key {
	case FieldEmail:
		return d.Email
	case FieldPassword, FieldConfirmPassword:
		return d.Password
	case FieldUsername:
		return d.Username
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldPhone:
		return d.Phone
	case FieldCompany:
		return d.Company
	}
	return ""
}

type LoginData struct {
	Email      string `json:"email" yaml:"email"`
	Password   string `json:"password" yaml:"password"`
	RememberMe bool   `json:"remember_me,omitempty" yaml:"remember_me"`
}

func (d LoginData) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ErrMissingEmail
	}
	if d.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

func (d LoginData) ToMap() map[string]any {
	return map[string]any{
		"email":       d.Email,
		"password":    d.Password,
		"remember_me": d.RememberMe,
	}
}

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldUsername        = "username"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldPhone           = "phone"
	FieldCompany         = "company"
)

type GeneratedAccount struct {
	Username    string    `json:"username" yaml:"username"`
	Email       string    `json:"email" yaml:"email"`
	Password    string    `json:"password" yaml:"password"`
	Domain      string    `json:"domain" yaml:"domain"`
	PIN         string    `json:"pin,omitempty" yaml:"pin,omitempty"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

func (a GeneratedAccount) ToRegistration(firstName, lastName string) RegistrationData {
	return RegistrationData{
		Email:     a.Email,
		Password:  a.Password,
		Username:  a.Username,
		FirstName: firstName,
		LastName:  lastName,
	}
}

// GenerateRequest mirrors the generator knobs. Zero values mean "use defaults".
type GenerateRequest struct {
	Domain         string `json:"domain,omitempty"`
	UsernamePrefix string `json:"username_prefix,omitempty"`
	IncludePIN     bool   `json:"include_pin,omitempty"`
	PIN            string `json:"pin,omitempty"`
	PasswordLength int    `json:"password_length,omitempty"`
}
