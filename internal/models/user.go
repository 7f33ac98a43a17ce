package models

import (
	"errors"
	"strings"
)

var (
	ErrTermsNotAccepted = errors.New("debes aceptar los términos y la autorización de uso de datos")
	ErrUnderage         = errors.New("la edad debe ser mayor a 18 años")
	ErrMissingLogin     = errors.New("correo electrónico y contraseña son obligatorios")
)

type User struct {
	ID               int    `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Age              *int   `json:"age"`
	Gender           string `json:"gender"`
	Diabetes         bool   `json:"diabetes"`
	Hypertension     bool   `json:"hypertension"`
	Obesity          bool   `json:"obesity"`
	Allergies        string `json:"allergies"`
	TermsAccepted    bool   `json:"terms_accepted"`
	DataUsageConsent bool   `json:"data_usage_consent"`
	IsActive         bool   `json:"is_active"`
	IsSuperuser      bool   `json:"is_superuser"`
}

// Conditions lists the user's health conditions using their Spanish names.
func (u *User) Conditions() []string {
	var out []string
	if u.Diabetes {
		out = append(out, "diabetes")
	}
	if u.Hypertension {
		out = append(out, "hipertensión")
	}
	if u.Obesity {
		out = append(out, "obesidad")
	}
	return out
}

// DisplayName falls back to the email when no full name is set
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Email
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []User `json:"users"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

// UserWithRating pairs a user with their most recent rating; nil when
// unknown or when it could not be fetched.
type UserWithRating struct {
	User
	LastRating *int `json:"last_rating"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrMissingLogin
	}
	return nil
}

type RegisterRequest struct {
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Age              *int   `json:"age,omitempty"`
	Gender           string `json:"gender"`
	Password         string `json:"password"`
	Diabetes         bool   `json:"diabetes"`
	Hypertension     bool   `json:"hypertension"`
	Obesity          bool   `json:"obesity"`
	Allergies        string `json:"allergies"`
	TermsAccepted    bool   `json:"terms_accepted"`
	DataUsageConsent bool   `json:"data_usage_consent"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrMissingLogin
	}
	if r.Age != nil && *r.Age <= 18 {
		return ErrUnderage
	}
	if !r.TermsAccepted || !r.DataUsageConsent {
		return ErrTermsNotAccepted
	}
	return nil
}

// ProfileUpdate carries the editable profile fields; nil fields are left unchanged.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Gender   *string `json:"gender,omitempty"`
}

func (p *ProfileUpdate) Validate() error {
	if p.Age != nil && *p.Age <= 18 {
		return ErrUnderage
	}
	return nil
}

// Empty reports whether the update carries no fields
func (p *ProfileUpdate) Empty() bool {
	return p.FullName == nil && p.Age == nil && p.Gender == nil
}
