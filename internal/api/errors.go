package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConnection         = errors.New("connection error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotAuthenticated   = errors.New("No estás autenticado")
	ErrInvalidCredentials = errors.New("Credenciales incorrectas. Por favor, verifica tu email y contraseña.")
	ErrChatUserNotFound   = errors.New("Usuario no encontrado en la base de datos")
	ErrEmptyReply         = errors.New("empty response from chat service")
)

// ConnectionError wraps a transport failure. It matches ErrConnection.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

func (e *ConnectionError) UserMessage() string {
	return "Error de conexión. Por favor, verifica tu conexión a internet e intenta nuevamente."
}

// AuthError is returned for 401 and 403 responses. It matches ErrUnauthorized.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized (status %d)", e.Status)
}

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

func (e *AuthError) UserMessage() string {
	return "Sesión expirada. Por favor, inicia sesión nuevamente."
}

// FieldError is one entry of a 422 response's detail list.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Field returns the last element of Loc, which names the offending field.
func (f FieldError) Field() string {
	if len(f.Loc) == 0 {
		return ""
	}
	return fmt.Sprint(f.Loc[len(f.Loc)-1])
}

var fieldTranslations = map[string]string{
	"email":     "correo electrónico",
	"password":  "contraseña",
	"full_name": "nombre completo",
	"age":       "edad",
	"gender":    "género",
}

// ValidationError is a 422 response from the backend
type ValidationError struct {
	Detail []FieldError `json:"detail"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Detail))
	for _, d := range e.Detail {
		parts = append(parts, d.Field()+": "+d.Msg)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// UserMessage joins the field errors with Spanish field names.
func (e *ValidationError) UserMessage() string {
	parts := make([]string, 0, len(e.Detail))
	for _, d := range e.Detail {
		field := d.Field()
		if tr, ok := fieldTranslations[field]; ok {
			field = tr
		}
		parts = append(parts, field+": "+d.Msg)
	}
	return "Error de validación: " + strings.Join(parts, ", ")
}

// StatusError is any other non-success response.
type StatusError struct {
	Status int
	Body   string
	// Detail is the backend's "detail" message when the body carried one
	Detail string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

func (e *StatusError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Error del servidor: %d", e.Status)
}

func newStatusError(status int, body []byte) *StatusError {
	se := &StatusError{Status: status, Body: strings.TrimSpace(string(body))}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			se.Detail = s
		}
	}
	return se
}

// classify maps a non-2xx response to the error taxonomy.
func classify(status int, body []byte) error {
	switch {
	case status == 401 || status == 403:
		return &AuthError{Status: status}
	case status == 422:
		var ve ValidationError
		if err := json.Unmarshal(body, &ve); err == nil && len(ve.Detail) > 0 {
			return &ve
		}
		return newStatusError(status, body)
	default:
		return newStatusError(status, body)
	}
}
