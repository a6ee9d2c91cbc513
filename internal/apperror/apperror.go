// Package apperror maps validation errors to user-facing messages and defines
// the failures a submission can run into.
package apperror

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	errNameRequired    = errors.New("El nombre del Cliente es Obligatorio")
	errNameTooShort    = errors.New("El nombre es muy corto")
	errNameTooLong     = errors.New("El nombre es muy largo")
	errCompanyRequired = errors.New("El nombre de la Empresa es obligatorio")
	errEmailRequired   = errors.New("El email es obligatorio")
	errEmailInvalid    = errors.New("Email no válido")
	errPhoneType       = errors.New("El número no es válido")
	errPhoneDigits     = errors.New("El número debe tener al menos 10 dígitos")
	errPhoneInvalid    = errors.New("Número no válido")
)

var customErrors = map[string]error{
	"Values.Name.required":       errNameRequired,
	"Values.Name.min":            errNameTooShort,
	"Values.Name.max":            errNameTooLong,
	"Values.Company.required":    errCompanyRequired,
	"Values.Email.required":      errEmailRequired,
	"Values.Email.email":         errEmailInvalid,
	"Values.Phone.phonenumber":   errPhoneType,
	"Values.Phone.phonemin":      errPhoneDigits,
	"Values.Phone.phonepositive": errPhoneInvalid,
	"Values.Phone.phoneinteger":  errPhoneInvalid,
}

// FieldErrors converts validator errors into a map of field name to message.
// The validator stops at the first failing rule of a field, so each field
// carries at most one message. Errors of any other kind yield an empty map.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return out
	}
	for _, e := range validationErr {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		key := e.StructNamespace() + "." + e.Tag()

		errMsg := fmt.Sprintf("%s is invalid", e.Field())
		if v, ok := customErrors[key]; ok {
			errMsg = v.Error()
		}
		out[e.Field()] = errMsg
	}
	return out
}

// ErrNotFound is returned when the remote API has no record for an id.
var ErrNotFound = errors.New("client not found")

// NetworkFailure means a request could not be sent or its response could not
// be received.
type NetworkFailure struct {
	Op  string
	Err error
}

func (e *NetworkFailure) Error() string { return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err) }

func (e *NetworkFailure) Unwrap() error { return e.Err }

// SerializationFailure means a body could not be encoded or a response could
// not be decoded.
type SerializationFailure struct {
	Op  string
	Err error
}

func (e *SerializationFailure) Error() string {
	return fmt.Sprintf("%s: serialization failure: %v", e.Op, e.Err)
}

func (e *SerializationFailure) Unwrap() error { return e.Err }
