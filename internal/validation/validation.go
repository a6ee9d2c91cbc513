// Package validation compiles the client record rules.
//
// The rules live as validate tags on model.Values. Tags run in order and a
// field stops at its first failure, so every field reports one message.
package validation

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"clientes-form/internal/apperror"
	"clientes-form/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validator checks form values against the record rules.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the phone rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	_ = v.RegisterValidation("phonenumber", PhoneNumber)
	_ = v.RegisterValidation("phonemin", PhoneMin)
	_ = v.RegisterValidation("phonepositive", PhonePositive)
	_ = v.RegisterValidation("phoneinteger", PhoneInteger)

	return &Validator{validate: v}
}

// Check validates the whole record and returns the failing fields with their
// message. An empty map means the record is valid.
func (v *Validator) Check(values model.Values) map[model.Field]string {
	out := make(map[model.Field]string)
	err := v.validate.Struct(values)
	if err == nil {
		return out
	}
	for field, msg := range apperror.FieldErrors(err) {
		out[model.Field(field)] = msg
	}
	return out
}

// PhoneNumber accepts text that parses as a finite number, surrounding
// whitespace allowed.
var PhoneNumber = func(fl validator.FieldLevel) bool {
	_, ok := parsePhone(fl.Field().String())
	return ok
}

// PhoneMin compares the numeric value against the tag parameter. A phone
// such as 15 passes a threshold of 10: this is a value bound, not a digit
// count.
var PhoneMin = func(fl validator.FieldLevel) bool {
	n, ok := parsePhone(fl.Field().String())
	if !ok {
		return false
	}
	limit, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}
	return n >= limit
}

// PhonePositive rejects zero and negative values.
var PhonePositive = func(fl validator.FieldLevel) bool {
	n, ok := parsePhone(fl.Field().String())
	return ok && n > 0
}

// PhoneInteger rejects values with a fractional part.
var PhoneInteger = func(fl validator.FieldLevel) bool {
	n, ok := parsePhone(fl.Field().String())
	return ok && n == math.Trunc(n)
}

// parsePhone casts typed text to a number the way a browser number cast
// does: whitespace is dropped, unsigned 0x/0o/0b integers are accepted and
// digit separators, infinities and NaN are not numbers.
func parsePhone(s string) (float64, bool) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" || strings.Contains(s, "_") {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' {
		if base, ok := radixPrefixes[unicode.ToLower(rune(s[1]))]; ok {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}
	if strings.IndexFunc(s, isNonDecimalLetter) >= 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

var radixPrefixes = map[rune]int{'x': 16, 'o': 8, 'b': 2}

// isNonDecimalLetter rejects every letter but the exponent marker, which
// keeps "inf", "nan" and hex floats out of ParseFloat.
func isNonDecimalLetter(r rune) bool {
	return unicode.IsLetter(r) && r != 'e' && r != 'E'
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
