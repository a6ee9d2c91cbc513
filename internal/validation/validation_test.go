package validation

import (
	"strings"
	"testing"

	"clientes-form/internal/model"

	"github.com/stretchr/testify/assert"
)

func validValues() model.Values {
	return model.Values{
		Name:    "Acme Corp",
		Company: "Acme SA",
		Email:   "a@b.com",
		Phone:   "5512345678",
		Notes:   "",
	}
}

func TestCheck_ValidRecord(t *testing.T) {
	v := New()
	assert.Empty(t, v.Check(validValues()))
}

func TestCheck_EmptyRecord(t *testing.T) {
	v := New()

	errs := v.Check(model.Values{})

	assert.Equal(t, map[model.Field]string{
		model.FieldName:    "El nombre del Cliente es Obligatorio",
		model.FieldCompany: "El nombre de la Empresa es obligatorio",
		model.FieldEmail:   "El email es obligatorio",
	}, errs)
}

func TestCheck_NameLength(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		length  int
		wantErr string
	}{
		{name: "one char", length: 1, wantErr: "El nombre es muy corto"},
		{name: "two chars", length: 2, wantErr: "El nombre es muy corto"},
		{name: "lower bound", length: 3},
		{name: "middle", length: 15},
		{name: "upper bound", length: 30},
		{name: "one over", length: 31, wantErr: "El nombre es muy largo"},
		{name: "far over", length: 80, wantErr: "El nombre es muy largo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := validValues()
			values.Name = strings.Repeat("n", tc.length)

			errs := v.Check(values)
			if tc.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, map[model.Field]string{model.FieldName: tc.wantErr}, errs)
		})
	}
}

func TestCheck_NameCountsRunes(t *testing.T) {
	v := New()
	values := validValues()
	values.Name = "Ñoño"

	assert.Empty(t, v.Check(values))
}

func TestCheck_Phone(t *testing.T) {
	v := New()

	tests := []struct {
		phone   string
		wantErr string
	}{
		{phone: ""},
		{phone: "10"},
		{phone: "15"},
		{phone: "5512345678"},
		{phone: " 5512345678 "},
		{phone: "55 1234 5678"},
		{phone: "0x10"},
		{phone: "0B1010"},
		{phone: "1e3"},
		{phone: "0x5", wantErr: "El número debe tener al menos 10 dígitos"},
		{phone: "5", wantErr: "El número debe tener al menos 10 dígitos"},
		{phone: "0", wantErr: "El número debe tener al menos 10 dígitos"},
		{phone: "-12", wantErr: "El número debe tener al menos 10 dígitos"},
		{phone: "12.5", wantErr: "Número no válido"},
		{phone: "abc", wantErr: "El número no es válido"},
		{phone: "55-1234", wantErr: "El número no es válido"},
		{phone: "NaN", wantErr: "El número no es válido"},
		{phone: "Inf", wantErr: "El número no es válido"},
		{phone: "1_000", wantErr: "El número no es válido"},
		{phone: "0x_10", wantErr: "El número no es válido"},
		{phone: "-0x10", wantErr: "El número no es válido"},
		{phone: "0x1p4", wantErr: "El número no es válido"},
		{phone: "0xzz", wantErr: "El número no es válido"},
		{phone: "   ", wantErr: "El número no es válido"},
	}

	for _, tc := range tests {
		t.Run("phone="+tc.phone, func(t *testing.T) {
			values := validValues()
			values.Phone = tc.phone

			errs := v.Check(values)
			if tc.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, map[model.Field]string{model.FieldPhone: tc.wantErr}, errs)
		})
	}
}

func TestCheck_Email(t *testing.T) {
	v := New()

	tests := []struct {
		email   string
		wantErr string
	}{
		{email: "a@b.com"},
		{email: "correo@correo.com"},
		{email: "not-an-email", wantErr: "Email no válido"},
		{email: "", wantErr: "El email es obligatorio"},
	}

	for _, tc := range tests {
		t.Run("email="+tc.email, func(t *testing.T) {
			values := validValues()
			values.Email = tc.email

			errs := v.Check(values)
			if tc.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, map[model.Field]string{model.FieldEmail: tc.wantErr}, errs)
		})
	}
}

func TestCheck_FieldsAreIndependent(t *testing.T) {
	v := New()

	errs := v.Check(model.Values{Name: "ab", Company: "Acme", Email: "nope", Phone: "x", Notes: "anything <b>goes</b>"})

	assert.Equal(t, map[model.Field]string{
		model.FieldName:  "El nombre es muy corto",
		model.FieldEmail: "Email no válido",
		model.FieldPhone: "El número no es válido",
	}, errs)
}
