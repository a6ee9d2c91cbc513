// Package model holds the client record exchanged with the remote API.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names a form field. Its value doubles as the JSON key and the HTML
// input name.
type Field string

const (
	FieldName    Field = "name"
	FieldCompany Field = "company"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldNotes   Field = "notes"
)

// Fields lists the editable fields in render order.
var Fields = []Field{FieldName, FieldCompany, FieldEmail, FieldPhone, FieldNotes}

// Values are the editable fields exactly as typed. They are also the body of
// the create and update calls.
type Values struct {
	Name    string `json:"name" validate:"required,min=3,max=30"`
	Company string `json:"company" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phonenumber,phonemin=10,phonepositive,phoneinteger"`
	Notes   string `json:"notes"`
}

// Get returns the value of a field, or "" for an unknown field.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldCompany:
		return v.Company
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldNotes:
		return v.Notes
	}
	return ""
}

// Set returns a copy of v with field f replaced. Unknown fields are ignored.
func (v Values) Set(f Field, value string) Values {
	switch f {
	case FieldName:
		v.Name = value
	case FieldCompany:
		v.Company = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldNotes:
		v.Notes = value
	}
	return v
}

// Client is a client record as stored by the remote API. ID is empty for a
// record that has not been created yet.
type Client struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   Phone  `json:"phone"`
	Notes   string `json:"notes"`
}

// Values returns the editable part of the record.
func (c Client) Values() Values {
	return Values{
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   string(c.Phone),
		Notes:   c.Notes,
	}
}

// UnmarshalJSON accepts both string and numeric ids.
func (c *Client) UnmarshalJSON(data []byte) error {
	type plain Client
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Client(aux.plain)
	id, err := scalarText(aux.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	c.ID = id
	return nil
}

// Phone is the phone as typed. Remote records may carry it as a JSON
// number; it is kept as its decimal text either way.
type Phone string

// UnmarshalJSON accepts a string, a number or null.
func (p *Phone) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("phone: %w", err)
	}
	*p = Phone(text)
	return nil
}

func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
