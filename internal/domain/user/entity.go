// internal/domain/user/entity.go
package user

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Profile represents the signed-in user held by the client
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	Addresses        []Address `json:"addresses"`
	DefaultAddressID string    `json:"defaultAddressId,omitempty"`
}

// Address represents a saved shipping address owned by a profile
type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// UpdateAddressRequest represents a partial address update
type UpdateAddressRequest struct {
	Label     *string `json:"label"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zipCode"`
	Country   *string `json:"country"`
	IsDefault *bool   `json:"isDefault"`
}

// StoredUser is the blob the login flow writes under the user key
type StoredUser struct {
	ID               flexibleID `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Addresses        []Address  `json:"addresses"`
	DefaultAddressID string     `json:"defaultAddressId"`
}

// Profile converts the stored blob into a profile. A missing name falls back
// to the local part of the email address.
func (s StoredUser) Profile() *Profile {
	name := s.Name
	if name == "" {
		name = LocalPart(s.Email)
	}

	addresses := s.Addresses
	if addresses == nil {
		addresses = []Address{}
	}

	return &Profile{
		ID:               string(s.ID),
		Email:            s.Email,
		Name:             name,
		Phone:            s.Phone,
		Addresses:        addresses,
		DefaultAddressID: s.DefaultAddressID,
	}
}

// ParseStoredUser decodes a stored user blob
func ParseStoredUser(data []byte) (*Profile, error) {
	var stored StoredUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return stored.Profile(), nil
}

// LocalPart returns the part of an email address before the @
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// flexibleID accepts both string and numeric JSON ids
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// SetProfileRequest represents a sign-in handing the profile to the client
type SetProfileRequest struct {
	ID               string    `json:"id" binding:"required"`
	Email            string    `json:"email" binding:"required,email"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Addresses        []Address `json:"addresses"`
	DefaultAddressID string    `json:"defaultAddressId"`
}

// Profile converts the request the same way a stored user blob is converted
func (r SetProfileRequest) Profile() *Profile {
	return StoredUser{
		ID:               flexibleID(r.ID),
		Email:            r.Email,
		Name:             r.Name,
		Phone:            r.Phone,
		Addresses:        r.Addresses,
		DefaultAddressID: r.DefaultAddressID,
	}.Profile()
}
