package models

import (
	"errors"

	"github.com/octabyte/hostel-gommon/enums"
	"github.com/tidwall/gjson"
)

var ErrInvalidProfile = errors.New("profile must be a JSON object")

// Profile is the user object the backend returns on login and register.
// The raw JSON is kept verbatim so it can be persisted and forwarded unchanged;
// only a handful of display attributes are ever read from it.
type Profile []byte

// ParseProfile validates that data holds a JSON object and returns a copy of it.
func ParseProfile(data []byte) (Profile, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, ErrInvalidProfile
	}
	p := make(Profile, len(data))
	copy(p, data)
	return p, nil
}

func (p Profile) Email() string {
	return p.get("email")
}

func (p Profile) Role() enums.Role {
	return enums.Role(p.get("role"))
}

func (p Profile) ID() string {
	return p.get("id")
}

func (p Profile) Name() string {
	return p.get("name")
}

func (p Profile) get(path string) string {
	if len(p) == 0 {
		return ""
	}
	return gjson.GetBytes(p, path).String()
}

func (p Profile) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = nil
		return nil
	}
	parsed, err := ParseProfile(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
