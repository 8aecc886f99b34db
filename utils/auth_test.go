package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerHeader(t *testing.T) {
	assert.Equal(t, "Bearer T1", BearerHeader("T1"))
}

func TestTokenFromBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer T1", "T1"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwdw==", ""},
		{"T1", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenFromBearer(tt.header))
		})
	}
}

func TestAccessToken(t *testing.T) {
	assert.Equal(t, "T1", AccessToken([]byte(`{"access":"T1","user":{"email":"a@x.com"}}`)))
	assert.Empty(t, AccessToken([]byte(`{"message":"ok"}`)))
	assert.Empty(t, AccessToken([]byte(`not json`)))
}
