package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	_, ok := GetTokenFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetTokenFromContext(WithToken(context.Background(), ""))
	assert.False(t, ok, "empty token should not count")

	token, ok := GetTokenFromContext(WithToken(context.Background(), "T2"))
	assert.True(t, ok)
	assert.Equal(t, "T2", token)
}

func TestRequestID(t *testing.T) {
	_, ok := GetRequestIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := GetRequestIDFromContext(WithRequestID(context.Background(), "req-1"))
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
}
