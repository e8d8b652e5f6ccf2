package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secret", "u1", "admin", "inventario-pos", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "inventario-pos", claims.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	tok, err := Generate("secret", "u1", "admin", "x", 5)
	require.NoError(t, err)
	expired, err := Generate("secret", "u1", "admin", "x", -1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "otro", tok},
		{"expired", "secret", expired},
		{"garbage", "secret", "no.es.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u1", "admin", "x", 5)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = Parse("", "t")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
