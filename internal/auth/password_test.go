package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{
			name:     "correct password",
			password: "secret-password",
			hash:     hash,
			expected: true,
		},
		{
			name:     "wrong password",
			password: "wrong-password",
			hash:     hash,
			expected: false,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
			expected: false,
		},
		{
			name:     "malformed hash",
			password: "secret-password",
			hash:     "not-a-bcrypt-hash",
			expected: false,
		},
		{
			name:     "empty hash",
			password: "secret-password",
			hash:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckPassword(tt.password, tt.hash))
		})
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	// bcrypt salts per call, both hashes still verify
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same-password", first))
	assert.True(t, CheckPassword("same-password", second))
}
